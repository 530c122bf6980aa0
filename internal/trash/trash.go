// Package trash wraps the system trash facility behind a small capability
// interface so removals stay reversible where the platform allows it.
package trash

import (
	"fmt"
	"runtime"

	systrash "github.com/ncruces/go-trash"
)

// Bin moves files to a recoverable trash location.
type Bin struct{}

// Put moves the file at path to the system trash.
func (Bin) Put(path string) error {
	if _, err := systrash.Put(path); err != nil {
		return fmt.Errorf("failed to move %s to trash: %w", path, err)
	}
	return nil
}

// Available reports whether the running platform has a usable trash
// facility. When it does not, callers fall back to permanent deletion and
// must say so before acting.
func Available() bool {
	switch runtime.GOOS {
	case "linux", "darwin", "windows", "freebsd", "openbsd", "netbsd":
		return true
	}
	return false
}
