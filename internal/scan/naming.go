// Package scan enumerates a directory of WAV files and sorts them into
// removal and rename candidates.
package scan

import (
	"path/filepath"
	"strings"
)

// Default filename policy values.
const (
	DefaultExtension   = ".wav"
	DefaultMarker      = "_Master"
	DefaultReplacement = "__FULLMIX"
)

// Naming holds the filename policy: which extension identifies audio files,
// which stem suffix marks a rename candidate, and what replaces it.
type Naming struct {
	Extension   string // audio container extension, compared case-insensitively
	Marker      string // stem suffix marking a rename candidate
	Replacement string // stem suffix the marker is rewritten to
}

// DefaultNaming returns the stock policy: *.wav files, "_Master" renamed
// to "__FULLMIX".
func DefaultNaming() Naming {
	return Naming{
		Extension:   DefaultExtension,
		Marker:      DefaultMarker,
		Replacement: DefaultReplacement,
	}
}

// MatchesExtension reports whether name carries the audio extension,
// ignoring case.
func (n Naming) MatchesExtension(name string) bool {
	return strings.EqualFold(filepath.Ext(name), n.Extension)
}

// HasMarker reports whether the filename stem ends with the rename marker.
func (n Naming) HasMarker(name string) bool {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return strings.HasSuffix(stem, n.Marker)
}

// RenameTarget computes the replacement filename, preserving the extension.
// Callers must only pass names for which HasMarker is true.
func (n Naming) RenameTarget(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return strings.TrimSuffix(stem, n.Marker) + n.Replacement + ext
}
