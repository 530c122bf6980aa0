// Package plan models the batch of destructive actions proposed after a
// scan and executes it once the user has confirmed.
package plan

import "fmt"

// Rename describes one pending rename within the scanned directory.
type Rename struct {
	Source string // current filename
	Target string // replacement filename
}

// Plan is the set of actions computed by one scan: files to move to the
// trash and files to rename. The two lists are disjoint; removal wins when
// a file qualifies for both.
type Plan struct {
	Remove  []string
	Renames []Rename
}

// Empty reports whether the plan proposes no action at all.
func (p *Plan) Empty() bool {
	return len(p.Remove) == 0 && len(p.Renames) == 0
}

// ActionError records one failed remove or rename attempt. Failures never
// abort the batch; they are collected and surfaced in the final report.
type ActionError struct {
	Name string
	Op   string // "remove" or "rename"
	Err  error
}

func (e ActionError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Name, e.Err)
}

func (e ActionError) Unwrap() error { return e.Err }

// Summary tallies the outcome of executing a plan.
type Summary struct {
	Removed int
	Renamed int
	Skipped int // renames skipped because the target already exists
	Errors  []ActionError
}
