package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Bin is the trash capability the remove phase prefers over permanent
// deletion.
type Bin interface {
	Put(path string) error
}

// ActionKind identifies which phase produced an action result.
type ActionKind int

const (
	ActionRemove ActionKind = iota
	ActionRename
)

// ActionResult reports the outcome of one attempted action to the observer.
type ActionResult struct {
	Kind     ActionKind
	Name     string
	Target   string // rename target, empty for removals
	Recycled bool   // removal went to the trash rather than being deleted
	Skipped  bool   // rename skipped because the target exists
	Err      error
}

// Executor performs a confirmed plan against one directory.
type Executor struct {
	Dir string
	Bin Bin // nil means removals delete permanently
	Log *zap.Logger

	// OnResult, if non-nil, observes every attempted action in order.
	OnResult func(ActionResult)
}

// Execute runs the remove phase then the rename phase. Without confirmation
// it mutates nothing and returns a zero summary. The phases run
// independently: a failure in one never blocks the other, and per-file
// failures are recorded and skipped over.
func (e *Executor) Execute(p *Plan, confirmed bool) Summary {
	var sum Summary
	if !confirmed {
		return sum
	}

	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	for _, name := range p.Remove {
		res := e.remove(name)
		if res.Err != nil {
			sum.Errors = append(sum.Errors, ActionError{Name: name, Op: "remove", Err: res.Err})
			log.Warn("remove failed", zap.String("file", name), zap.Error(res.Err))
		} else {
			sum.Removed++
		}
		e.report(res)
	}

	for _, r := range p.Renames {
		res := e.rename(r)
		switch {
		case res.Skipped:
			sum.Skipped++
		case res.Err != nil:
			sum.Errors = append(sum.Errors, ActionError{Name: r.Source, Op: "rename", Err: res.Err})
			log.Warn("rename failed", zap.String("file", r.Source), zap.Error(res.Err))
		default:
			sum.Renamed++
		}
		e.report(res)
	}

	return sum
}

func (e *Executor) remove(name string) ActionResult {
	path := filepath.Join(e.Dir, name)
	res := ActionResult{Kind: ActionRemove, Name: name}

	if e.Bin != nil {
		res.Recycled = true
		res.Err = e.Bin.Put(path)
		return res
	}
	res.Err = os.Remove(path)
	return res
}

func (e *Executor) rename(r Rename) ActionResult {
	res := ActionResult{Kind: ActionRename, Name: r.Source, Target: r.Target}
	target := filepath.Join(e.Dir, r.Target)

	// Never overwrite: an existing target skips the entry for good.
	if _, err := os.Stat(target); err == nil {
		res.Skipped = true
		return res
	} else if !os.IsNotExist(err) {
		res.Err = fmt.Errorf("failed to check rename target %s: %w", r.Target, err)
		return res
	}

	res.Err = os.Rename(filepath.Join(e.Dir, r.Source), target)
	return res
}

func (e *Executor) report(res ActionResult) {
	if e.OnResult != nil {
		e.OnResult(res)
	}
}
