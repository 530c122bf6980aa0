package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yshida/wavsweep/internal/audio"
	"github.com/yshida/wavsweep/internal/plan"
)

// FileResult pairs one scanned filename with its classification.
type FileResult struct {
	Name   string
	Master bool // stem carries the rename marker
	Result audio.Result
}

// Scanner walks one directory, classifies every audio file in it, and
// builds the action plan.
type Scanner struct {
	dir        string
	naming     Naming
	classifier *audio.Classifier
	log        *zap.Logger
}

// New builds a scanner over dir. A nil logger disables diagnostics.
func New(dir string, naming Naming, classifier *audio.Classifier, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{dir: dir, naming: naming, classifier: classifier, log: log}
}

// List enumerates the regular files in the scanned directory whose name
// carries the audio extension, in directory order.
func (s *Scanner) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if s.naming.MatchesExtension(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Classify classifies the named files in order and routes each into the
// plan: silent files go to the remove list regardless of name, non-silent
// marker files go to the rename list, unreadable files go nowhere. The
// observer, if non-nil, is called once per file as results arrive.
func (s *Scanner) Classify(names []string, observe func(FileResult)) ([]FileResult, *plan.Plan) {
	results := make([]FileResult, 0, len(names))
	p := &plan.Plan{}

	for _, name := range names {
		res := FileResult{
			Name:   name,
			Master: s.naming.HasMarker(name),
			Result: s.classifier.Classify(filepath.Join(s.dir, name)),
		}
		results = append(results, res)
		if observe != nil {
			observe(res)
		}

		switch res.Result.Verdict {
		case audio.Silent:
			p.Remove = append(p.Remove, name)
		case audio.NotSilent:
			if res.Master {
				p.Renames = append(p.Renames, plan.Rename{
					Source: name,
					Target: s.naming.RenameTarget(name),
				})
			}
		case audio.Unreadable:
			s.log.Warn("unreadable file excluded from plan",
				zap.String("file", name),
				zap.Error(res.Result.Err),
			)
		}
	}

	dedupe(p)
	return results, p
}

// Scan is List followed by Classify.
func (s *Scanner) Scan(observe func(FileResult)) ([]FileResult, *plan.Plan, error) {
	names, err := s.List()
	if err != nil {
		return nil, nil, err
	}
	results, p := s.Classify(names, observe)
	return results, p, nil
}

// dedupe drops any rename whose source is already scheduled for removal.
// Routing makes the lists disjoint by construction; this keeps the
// invariant explicit should routing ever change.
func dedupe(p *plan.Plan) {
	if len(p.Remove) == 0 || len(p.Renames) == 0 {
		return
	}

	removing := make(map[string]struct{}, len(p.Remove))
	for _, name := range p.Remove {
		removing[name] = struct{}{}
	}

	kept := p.Renames[:0]
	for _, r := range p.Renames {
		if _, ok := removing[r.Source]; !ok {
			kept = append(kept, r)
		}
	}
	p.Renames = kept
}
