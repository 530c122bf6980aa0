package cli

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/yshida/wavsweep/internal/audio"
	"github.com/yshida/wavsweep/internal/plan"
	"github.com/yshida/wavsweep/internal/scan"
	"github.com/yshida/wavsweep/internal/trash"
)

// Run executes the main cleanup workflow: scan, present the plan, confirm
// once, execute, summarize.
func Run(config *Config) error {
	log, err := config.Logger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	absDir, err := filepath.Abs(config.Dir)
	if err != nil {
		absDir = config.Dir
	}
	fmt.Printf("Scanning: %s\n", absDir)
	fmt.Println()

	// The reversibility guarantee changes when there is no trash, so say
	// so before anything is listed or confirmed.
	var bin plan.Bin
	trashAvailable := trash.Available()
	if trashAvailable {
		bin = trash.Bin{}
	} else {
		fmt.Println(warnStyle.Render("Warning: no trash facility on this system - removals will DELETE files permanently."))
		fmt.Println()
	}

	policy := audio.PolicyExactZero
	if config.UseThreshold {
		policy = audio.PolicyThreshold
	}
	classifier := audio.NewClassifier(audio.ClassifierConfig{
		Policy:      policy,
		ThresholdDB: config.ThresholdDB,
		ReportPeak:  config.ReportPeaks,
		ChunkBytes:  config.ChunkBytes,
	}, log)

	naming := scan.DefaultNaming()
	naming.Marker = config.Marker
	naming.Replacement = config.Replacement

	scanner := scan.New(config.Dir, naming, classifier, log)

	names, err := scanner.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No WAV files found in the directory.")
		pause(config)
		return nil
	}
	fmt.Printf("Found %d WAV file(s)\n", len(names))
	fmt.Println()

	fmt.Println("Analyzing files...")
	fmt.Println(rule())
	var unreadable int
	_, actions := scanner.Classify(names, func(r scan.FileResult) {
		printResult(r)
		if r.Result.Verdict == audio.Unreadable {
			unreadable++
		}
	})
	fmt.Println(rule())
	fmt.Println()

	if actions.Empty() {
		fmt.Println("No silent WAV files or rename candidates found.")
		pause(config)
		return nil
	}

	printPlan(actions, trashAvailable)

	confirmed := config.Yes || confirm()
	if !confirmed {
		fmt.Println("Cancelled. No changes made.")
		pause(config)
		return nil
	}
	fmt.Println()

	executor := &plan.Executor{
		Dir:      config.Dir,
		Bin:      bin,
		Log:      log,
		OnResult: printAction,
	}
	summary := executor.Execute(actions, confirmed)

	fmt.Println()
	printSummary(summary, trashAvailable, unreadable)
	pause(config)

	return nil
}

func printBanner() {
	fmt.Println(titleStyle.Render("WavSweep - Silent WAV Cleanup"))
	fmt.Println(ruleStyle.Render(strings.Repeat("=", 38)))
	fmt.Println()
}

func rule() string {
	return ruleStyle.Render(strings.Repeat("-", 40))
}

// printResult emits one classification line, preserving enumeration order.
func printResult(r scan.FileResult) {
	if r.Result.Verdict == audio.Unreadable {
		fmt.Println(errorStyle.Render(fmt.Sprintf("  Error reading %s: %v", r.Name, r.Result.Err)))
		return
	}

	var tag string
	switch {
	case r.Result.Verdict == audio.Silent:
		tag = renderTag(emptyTagStyle, "[EMPTY]")
	case r.Master:
		tag = renderTag(masterTagStyle, "[MASTER]")
	default:
		tag = renderTag(okTagStyle, "[OK]")
	}

	line := fmt.Sprintf("  %s %s", tag, r.Name)
	if r.Result.HasPeak {
		line += " " + mutedStyle.Render(fmt.Sprintf("(peak: %s)", formatPeakDB(r.Result.PeakDB)))
	}
	fmt.Println(line)
}

func formatPeakDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf dBFS"
	}
	return fmt.Sprintf("%.1f dBFS", db)
}

func printPlan(p *plan.Plan, trashAvailable bool) {
	if len(p.Remove) > 0 {
		verb := "move to trash"
		if !trashAvailable {
			verb = "permanently delete"
		}
		fmt.Printf("Found %d silent file(s) to %s:\n", len(p.Remove), verb)
		for _, name := range p.Remove {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println()
	}

	if len(p.Renames) > 0 {
		fmt.Printf("Found %d file(s) to rename:\n", len(p.Renames))
		for _, r := range p.Renames {
			fmt.Printf("  - %s -> %s\n", r.Source, r.Target)
		}
		fmt.Println()
	}
}

// confirm asks once; anything other than y/Y cancels.
func confirm() bool {
	fmt.Print("Proceed? (y/n): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

func printAction(res plan.ActionResult) {
	switch {
	case res.Err != nil:
		op := "delete"
		if res.Kind == plan.ActionRename {
			op = "rename"
		}
		fmt.Println(errorStyle.Render(fmt.Sprintf("  Failed to %s %s: %v", op, res.Name, res.Err)))
	case res.Skipped:
		fmt.Printf("  Skipped (target exists): %s\n", res.Name)
	case res.Kind == plan.ActionRemove && res.Recycled:
		fmt.Printf("  Recycled: %s\n", res.Name)
	case res.Kind == plan.ActionRemove:
		fmt.Printf("  Deleted (permanently): %s\n", res.Name)
	default:
		fmt.Printf("  Renamed: %s -> %s\n", res.Name, res.Target)
	}
}

func printSummary(sum plan.Summary, trashAvailable bool, unreadable int) {
	if sum.Removed > 0 {
		if trashAvailable {
			fmt.Printf("Sent %d file(s) to the trash.\n", sum.Removed)
		} else {
			fmt.Printf("Deleted %d file(s) permanently.\n", sum.Removed)
		}
	}
	if sum.Renamed > 0 {
		fmt.Printf("Renamed %d file(s).\n", sum.Renamed)
	}
	if sum.Skipped > 0 {
		fmt.Printf("Skipped %d rename(s): target already exists.\n", sum.Skipped)
	}
	if unreadable > 0 {
		fmt.Printf("Could not read %d file(s).\n", unreadable)
	}
	if len(sum.Errors) > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d action(s) failed:", len(sum.Errors))))
		for _, e := range sum.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}
}

func pause(config *Config) {
	if !config.Pause {
		return
	}
	fmt.Print("\nPress Enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
