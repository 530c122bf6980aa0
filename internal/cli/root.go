// Package cli wires the scan/confirm/execute workflow to the command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yshida/wavsweep/internal/audio"
	"github.com/yshida/wavsweep/internal/scan"
)

var (
	useThreshold bool
	thresholdDB  float64
	reportPeaks  bool
	chunkBytes   int
	marker       string
	replacement  string
	assumeYes    bool
	debugMode    bool
	pauseOnExit  bool
)

var rootCmd = &cobra.Command{
	Use:   "wavsweep [flags] [directory]",
	Short: "Silent WAV cleanup tool",
	Long: `WavSweep - Silent WAV Cleanup

Scans a directory for WAV files, moves silent ones to the trash, and
renames files whose name carries the "_Master" suffix. Nothing is touched
before a single confirmation.

Example:
  wavsweep
  wavsweep --use-threshold --threshold -90 ~/bounces
  wavsweep --report-peaks --yes .`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		if err := validateDir(dir); err != nil {
			return err
		}
		if chunkBytes <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", chunkBytes)
		}
		if marker == "" {
			return fmt.Errorf("rename suffix must not be empty")
		}

		config := &Config{
			Dir:          dir,
			UseThreshold: useThreshold,
			ThresholdDB:  thresholdDB,
			ReportPeaks:  reportPeaks,
			ChunkBytes:   chunkBytes,
			Marker:       marker,
			Replacement:  replacement,
			Yes:          assumeYes,
			Debug:        debugMode,
			Pause:        pauseOnExit,
		}

		return Run(config)
	},
	SilenceUsage: true, // Don't show usage on errors during execution
}

func init() {
	rootCmd.Flags().BoolVar(&useThreshold, "use-threshold", false, "classify by peak dB threshold instead of exact zero")
	rootCmd.Flags().Float64VarP(&thresholdDB, "threshold", "t", audio.DefaultThresholdDB, "silence threshold in dBFS (with --use-threshold)")
	rootCmd.Flags().BoolVar(&reportPeaks, "report-peaks", false, "scan files fully and report each peak in dBFS")
	rootCmd.Flags().IntVar(&chunkBytes, "chunk-size", audio.DefaultChunkBytes, "read buffer size in bytes")
	rootCmd.Flags().StringVar(&marker, "suffix", scan.DefaultMarker, "filename stem suffix marking rename candidates")
	rootCmd.Flags().StringVar(&replacement, "rename-to", scan.DefaultReplacement, "replacement for the rename suffix")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&pauseOnExit, "pause", false, "wait for Enter before exiting")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// validateDir checks that path exists and is a directory
func validateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}
