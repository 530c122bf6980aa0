package cli

import "go.uber.org/zap"

// Config holds one run's configuration, assembled from the command line.
type Config struct {
	Dir          string  // directory to scan
	UseThreshold bool    // classify by peak dB threshold instead of exact zero
	ThresholdDB  float64 // silence threshold in dBFS
	ReportPeaks  bool    // diagnostic mode: scan fully and report peak dBFS
	ChunkBytes   int     // read buffer budget per file
	Marker       string  // stem suffix marking rename candidates
	Replacement  string  // what the marker is rewritten to
	Yes          bool    // skip the confirmation prompt
	Debug        bool    // enable debug logging
	Pause        bool    // wait for Enter before exiting
}

// Logger builds the diagnostic logger for this run: a development zap
// logger under --debug, otherwise a no-op one.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}
