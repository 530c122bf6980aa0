package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
)

// Policy selects how the classifier decides a file is silent.
type Policy int

const (
	// PolicyExactZero treats a file as silent only if every sample is the
	// exact silence value (0, or 128 for 8-bit audio).
	PolicyExactZero Policy = iota
	// PolicyThreshold treats a file as silent if its peak magnitude stays
	// at or below a dB threshold relative to full scale.
	PolicyThreshold
)

func (p Policy) String() string {
	switch p {
	case PolicyThreshold:
		return "threshold"
	default:
		return "exact-zero"
	}
}

// Verdict is the outcome of classifying one file.
type Verdict int

const (
	Silent Verdict = iota
	NotSilent
	Unreadable
)

func (v Verdict) String() string {
	switch v {
	case Silent:
		return "silent"
	case NotSilent:
		return "not-silent"
	default:
		return "unreadable"
	}
}

const (
	// DefaultChunkBytes bounds memory use on arbitrarily large files.
	DefaultChunkBytes = 1 << 20
	// DefaultThresholdDB is the silence threshold used by PolicyThreshold.
	DefaultThresholdDB = -115.0
)

// ClassifierConfig configures one classification run.
type ClassifierConfig struct {
	Policy      Policy
	ThresholdDB float64 // used by PolicyThreshold
	ReportPeak  bool    // scan the whole file and report the true peak dB
	ChunkBytes  int     // read buffer budget, DefaultChunkBytes if zero
}

// Result is the immutable classification of one file. PeakDB is only
// meaningful when HasPeak is set (diagnostic mode).
type Result struct {
	Verdict Verdict
	PeakDB  float64
	HasPeak bool
	Err     error
}

// Source is the container capability the classifier consumes: format facts
// plus a sequential reader over raw interleaved frame bytes.
type Source interface {
	Channels() int
	SampleWidth() int
	Frames() int64
	ReadChunk(buf []byte) (int, error)
}

// Classifier decides whether audio files count as silent.
type Classifier struct {
	cfg ClassifierConfig
	log *zap.Logger
	buf []byte // reused across files
}

// NewClassifier builds a classifier. A nil logger disables diagnostics.
func NewClassifier(cfg ClassifierConfig, log *zap.Logger) *Classifier {
	if cfg.ChunkBytes <= 0 {
		cfg.ChunkBytes = DefaultChunkBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{cfg: cfg, log: log}
}

// Classify opens the WAV file at path, classifies it, and releases the
// handle before returning. Open or read failures yield Unreadable.
func (c *Classifier) Classify(path string) Result {
	f, err := Open(path)
	if err != nil {
		return Result{Verdict: Unreadable, Err: err}
	}
	defer f.Close()

	res := c.ClassifySource(f)
	c.log.Debug("classified",
		zap.String("file", path),
		zap.String("verdict", res.Verdict.String()),
		zap.Int("sampleWidth", f.SampleWidth()),
		zap.Int64("frames", f.Frames()),
		zap.Error(res.Err),
	)
	return res
}

// ClassifySource classifies an already open source according to the
// configured policy.
func (c *Classifier) ClassifySource(src Source) Result {
	width := src.SampleWidth()
	if !SupportedWidth(width) {
		return Result{
			Verdict: Unreadable,
			Err:     fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, width),
		}
	}

	// No samples means nothing can violate either policy.
	if src.Frames() == 0 {
		res := Result{Verdict: Silent}
		if c.cfg.ReportPeak {
			res.PeakDB = math.Inf(-1)
			res.HasPeak = true
		}
		return res
	}

	buf := c.chunkBuf(width * src.Channels())

	if c.cfg.ReportPeak {
		return c.scanPeak(src, width, buf)
	}
	if c.cfg.Policy == PolicyThreshold {
		return c.scanThreshold(src, width, buf)
	}
	return c.scanExactZero(src, width, buf)
}

// chunkBuf returns the read buffer sized to whole frames within the
// configured byte budget, always holding at least one frame.
func (c *Classifier) chunkBuf(frameSize int) []byte {
	frames := c.cfg.ChunkBytes / frameSize
	if frames < 1 {
		frames = 1
	}
	size := frames * frameSize
	if cap(c.buf) < size {
		c.buf = make([]byte, size)
	}
	return c.buf[:size]
}

// scanExactZero checks the raw byte pattern: every sample of every supported
// width encodes exact silence as all-zero bytes, except 8-bit audio whose
// silence byte is 0x80. Exits on the first deviating byte.
func (c *Classifier) scanExactZero(src Source, width int, buf []byte) Result {
	silence := byte(0x00)
	if width == 1 {
		silence = 0x80
	}

	for {
		n, err := src.ReadChunk(buf)
		for _, b := range buf[:n] {
			if b != silence {
				return Result{Verdict: NotSilent}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Result{Verdict: Unreadable, Err: err}
		}
	}
	return Result{Verdict: Silent}
}

// scanThreshold compares each sample's magnitude against the integer
// amplitude equivalent of the dB threshold, exiting on the first sample
// above it. The boundary is inclusive: magnitude == limit is still silent.
func (c *Classifier) scanThreshold(src Source, width int, buf []byte) Result {
	limit, err := ThresholdAmplitude(c.cfg.ThresholdDB, width)
	if err != nil {
		return Result{Verdict: Unreadable, Err: err}
	}
	decode, err := AmplitudeDecoder(width)
	if err != nil {
		return Result{Verdict: Unreadable, Err: err}
	}

	for {
		n, err := src.ReadChunk(buf)
		for off := 0; off+width <= n; off += width {
			if decode(buf[off:off+width]) > limit {
				return Result{Verdict: NotSilent}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Result{Verdict: Unreadable, Err: err}
		}
	}
	return Result{Verdict: Silent}
}

// scanPeak reads the whole file to find the true peak, then applies the
// configured policy to it. No early exit: the reported peak must be exact.
func (c *Classifier) scanPeak(src Source, width int, buf []byte) Result {
	decode, err := AmplitudeDecoder(width)
	if err != nil {
		return Result{Verdict: Unreadable, Err: err}
	}

	var peak int64
	for {
		n, err := src.ReadChunk(buf)
		for off := 0; off+width <= n; off += width {
			if mag := decode(buf[off : off+width]); mag > peak {
				peak = mag
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Result{Verdict: Unreadable, Err: err}
		}
	}

	peakDB, err := AmplitudeDB(peak, width)
	if err != nil {
		return Result{Verdict: Unreadable, Err: err}
	}

	verdict := NotSilent
	if c.cfg.Policy == PolicyThreshold {
		limit, err := ThresholdAmplitude(c.cfg.ThresholdDB, width)
		if err != nil {
			return Result{Verdict: Unreadable, Err: err}
		}
		if peak <= limit {
			verdict = Silent
		}
	} else if peak == 0 {
		verdict = Silent
	}

	return Result{Verdict: verdict, PeakDB: peakDB, HasPeak: true}
}
