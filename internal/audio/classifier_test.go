package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves pre-built PCM chunks and counts reads so tests can
// observe early exits.
type fakeSource struct {
	channels int
	width    int
	frames   int64
	chunks   [][]byte
	reads    int
	failAt   int // return readErr instead of the chunk at this index (1-based)
	readErr  error
}

func (f *fakeSource) Channels() int    { return f.channels }
func (f *fakeSource) SampleWidth() int { return f.width }
func (f *fakeSource) Frames() int64    { return f.frames }

func (f *fakeSource) ReadChunk(buf []byte) (int, error) {
	f.reads++
	if f.failAt > 0 && f.reads == f.failAt {
		return 0, f.readErr
	}
	if f.reads > len(f.chunks) {
		return 0, io.EOF
	}
	return copy(buf, f.chunks[f.reads-1]), nil
}

// source16 packs little-endian 16-bit mono samples into chunks of
// chunkSamples each.
func source16(samples []int16, chunkSamples int) *fakeSource {
	src := &fakeSource{channels: 1, width: 2, frames: int64(len(samples))}
	for start := 0; start < len(samples); start += chunkSamples {
		end := start + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}
		chunk := make([]byte, 0, (end-start)*2)
		for _, s := range samples[start:end] {
			chunk = binary.LittleEndian.AppendUint16(chunk, uint16(s))
		}
		src.chunks = append(src.chunks, chunk)
	}
	return src
}

func classify(t *testing.T, cfg ClassifierConfig, src Source) Result {
	t.Helper()
	return NewClassifier(cfg, nil).ClassifySource(src)
}

func TestClassify_ZeroFramesIsSilent(t *testing.T) {
	for _, policy := range []Policy{PolicyExactZero, PolicyThreshold} {
		t.Run(policy.String(), func(t *testing.T) {
			src := &fakeSource{channels: 2, width: 2}
			res := classify(t, ClassifierConfig{Policy: policy, ThresholdDB: DefaultThresholdDB}, src)
			assert.Equal(t, Silent, res.Verdict)
		})
	}

	t.Run("diagnostic peak is -inf", func(t *testing.T) {
		src := &fakeSource{channels: 1, width: 2}
		res := classify(t, ClassifierConfig{ReportPeak: true}, src)
		assert.Equal(t, Silent, res.Verdict)
		require.True(t, res.HasPeak)
		assert.True(t, math.IsInf(res.PeakDB, -1))
	})
}

func TestClassify_ExactZero(t *testing.T) {
	t.Run("all zero is silent", func(t *testing.T) {
		res := classify(t, ClassifierConfig{}, source16(make([]int16, 1000), 256))
		assert.Equal(t, Silent, res.Verdict)
	})

	t.Run("single deviating sample is not silent", func(t *testing.T) {
		samples := make([]int16, 1000)
		samples[700] = 1
		res := classify(t, ClassifierConfig{}, source16(samples, 256))
		assert.Equal(t, NotSilent, res.Verdict)
	})

	t.Run("8-bit silence center is 128", func(t *testing.T) {
		src := &fakeSource{channels: 1, width: 1, frames: 4, chunks: [][]byte{{128, 128, 128, 128}}}
		res := classify(t, ClassifierConfig{}, src)
		assert.Equal(t, Silent, res.Verdict)

		src = &fakeSource{channels: 1, width: 1, frames: 4, chunks: [][]byte{{128, 127, 128, 128}}}
		res = classify(t, ClassifierConfig{}, src)
		assert.Equal(t, NotSilent, res.Verdict)
	})

	t.Run("exits on first disqualifying chunk", func(t *testing.T) {
		samples := make([]int16, 4096)
		samples[0] = 12000
		src := source16(samples, 256)
		res := classify(t, ClassifierConfig{}, src)
		assert.Equal(t, NotSilent, res.Verdict)
		assert.Equal(t, 1, src.reads)
	})
}

func TestClassify_Threshold(t *testing.T) {
	cfg := ClassifierConfig{Policy: PolicyThreshold, ThresholdDB: -75} // amplitude limit 5 at 16 bits

	t.Run("peak at threshold amplitude is silent", func(t *testing.T) {
		res := classify(t, cfg, source16([]int16{0, 5, -5, 3}, 256))
		assert.Equal(t, Silent, res.Verdict)
	})

	t.Run("peak one above threshold amplitude is not silent", func(t *testing.T) {
		res := classify(t, cfg, source16([]int16{0, 6, 0, 0}, 256))
		assert.Equal(t, NotSilent, res.Verdict)
	})

	t.Run("exits on first sample above the limit", func(t *testing.T) {
		samples := make([]int16, 4096)
		samples[10] = 100
		src := source16(samples, 256)
		res := classify(t, cfg, src)
		assert.Equal(t, NotSilent, res.Verdict)
		assert.Equal(t, 1, src.reads)
	})

	t.Run("default threshold at 16 bits admits only exact zero", func(t *testing.T) {
		cfg := ClassifierConfig{Policy: PolicyThreshold, ThresholdDB: DefaultThresholdDB}
		res := classify(t, cfg, source16([]int16{0, 1}, 256))
		assert.Equal(t, NotSilent, res.Verdict)
		res = classify(t, cfg, source16([]int16{0, 0}, 256))
		assert.Equal(t, Silent, res.Verdict)
	})
}

func TestClassify_ThresholdAtNegativeInfinityMatchesExactZero(t *testing.T) {
	inf := ClassifierConfig{Policy: PolicyThreshold, ThresholdDB: math.Inf(-1)}
	exact := ClassifierConfig{Policy: PolicyExactZero}

	cases := map[string][]int16{
		"all zero":     make([]int16, 512),
		"tiny blip":    {0, 0, 1, 0},
		"negative dip": {0, -1, 0, 0},
		"loud":         {0, 20000, -20000},
	}

	for name, samples := range cases {
		t.Run(name, func(t *testing.T) {
			a := classify(t, inf, source16(samples, 128))
			b := classify(t, exact, source16(samples, 128))
			assert.Equal(t, b.Verdict, a.Verdict)
		})
	}
}

func TestClassify_ReportPeak(t *testing.T) {
	t.Run("reports exact peak dB", func(t *testing.T) {
		res := classify(t, ClassifierConfig{ReportPeak: true}, source16([]int16{0, 32767, -300}, 256))
		assert.Equal(t, NotSilent, res.Verdict)
		require.True(t, res.HasPeak)
		assert.InDelta(t, 0.0, res.PeakDB, 1e-9)
	})

	t.Run("scans the whole file", func(t *testing.T) {
		samples := make([]int16, 1024)
		samples[0] = 30000 // would trigger early exit outside diagnostic mode
		src := source16(samples, 128)
		res := classify(t, ClassifierConfig{ReportPeak: true}, src)
		assert.Equal(t, NotSilent, res.Verdict)
		assert.Equal(t, len(src.chunks)+1, src.reads) // +1 for the EOF read
	})

	t.Run("threshold verdict still applies", func(t *testing.T) {
		cfg := ClassifierConfig{Policy: PolicyThreshold, ThresholdDB: -75, ReportPeak: true}
		res := classify(t, cfg, source16([]int16{0, 4}, 256))
		assert.Equal(t, Silent, res.Verdict)
		require.True(t, res.HasPeak)
	})
}

func TestClassify_UnsupportedWidth(t *testing.T) {
	src := &fakeSource{channels: 1, width: 5, frames: 10}
	res := classify(t, ClassifierConfig{}, src)
	assert.Equal(t, Unreadable, res.Verdict)
	assert.ErrorIs(t, res.Err, ErrUnsupportedWidth)
	assert.Zero(t, src.reads, "no data should be read for an undecodable format")
}

func TestClassify_ReadFailureIsUnreadable(t *testing.T) {
	readErr := errors.New("truncated data chunk")
	src := source16(make([]int16, 1024), 128)
	src.failAt = 3
	src.readErr = readErr

	res := classify(t, ClassifierConfig{}, src)
	assert.Equal(t, Unreadable, res.Verdict)
	assert.ErrorIs(t, res.Err, readErr)
}
