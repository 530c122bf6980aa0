package audio

import (
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

// File is an open handle over one WAV file's raw PCM data. It exposes the
// container facts the classifier needs (channels, sample width, frame count)
// and a sequential reader over the interleaved frame bytes.
type File struct {
	path      string
	f         *os.File
	pcm       *riff.Chunk
	channels  int
	width     int // bytes per sample
	frames    int64
	remaining int64 // PCM bytes not yet read
}

// Open opens a WAV file and positions it at the start of its PCM data.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file %s: %w", path, err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to locate PCM data in %s: %w", path, err)
	}

	channels := int(decoder.NumChans)
	width := int(decoder.BitDepth) / 8
	size := decoder.PCMLen()

	var frames int64
	if channels > 0 && width > 0 {
		frames = size / int64(channels*width)
	}

	return &File{
		path:      path,
		f:         f,
		pcm:       decoder.PCMChunk,
		channels:  channels,
		width:     width,
		frames:    frames,
		remaining: size,
	}, nil
}

// Path returns the path the file was opened from.
func (w *File) Path() string { return w.path }

// Channels returns the number of interleaved channels per frame.
func (w *File) Channels() int { return w.channels }

// SampleWidth returns the number of bytes encoding one sample.
func (w *File) SampleWidth() int { return w.width }

// Frames returns the total number of frames in the PCM data.
func (w *File) Frames() int64 { return w.frames }

// ReadChunk fills buf with the next run of raw PCM bytes, returning io.EOF
// once the data chunk is exhausted. It never reads past the declared PCM
// size, so trailing non-audio chunks are ignored.
func (w *File) ReadChunk(buf []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, io.EOF
	}

	want := int64(len(buf))
	if want > w.remaining {
		want = w.remaining
	}

	n, err := io.ReadFull(w.pcm, buf[:want])
	w.remaining -= int64(n)
	if err != nil {
		return n, fmt.Errorf("failed to read PCM data from %s: %w", w.path, err)
	}
	return n, nil
}

// Close releases the underlying file handle.
func (w *File) Close() error {
	return w.f.Close()
}

// WriteWAV writes interleaved integer samples to a WAV file. Samples for
// 8-bit audio are expected unsigned (0..255 with 128 as silence), matching
// how they are stored on disk.
func WriteWAV(path string, samples []int, sampleRate, channels, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file %s: %w", path, err)
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	defer encoder.Close()

	buf := &gaudio.IntBuffer{
		Data: samples,
		Format: &gaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data to %s: %w", path, err)
	}

	return nil
}
