package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedWidth is returned for sample widths other than 1-4 bytes.
var ErrUnsupportedWidth = errors.New("unsupported sample width")

// fullScale holds the maximum representable magnitude per sample width,
// used as the 0 dBFS reference. 8-bit audio is stored unsigned around a
// center of 128, so its effective range after centering is -128..127.
var fullScale = map[int]int64{
	1: 127,
	2: 32767,
	3: 8388607,
	4: 2147483647,
}

// SupportedWidth reports whether samples of the given byte width can be decoded.
func SupportedWidth(width int) bool {
	_, ok := fullScale[width]
	return ok
}

// FullScale returns the 0 dBFS reference magnitude for a sample width.
func FullScale(width int) (int64, error) {
	fs, ok := fullScale[width]
	if !ok {
		return 0, fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, width)
	}
	return fs, nil
}

// AmplitudeDecoder returns a function decoding one raw little-endian sample
// of the given width into its absolute magnitude. The returned function
// expects exactly width bytes.
func AmplitudeDecoder(width int) (func(sample []byte) int64, error) {
	switch width {
	case 1:
		// Unsigned 8-bit with silence center at 128.
		return func(s []byte) int64 {
			return abs64(int64(s[0]) - 128)
		}, nil
	case 2:
		return func(s []byte) int64 {
			return abs64(int64(int16(binary.LittleEndian.Uint16(s))))
		}, nil
	case 3:
		// No native 24-bit type: compose little-endian and sign-extend from bit 23.
		return func(s []byte) int64 {
			v := int64(s[0]) | int64(s[1])<<8 | int64(s[2])<<16
			if v&0x800000 != 0 {
				v -= 1 << 24
			}
			return abs64(v)
		}, nil
	case 4:
		return func(s []byte) int64 {
			return abs64(int64(int32(binary.LittleEndian.Uint32(s))))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, width)
	}
}

// Amplitude decodes a single raw sample into its absolute magnitude.
func Amplitude(sample []byte, width int) (int64, error) {
	decode, err := AmplitudeDecoder(width)
	if err != nil {
		return 0, err
	}
	return decode(sample), nil
}

// AmplitudeDB converts a magnitude to decibels relative to full scale
// for the given sample width. A zero magnitude maps to -Inf, never an error.
func AmplitudeDB(magnitude int64, width int) (float64, error) {
	fs, err := FullScale(width)
	if err != nil {
		return 0, err
	}
	if magnitude <= 0 {
		return math.Inf(-1), nil
	}
	return 20 * math.Log10(float64(magnitude)/float64(fs)), nil
}

// ThresholdAmplitude converts a dB threshold into the largest integer
// magnitude still considered silent at the given sample width.
func ThresholdAmplitude(thresholdDB float64, width int) (int64, error) {
	fs, err := FullScale(width)
	if err != nil {
		return 0, err
	}
	return int64(math.Floor(float64(fs) * math.Pow(10, thresholdDB/20))), nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
