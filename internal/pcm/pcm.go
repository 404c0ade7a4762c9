package pcm

import (
	"fmt"
	"io"
	"math"
)

// BytesPerSample is the width of one sample. Streams are s16le throughout.
const BytesPerSample = 2

// Format describes the layout of a raw PCM stream.
type Format struct {
	SampleRate int
	Channels   int
}

// BytesPerSecond returns how many bytes one second of audio occupies.
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.Channels * BytesPerSample
}

// Duration converts a byte count into seconds.
func (f Format) Duration(byteLen int64) float64 {
	return float64(byteLen) / float64(f.SampleRate) / float64(f.Channels) / BytesPerSample
}

// SilenceBytes returns the byte length of d seconds of silence, rounded to
// the nearest byte. The count is not snapped to a whole sample frame; the
// sub-sample error is small enough to wash out of later duration math.
func (f Format) SilenceBytes(d float64) int {
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	return int(math.Round(float64(f.SampleRate) * BytesPerSample * float64(f.Channels) * d))
}

// Silence returns d seconds of silence in f's layout. Zero samples are
// digital silence for signed PCM, so the buffer is left zero-filled.
func Silence(f Format, d float64) []byte {
	return make([]byte, f.SilenceBytes(d))
}

// Accumulator appends audio to a single raw PCM stream in call order and
// tracks the total byte count.
type Accumulator struct {
	w      io.Writer
	format Format
	bytes  int64
}

// NewAccumulator wraps w as the destination for the combined stream.
func NewAccumulator(w io.Writer, format Format) *Accumulator {
	return &Accumulator{w: w, format: format}
}

// Append copies r to the stream and reports how many bytes were written.
func (a *Accumulator) Append(r io.Reader) (int64, error) {
	n, err := io.Copy(a.w, r)
	a.bytes += n
	if err != nil {
		return n, fmt.Errorf("append stream data: %w", err)
	}
	return n, nil
}

// AppendBytes writes buf to the stream.
func (a *Accumulator) AppendBytes(buf []byte) error {
	n, err := a.w.Write(buf)
	a.bytes += int64(n)
	if err != nil {
		return fmt.Errorf("append stream data: %w", err)
	}
	return nil
}

// Bytes returns the total number of bytes appended so far.
func (a *Accumulator) Bytes() int64 {
	return a.bytes
}

// Duration returns the accumulated stream length in seconds.
func (a *Accumulator) Duration() float64 {
	return a.format.Duration(a.bytes)
}

// Format returns the stream layout the accumulator was created with.
func (a *Accumulator) Format() Format {
	return a.format
}
