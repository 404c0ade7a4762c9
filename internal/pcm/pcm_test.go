package pcm

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestFormatBytesPerSecond(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		want   int
	}{
		{"mono 44100", Format{SampleRate: 44100, Channels: 1}, 88200},
		{"stereo 44100", Format{SampleRate: 44100, Channels: 2}, 176400},
		{"mono 22050", Format{SampleRate: 22050, Channels: 1}, 44100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.format.BytesPerSecond(); got != tc.want {
				t.Fatalf("BytesPerSecond() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 1}
	if got := f.Duration(176400); got != 2.0 {
		t.Fatalf("Duration(176400) = %v, want 2.0", got)
	}
	stereo := Format{SampleRate: 44100, Channels: 2}
	if got := stereo.Duration(176400); got != 1.0 {
		t.Fatalf("stereo Duration(176400) = %v, want 1.0", got)
	}
}

func TestSilenceBytes(t *testing.T) {
	cases := []struct {
		name     string
		format   Format
		duration float64
		want     int
	}{
		{"one second mono", Format{44100, 1}, 1.0, 88200},
		{"one second stereo", Format{44100, 2}, 1.0, 176400},
		{"fractional rounds", Format{44100, 1}, 0.7, 61740},
		{"sub sample rounds to nearest", Format{44100, 1}, 0.0000056, 0},
		{"zero", Format{44100, 1}, 0, 0},
		{"negative", Format{44100, 1}, -3, 0},
		{"nan", Format{44100, 1}, math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.format.SilenceBytes(tc.duration); got != tc.want {
				t.Fatalf("SilenceBytes(%v) = %d, want %d", tc.duration, got, tc.want)
			}
		})
	}
}

func TestSilenceBytesMatchesFormula(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 2}
	for _, d := range []float64{0.1, 0.25, 0.333, 1.7, 2.0, 5.5} {
		want := int(math.Round(float64(f.SampleRate) * BytesPerSample * float64(f.Channels) * d))
		if got := f.SilenceBytes(d); got != want {
			t.Fatalf("SilenceBytes(%v) = %d, want %d", d, got, want)
		}
	}
}

func TestSilenceIsZeroFilled(t *testing.T) {
	buf := Silence(Format{SampleRate: 8000, Channels: 1}, 0.5)
	if len(buf) != 8000 {
		t.Fatalf("expected 8000 bytes, got %d", len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d is %#x, want zero", i, b)
		}
	}
}

func TestAccumulatorAppend(t *testing.T) {
	var sink bytes.Buffer
	acc := NewAccumulator(&sink, Format{SampleRate: 44100, Channels: 1})

	n, err := acc.Append(strings.NewReader(string(make([]byte, 88200))))
	if err != nil {
		t.Fatal(err)
	}
	if n != 88200 {
		t.Fatalf("Append wrote %d bytes, want 88200", n)
	}
	if err := acc.AppendBytes(make([]byte, 44100)); err != nil {
		t.Fatal(err)
	}

	if acc.Bytes() != 132300 {
		t.Fatalf("Bytes() = %d, want 132300", acc.Bytes())
	}
	if got := acc.Duration(); got != 1.5 {
		t.Fatalf("Duration() = %v, want 1.5", got)
	}
	if sink.Len() != 132300 {
		t.Fatalf("sink holds %d bytes, want 132300", sink.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write refused")
}

func TestAccumulatorAppendError(t *testing.T) {
	acc := NewAccumulator(failingWriter{}, Format{SampleRate: 44100, Channels: 1})
	if _, err := acc.Append(strings.NewReader("data")); err == nil {
		t.Fatal("expected error from failing writer")
	}
	if err := acc.AppendBytes([]byte("data")); err == nil {
		t.Fatal("expected error from failing writer")
	}
}
