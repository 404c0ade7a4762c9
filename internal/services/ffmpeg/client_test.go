package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spritegen/internal/pcm"
	"spritegen/internal/services"
)

var testFormat = pcm.Format{SampleRate: 44100, Channels: 1}

func captureCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(testFormat, WithBinary("/opt/ffmpeg"))
	if cli.Binary() != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.Binary())
	}
}

func TestAvailable(t *testing.T) {
	original := lookPath
	t.Cleanup(func() {
		lookPath = original
	})

	var requested string
	lookPath = func(name string) (string, error) {
		requested = name
		return "/usr/bin/" + name, nil
	}
	cli := NewCLI(testFormat, WithBinary("ffmpeg-custom"))
	if !cli.Available() {
		t.Fatal("expected Available to report true when the binary resolves")
	}
	if requested != "ffmpeg-custom" {
		t.Fatalf("expected lookup of configured binary, got %q", requested)
	}

	lookPath = func(string) (string, error) {
		return "", exec.ErrNotFound
	}
	if cli.Available() {
		t.Fatal("expected Available to report false when lookup fails")
	}
}

func TestDecodeRequiresPaths(t *testing.T) {
	cli := NewCLI(testFormat)
	if err := cli.Decode(context.Background(), "", "/tmp/out.raw"); err == nil {
		t.Fatal("expected error when source path is empty")
	}
	if err := cli.Decode(context.Background(), "/media/a.wav", ""); err == nil {
		t.Fatal("expected error when destination path is empty")
	}
}

func TestDecodeArguments(t *testing.T) {
	captured := captureCommand(t, "success")

	cli := NewCLI(pcm.Format{SampleRate: 22050, Channels: 2})
	if err := cli.Decode(context.Background(), "/media/beep.wav", "/tmp/clip-000.raw"); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := []string{
		"-v", "error",
		"-i", "/media/beep.wav",
		"-ar", "22050",
		"-ac", "2",
		"-f", "s16le",
		"-y", "/tmp/clip-000.raw",
	}
	if diff := cmp.Diff(want, *captured); diff != "" {
		t.Fatalf("decode args mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFailure(t *testing.T) {
	captureCommand(t, "failure")

	cli := NewCLI(testFormat)
	err := cli.Decode(context.Background(), "/media/broken.wav", "/tmp/clip-000.raw")
	if err == nil {
		t.Fatal("expected decode failure")
	}
	if !errors.Is(err, services.ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
	code, _, ok := services.ExitDetails(err)
	if !ok || code != 1 {
		t.Fatalf("expected exit code 1 in error chain, got code=%d ok=%v", code, ok)
	}
}

func TestDecodeCanceledContext(t *testing.T) {
	captureCommand(t, "success")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cli := NewCLI(testFormat)
	err := cli.Decode(ctx, "/media/beep.wav", "/tmp/clip-000.raw")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, services.ErrDecodeFailure) {
		t.Fatalf("cancellation classified as decode failure: %v", err)
	}
}

func TestEncodeArgumentsPerFormat(t *testing.T) {
	inputArgs := []string{
		"-v", "error",
		"-y",
		"-f", "s16le",
		"-ar", "44100",
		"-ac", "1",
		"-i", "/tmp/stream.raw",
	}
	cases := []struct {
		name string
		spec EncodeSpec
		tail []string
	}{
		{"aiff", EncodeSpec{Format: "aiff", Bitrate: 128, VBR: -1}, nil},
		{"wav", EncodeSpec{Format: "wav", Bitrate: 128, VBR: -1}, nil},
		{"ac3", EncodeSpec{Format: "ac3", Bitrate: 128, VBR: -1}, []string{"-acodec", "ac3", "-ab", "128k"}},
		{"mp3 cbr", EncodeSpec{Format: "mp3", Bitrate: 192, VBR: -1}, []string{"-ar", "44100", "-f", "mp3", "-ab", "192k"}},
		{"mp3 vbr", EncodeSpec{Format: "mp3", Bitrate: 192, VBR: 4}, []string{"-ar", "44100", "-f", "mp3", "-aq", "4"}},
		{"mp4", EncodeSpec{Format: "mp4", Bitrate: 128, VBR: -1}, []string{"-ab", "128k", "-strict", "-2"}},
		{"m4a", EncodeSpec{Format: "m4a", Bitrate: 128, VBR: -1}, []string{"-ab", "128k", "-strict", "-2"}},
		{"ogg", EncodeSpec{Format: "ogg", Bitrate: 128, VBR: -1}, []string{"-acodec", "libvorbis", "-f", "ogg", "-ab", "128k"}},
		{"opus", EncodeSpec{Format: "opus", Bitrate: 128, VBR: -1}, []string{"-acodec", "libopus", "-ab", "128k"}},
		{"webm", EncodeSpec{Format: "webm", Bitrate: 128, VBR: -1}, []string{"-acodec", "libvorbis", "-f", "webm", "-ab", "128k"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			captured := captureCommand(t, "success")

			cli := NewCLI(testFormat)
			dst := "/tmp/output." + tc.spec.Format
			if err := cli.Encode(context.Background(), "/tmp/stream.raw", dst, tc.spec); err != nil {
				t.Fatalf("Encode returned error: %v", err)
			}

			want := append(append([]string{}, inputArgs...), tc.tail...)
			want = append(want, dst)
			if diff := cmp.Diff(want, *captured); diff != "" {
				t.Fatalf("encode args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	cli := NewCLI(testFormat)
	err := cli.Encode(context.Background(), "/tmp/stream.raw", "/tmp/output.flac", EncodeSpec{Format: "flac"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestEncodeFailure(t *testing.T) {
	captureCommand(t, "failure")

	cli := NewCLI(testFormat)
	err := cli.Encode(context.Background(), "/tmp/stream.raw", "/tmp/output.mp3", EncodeSpec{Format: "mp3", Bitrate: 128, VBR: -1})
	if err == nil {
		t.Fatal("expected encode failure")
	}
	if !errors.Is(err, services.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	code, _, ok := services.ExitDetails(err)
	if !ok || code != 1 {
		t.Fatalf("expected exit code 1 in error chain, got code=%d ok=%v", code, ok)
	}
}

func TestSupported(t *testing.T) {
	for _, format := range Formats() {
		if !Supported(format) {
			t.Fatalf("Supported(%q) = false, want true", format)
		}
		if Describe(format) == "" {
			t.Fatalf("Describe(%q) is empty", format)
		}
	}
	if Supported("caf") {
		t.Fatal("caf is derived, not an encoder format")
	}
	if Supported("flac") {
		t.Fatal("flac should not be supported")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "conversion failed")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}

func TestDecodeWritesNothingOnValidationError(t *testing.T) {
	dir := t.TempDir()
	cli := NewCLI(testFormat)
	if err := cli.Decode(context.Background(), "", filepath.Join(dir, "out.raw")); err == nil {
		t.Fatal("expected validation error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, found %d", len(entries))
	}
}
