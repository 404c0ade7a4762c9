package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"spritegen/internal/pcm"
	"spritegen/internal/services"
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// Client defines decode and encode behaviour for raw PCM streams.
type Client interface {
	// Available reports whether the ffmpeg binary resolves on this host.
	Available() bool
	// Decode converts src into raw s16le PCM at dst.
	Decode(ctx context.Context, src, dst string) error
	// Encode renders the raw PCM stream at rawPath into dst per spec.
	Encode(ctx context.Context, rawPath, dst string, spec EncodeSpec) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
	format pcm.Format
}

// NewCLI constructs a client that decodes to and encodes from the given
// stream layout.
func NewCLI(format pcm.Format, opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", format: format}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the ffmpeg binary name the client invokes.
func (c *CLI) Binary() string {
	return c.binary
}

// Available reports whether the configured binary resolves on PATH.
func (c *CLI) Available() bool {
	_, err := lookPath(c.binary)
	return err == nil
}

// Decode converts src into raw s16le PCM at dst, resampling to the client's
// stream layout.
func (c *CLI) Decode(ctx context.Context, src, dst string) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("source path required")
	}
	if strings.TrimSpace(dst) == "" {
		return errors.New("destination path required")
	}

	args := []string{
		"-v", "error",
		"-i", src,
		"-ar", strconv.Itoa(c.format.SampleRate),
		"-ac", strconv.Itoa(c.format.Channels),
		"-f", "s16le",
		"-y", dst,
	}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		detail := fmt.Sprintf("file %q could not be added", filepath.Base(src))
		return services.Wrap(services.ErrDecodeFailure, "ffmpeg", "decode",
			withProcessDetail(detail, output, err), err)
	}
	return nil
}

// Encode renders the raw PCM stream at rawPath into dst using the encoder
// arguments for spec.Format.
func (c *CLI) Encode(ctx context.Context, rawPath, dst string, spec EncodeSpec) error {
	if strings.TrimSpace(rawPath) == "" {
		return errors.New("stream path required")
	}
	if strings.TrimSpace(dst) == "" {
		return errors.New("destination path required")
	}
	formatArgs, err := encodeArgs(spec, c.format)
	if err != nil {
		return err
	}

	args := []string{
		"-v", "error",
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(c.format.SampleRate),
		"-ac", strconv.Itoa(c.format.Channels),
		"-i", rawPath,
	}
	args = append(args, formatArgs...)
	args = append(args, dst)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		detail := fmt.Sprintf("format %q", spec.Format)
		return services.Wrap(services.ErrEncodeFailure, "ffmpeg", "encode",
			withProcessDetail(detail, output, err), err)
	}
	return nil
}

func withProcessDetail(detail string, output []byte, err error) string {
	if summary := services.ExitSummary(err); summary != "" {
		detail += " (" + summary + ")"
	}
	if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
		detail += ": " + trimmed
	}
	return detail
}

var _ Client = (*CLI)(nil)
