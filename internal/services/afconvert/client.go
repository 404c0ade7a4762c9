package afconvert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"spritegen/internal/services"
)

var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
	hostOS         = runtime.GOOS
)

// Client performs the optional aiff-to-caf secondary conversion.
type Client interface {
	// Available reports whether the conversion can run on this host.
	Available() bool
	// Convert derives an IMA4 caf file at dst from the aiff artifact at src.
	Convert(ctx context.Context, src, dst string) error
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

// CLI wraps the afconvert command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "afconvert"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Available reports whether afconvert can run here. The tool ships only with
// macOS and must resolve on PATH.
func (c *CLI) Available() bool {
	if hostOS != "darwin" {
		return false
	}
	_, err := lookPath(c.binary)
	return err == nil
}

// Convert derives an IMA4-compressed caf from src.
func (c *CLI) Convert(ctx context.Context, src, dst string) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("source path required")
	}
	if strings.TrimSpace(dst) == "" {
		return errors.New("destination path required")
	}

	cmd := commandContext(ctx, c.binary, "-f", "caff", "-d", "ima4", src, dst) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		detail := "derived caf"
		if summary := services.ExitSummary(err); summary != "" {
			detail += " (" + summary + ")"
		}
		if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
			detail += ": " + trimmed
		}
		return services.Wrap(services.ErrEncodeFailure, "afconvert", "convert", detail, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)

// DerivedExtension is the file extension of the artifact Convert produces.
const DerivedExtension = "caf"

// Unavailable is a Client that always reports the capability missing, for
// hosts or callers that never want the derived artifact.
type Unavailable struct{}

// Available always reports false.
func (Unavailable) Available() bool { return false }

// Convert always fails; callers must check Available first.
func (Unavailable) Convert(ctx context.Context, src, dst string) error {
	return fmt.Errorf("afconvert unavailable on %s", hostOS)
}

var _ Client = Unavailable{}
