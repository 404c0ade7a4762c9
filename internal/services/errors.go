package services

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

var (
	// ErrMissingDependency marks a required external binary that could not be
	// resolved before the run started.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInputNotFound marks a source clip path that does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrDecodeFailure marks a decoder process that exited abnormally.
	ErrDecodeFailure = errors.New("decode failure")
	// ErrEncodeFailure marks an encoder process that exited abnormally.
	ErrEncodeFailure = errors.New("encode failure")
	// ErrLocked marks an output base already claimed by another run.
	ErrLocked = errors.New("output locked")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDecodeFailure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitDetails extracts the exit code and terminating signal from an error
// chain containing an *exec.ExitError. The code is -1 when the process was
// killed by a signal.
func ExitDetails(err error) (code int, signal string, ok bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, "", false
	}
	code = exitErr.ExitCode()
	if status, isWait := exitErr.Sys().(syscall.WaitStatus); isWait && status.Signaled() {
		signal = status.Signal().String()
	}
	return code, signal, true
}

// ExitSummary renders a short human-readable description of how an external
// process ended, for inclusion in wrapped error messages.
func ExitSummary(err error) string {
	code, signal, ok := ExitDetails(err)
	if !ok {
		return ""
	}
	if signal != "" {
		return fmt.Sprintf("terminated by signal %s", signal)
	}
	return fmt.Sprintf("exit status %d", code)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
