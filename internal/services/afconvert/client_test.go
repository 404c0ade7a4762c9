package afconvert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"

	"spritegen/internal/services"
)

func setHostOS(t *testing.T, value string) {
	t.Helper()
	original := hostOS
	hostOS = value
	t.Cleanup(func() {
		hostOS = original
	})
}

func setLookPath(t *testing.T, err error) {
	t.Helper()
	original := lookPath
	lookPath = func(string) (string, error) {
		if err != nil {
			return "", err
		}
		return "/usr/bin/afconvert", nil
	}
	t.Cleanup(func() {
		lookPath = original
	})
}

func setHelperCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("AFCONVERT_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestAvailableRequiresDarwin(t *testing.T) {
	setHostOS(t, "linux")
	setLookPath(t, nil)
	if NewCLI().Available() {
		t.Fatal("expected unavailable on linux even with binary present")
	}
}

func TestAvailableRequiresBinary(t *testing.T) {
	setHostOS(t, "darwin")
	setLookPath(t, exec.ErrNotFound)
	if NewCLI().Available() {
		t.Fatal("expected unavailable when binary is missing")
	}
}

func TestAvailableOnDarwinWithBinary(t *testing.T) {
	setHostOS(t, "darwin")
	setLookPath(t, nil)
	if !NewCLI().Available() {
		t.Fatal("expected available on darwin with binary present")
	}
}

func TestConvertArguments(t *testing.T) {
	captured := setHelperCommand(t, "success")

	cli := NewCLI()
	if err := cli.Convert(context.Background(), "/tmp/output.aiff", "/tmp/output.caf"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	want := []string{"-f", "caff", "-d", "ima4", "/tmp/output.aiff", "/tmp/output.caf"}
	if diff := cmp.Diff(want, *captured); diff != "" {
		t.Fatalf("convert args mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	err := NewCLI().Convert(context.Background(), "/tmp/output.aiff", "/tmp/output.caf")
	if err == nil {
		t.Fatal("expected convert failure")
	}
	if !errors.Is(err, services.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
}

func TestConvertRequiresPaths(t *testing.T) {
	cli := NewCLI()
	if err := cli.Convert(context.Background(), "", "/tmp/output.caf"); err == nil {
		t.Fatal("expected error when source is empty")
	}
	if err := cli.Convert(context.Background(), "/tmp/output.aiff", ""); err == nil {
		t.Fatal("expected error when destination is empty")
	}
}

func TestUnavailableClient(t *testing.T) {
	var client Client = Unavailable{}
	if client.Available() {
		t.Fatal("Unavailable reports the capability present")
	}
	if err := client.Convert(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected error from Unavailable.Convert")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("AFCONVERT_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "conversion failed")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
