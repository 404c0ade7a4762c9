package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	writeStub(t, present)

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
}

func TestCheckEmptyCommand(t *testing.T) {
	status := Check(Requirement{Name: "Empty", Command: "   "})
	if status.Available {
		t.Fatal("expected blank command to be unavailable")
	}
	if status.Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", status.Detail)
	}
}

func TestRuntimeDefaults(t *testing.T) {
	reqs := Runtime("", "", "")
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "ffmpeg" || reqs[0].Optional {
		t.Fatalf("expected required ffmpeg first, got %#v", reqs[0])
	}
	if reqs[1].Command != "ffprobe" || !reqs[1].Optional {
		t.Fatalf("expected optional ffprobe, got %#v", reqs[1])
	}
	if reqs[2].Command != "afconvert" || !reqs[2].Optional {
		t.Fatalf("expected optional afconvert, got %#v", reqs[2])
	}
}

func TestRuntimeOverrides(t *testing.T) {
	reqs := Runtime("/opt/ffmpeg", "/opt/ffprobe", "/opt/afconvert")
	for i, want := range []string{"/opt/ffmpeg", "/opt/ffprobe", "/opt/afconvert"} {
		if reqs[i].Command != want {
			t.Fatalf("requirement %d command = %q, want %q", i, reqs[i].Command, want)
		}
	}
}

func TestFFmpegStatusExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	ffmpegPath := filepath.Join(tmp, executableName("ffmpeg"))
	writeStub(t, ffmpegPath)

	status := FFmpegStatus(ffmpegPath)
	if !status.Available {
		t.Fatalf("expected explicit path to be available, got detail %q", status.Detail)
	}
	if status.Command != ffmpegPath {
		t.Fatalf("expected command %q, got %q", ffmpegPath, status.Command)
	}
}

func TestFFmpegStatusExplicitPathMissing(t *testing.T) {
	tmp := t.TempDir()
	status := FFmpegStatus(filepath.Join(tmp, "ffmpeg"))
	if status.Available {
		t.Fatal("expected missing explicit path to be unavailable")
	}
	if !strings.Contains(status.Detail, "not executable") {
		t.Fatalf("unexpected detail: %s", status.Detail)
	}
}

func TestFFmpegStatusPathLookup(t *testing.T) {
	tmp := t.TempDir()
	binDir := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	ffmpegPath := filepath.Join(binDir, executableName("ffmpeg"))
	writeStub(t, ffmpegPath)

	oldPath := os.Getenv("PATH")
	newPath := binDir
	if oldPath != "" {
		newPath = binDir + string(os.PathListSeparator) + oldPath
	}
	t.Setenv("PATH", newPath)

	status := FFmpegStatus("")
	if !status.Available {
		t.Fatalf("expected ffmpeg on PATH to be available, got detail %q", status.Detail)
	}
	if status.Command != ffmpegPath {
		t.Fatalf("expected command %q, got %q", ffmpegPath, status.Command)
	}
}

func TestFFmpegStatusNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := FFmpegStatus("")
	if status.Available {
		t.Fatal("expected ffmpeg resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when ffmpeg is unavailable")
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
