package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func TestConfigInitCreatesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, "Wrote sample configuration") {
		t.Fatalf("expected confirmation, got %q", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, target, "gap = 2.0\n")

	_, _, err := runCLI(t, "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}

	if _, _, err := runCLI(t, "config", "init", "--path", target, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ogg,m4a,mp3,ac3") {
		t.Fatalf("expected sample contents after --force, got:\n%s", data)
	}
}

func TestConfigInitDefaultsToConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	expected := filepath.Join(home, ".config", "spritegen", "config.toml")
	if _, err := os.Stat(expected); err != nil {
		t.Fatalf("expected config file at %s: %v", expected, err)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	writeTestConfig(t, configPath, "export = \"opus,webm\"\n")

	stdout, _, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, "# config: "+configPath) {
		t.Fatalf("expected source header, got:\n%s", stdout)
	}
	for _, want := range []string{"opus,webm", "[logging]", "[tools]"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, stdout)
		}
	}
}

func TestConfigShowWithDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	stdout, _, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, "built-in defaults") {
		t.Fatalf("expected defaults note, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "output =") {
		t.Fatalf("expected default output value, got:\n%s", stdout)
	}
}
