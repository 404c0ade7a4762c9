package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Tools contains overrides for external binaries and scratch space.
type Tools struct {
	FFmpeg    string `toml:"ffmpeg"`
	FFprobe   string `toml:"ffprobe"`
	Afconvert string `toml:"afconvert"`
	TempDir   string `toml:"temp_dir"`
}

// Config encapsulates all configuration values for spritegen. Top-level keys
// mirror the command-line flags; [logging] and [tools] group the ambient
// settings.
type Config struct {
	Output        string   `toml:"output"`
	PathPrefix    string   `toml:"path"`
	Export        string   `toml:"export"`
	Schema        string   `toml:"format"`
	Autoplay      string   `toml:"autoplay"`
	Loops         []string `toml:"loop"`
	Silence       float64  `toml:"silence"`
	Gap           float64  `toml:"gap"`
	MinLength     float64  `toml:"minlength"`
	Bitrate       int      `toml:"bitrate"`
	VBR           int      `toml:"vbr"`
	SampleRate    int      `toml:"samplerate"`
	Channels      int      `toml:"channels"`
	RawParts      string   `toml:"rawparts"`
	RawPartNaming string   `toml:"rawparts_naming"`

	Logging Logging `toml:"logging"`
	Tools   Tools   `toml:"tools"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/spritegen/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; the returned config then carries pure defaults. The resolved
// path and whether a file was actually read are returned alongside.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("spritegen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ExportFormats returns the requested export formats in request order.
func (c *Config) ExportFormats() []string {
	return splitList(c.Export)
}

// RawPartFormats returns the per-clip raw export formats, empty when disabled.
func (c *Config) RawPartFormats() []string {
	return splitList(c.RawParts)
}

// ExpandPath resolves a leading tilde against the home directory and returns
// the cleaned absolute path. Empty input stays empty.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
