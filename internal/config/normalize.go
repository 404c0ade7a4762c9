package config

import (
	"fmt"
	"strings"
)

// Normalize canonicalizes list, enum, and path fields in place. Callers that
// mutate a loaded Config must run it again before Validate.
func (c *Config) Normalize() error {
	c.normalizeAssembly()
	c.normalizeLogging()
	return c.normalizeTools()
}

func (c *Config) normalizeAssembly() {
	c.Output = strings.TrimSpace(c.Output)
	if c.Output == "" {
		c.Output = defaultOutput
	}
	c.PathPrefix = strings.TrimSpace(c.PathPrefix)
	c.Export = strings.Join(splitList(c.Export), ",")
	c.RawParts = strings.Join(splitList(c.RawParts), ",")
	c.Schema = strings.ToLower(strings.TrimSpace(c.Schema))
	if c.Schema == "" {
		c.Schema = defaultSchema
	}
	c.Autoplay = strings.TrimSpace(c.Autoplay)
	c.Loops = normalizeNames(c.Loops)
	c.RawPartNaming = strings.ToLower(strings.TrimSpace(c.RawPartNaming))
	if c.RawPartNaming == "" {
		c.RawPartNaming = defaultRawPartNaming
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeTools() error {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	c.Tools.Afconvert = strings.TrimSpace(c.Tools.Afconvert)
	if c.Tools.Afconvert == "" {
		c.Tools.Afconvert = defaultAfconvertBinary
	}
	c.Tools.TempDir = strings.TrimSpace(c.Tools.TempDir)
	if c.Tools.TempDir != "" {
		expanded, err := ExpandPath(c.Tools.TempDir)
		if err != nil {
			return fmt.Errorf("tools.temp_dir: %w", err)
		}
		c.Tools.TempDir = expanded
	}
	return nil
}

// splitList splits a comma-separated format list into lowercased names,
// dropping empty elements.
func splitList(value string) []string {
	fields := strings.Split(value, ",")
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// normalizeNames trims clip names and drops empties and duplicates while
// preserving order. Names stay case-sensitive; sprite keys are exact.
func normalizeNames(names []string) []string {
	if len(names) == 0 {
		return names
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
