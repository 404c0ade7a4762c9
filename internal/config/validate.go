package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"spritegen/internal/services/ffmpeg"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFormats(); err != nil {
		return err
	}
	if err := c.validateSchema(); err != nil {
		return err
	}
	if err := c.validateStream(); err != nil {
		return err
	}
	if err := c.validateDurations(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFormats() error {
	formats := c.ExportFormats()
	if len(formats) == 0 {
		return errors.New("export must name at least one format")
	}
	for _, format := range formats {
		if !ffmpeg.Supported(format) {
			return fmt.Errorf("export format %q is not supported (known: %s)", format, strings.Join(ffmpeg.Formats(), ", "))
		}
	}
	for _, format := range c.RawPartFormats() {
		if !ffmpeg.Supported(format) {
			return fmt.Errorf("rawparts format %q is not supported (known: %s)", format, strings.Join(ffmpeg.Formats(), ", "))
		}
	}
	switch c.RawPartNaming {
	case "index", "basename":
	default:
		return fmt.Errorf("rawparts_naming must be \"index\" or \"basename\", got %q", c.RawPartNaming)
	}
	return nil
}

func (c *Config) validateSchema() error {
	switch c.Schema {
	case "default", "howler", "createjs":
		return nil
	default:
		return fmt.Errorf("format must be one of default, howler, createjs; got %q", c.Schema)
	}
}

func (c *Config) validateStream() error {
	if c.SampleRate <= 0 {
		return errors.New("samplerate must be positive")
	}
	if c.Channels != 1 && c.Channels != 2 {
		return errors.New("channels must be 1 or 2")
	}
	if c.Bitrate <= 0 {
		return errors.New("bitrate must be positive")
	}
	if c.VBR < -1 || c.VBR > 9 {
		return errors.New("vbr must be between 0 and 9, or -1 to disable")
	}
	return nil
}

func (c *Config) validateDurations() error {
	for name, value := range map[string]float64{
		"silence":   c.Silence,
		"gap":       c.Gap,
		"minlength": c.MinLength,
	} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%s must be a finite number of seconds", name)
		}
		if value < 0 {
			return fmt.Errorf("%s must be >= 0 seconds", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
	return nil
}
