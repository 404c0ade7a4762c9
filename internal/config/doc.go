// Package config loads, normalizes, and validates spritegen configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files whose top-level keys mirror the
// command-line flags. The Config type centralizes every knob a run needs,
// from stream geometry (sample rate, channels) to export formats and
// external tool overrides.
//
// Always obtain settings through this package so downstream code receives
// canonical format lists, sanitized paths, and clear validation errors.
package config
