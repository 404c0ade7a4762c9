package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"spritegen/internal/config"
	"spritegen/internal/logging"
	"spritegen/internal/pipeline"
)

type assemblyRunner interface {
	Run(ctx context.Context, inputs []string) (*pipeline.Result, error)
}

var newAssemblyRunner = func(cfg *config.Config, logger *slog.Logger) assemblyRunner {
	return pipeline.New(cfg, logger)
}

type runOptions struct {
	output     string
	pathPrefix string
	export     string
	schema     string
	autoplay   string
	loops      []string
	silence    float64
	gap        float64
	minLength  float64
	bitrate    int
	vbr        int
	sampleRate int
	channels   int
	rawParts   string
	rawNaming  string
	logLevel   string
	logFormat  string
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", defaults.Output, "Output base name for artifacts and the JSON document")
	flags.StringVarP(&opts.pathPrefix, "path", "u", defaults.PathPrefix, "URL prefix applied to resource paths in the JSON document")
	flags.StringVarP(&opts.export, "export", "e", defaults.Export, "Comma-separated list of export formats")
	flags.StringVarP(&opts.schema, "format", "f", defaults.Schema, "JSON schema: default, howler, or createjs")
	flags.StringVarP(&opts.autoplay, "autoplay", "a", defaults.Autoplay, "Clip name to mark for autoplay")
	flags.StringArrayVar(&opts.loops, "loop", nil, "Clip name to mark as looping (repeatable)")
	flags.Float64VarP(&opts.silence, "silence", "s", defaults.Silence, "Seconds of looped lead-in silence")
	flags.Float64VarP(&opts.gap, "gap", "g", defaults.Gap, "Seconds of silence between clips")
	flags.Float64VarP(&opts.minLength, "minlength", "m", defaults.MinLength, "Minimum seconds per clip slot")
	flags.IntVarP(&opts.bitrate, "bitrate", "b", defaults.Bitrate, "Encoder bitrate in kbit/s")
	flags.IntVarP(&opts.vbr, "vbr", "v", defaults.VBR, "mp3 VBR quality 0-9 (-1 disables)")
	flags.IntVarP(&opts.sampleRate, "samplerate", "r", defaults.SampleRate, "Stream sample rate in Hz")
	flags.IntVarP(&opts.channels, "channels", "c", defaults.Channels, "Stream channel count (1 or 2)")
	flags.StringVarP(&opts.rawParts, "rawparts", "p", defaults.RawParts, "Comma-separated formats for per-clip raw exports")
	flags.StringVar(&opts.rawNaming, "rawparts-naming", defaults.RawPartNaming, "Raw part naming: index or basename")
	flags.StringVar(&opts.logLevel, "log-level", defaults.Logging.Level, "Log level: debug, info, warn, or error")
	flags.StringVar(&opts.logFormat, "log-format", defaults.Logging.Format, "Log format: auto, console, or json")
}

// applyFlagOverrides copies every flag the user set onto the loaded config,
// then re-normalizes and validates the merged result.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command, opts *runOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("path") {
		cfg.PathPrefix = opts.pathPrefix
	}
	if flags.Changed("export") {
		cfg.Export = opts.export
	}
	if flags.Changed("format") {
		cfg.Schema = opts.schema
	}
	if flags.Changed("autoplay") {
		cfg.Autoplay = opts.autoplay
	}
	if flags.Changed("loop") {
		cfg.Loops = opts.loops
	}
	if flags.Changed("silence") {
		cfg.Silence = opts.silence
	}
	if flags.Changed("gap") {
		cfg.Gap = opts.gap
	}
	if flags.Changed("minlength") {
		cfg.MinLength = opts.minLength
	}
	if flags.Changed("bitrate") {
		cfg.Bitrate = opts.bitrate
	}
	if flags.Changed("vbr") {
		cfg.VBR = opts.vbr
	}
	if flags.Changed("samplerate") {
		cfg.SampleRate = opts.sampleRate
	}
	if flags.Changed("channels") {
		cfg.Channels = opts.channels
	}
	if flags.Changed("rawparts") {
		cfg.RawParts = opts.rawParts
	}
	if flags.Changed("rawparts-naming") {
		cfg.RawPartNaming = opts.rawNaming
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.Validate()
}

func runAssembly(cmd *cobra.Command, ctx *commandContext, opts *runOptions, args []string) error {
	if len(args) == 0 {
		_ = cmd.Help()
		return errors.New("no input files specified")
	}

	cfg, err := ctx.load()
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cfg, cmd, opts); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	result, err := newAssemblyRunner(cfg, logger).Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sprites, %d resources, %.3fs)\n",
		result.JSONPath, result.SpriteMap.Len(), len(result.Resources), result.Duration)
	return nil
}
