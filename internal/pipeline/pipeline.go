package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/text/unicode/norm"

	"spritegen/internal/config"
	"spritegen/internal/export"
	"spritegen/internal/logging"
	"spritegen/internal/output"
	"spritegen/internal/pcm"
	"spritegen/internal/services"
	"spritegen/internal/services/afconvert"
	"spritegen/internal/services/ffmpeg"
	"spritegen/internal/sprite"
	"spritegen/internal/workspace"
)

// Result summarizes a completed run.
type Result struct {
	// JSONPath is the sprite map document written next to the artifacts.
	JSONPath string
	// Resources lists the exported artifacts in production order.
	Resources []string
	// SpriteMap holds the assembled entries in insertion order.
	SpriteMap *sprite.Map
	// Duration is the total stream length in seconds, trailing silence
	// included.
	Duration float64
}

// Option configures optional Pipeline collaborators.
type Option func(*Pipeline)

// WithCodec overrides the default ffmpeg client.
func WithCodec(client ffmpeg.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.codec = client
		}
	}
}

// WithCafClient overrides the default afconvert client.
func WithCafClient(client afconvert.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.caf = client
		}
	}
}

// Pipeline coordinates one assembly run from validated configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	codec  ffmpeg.Client
	caf    afconvert.Client
}

// New constructs a pipeline around cfg. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	format := pcm.Format{SampleRate: cfg.SampleRate, Channels: cfg.Channels}
	p := &Pipeline{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		codec:  ffmpeg.NewCLI(format, ffmpeg.WithBinary(cfg.Tools.FFmpeg)),
		caf:    afconvert.NewCLI(afconvert.WithBinary(cfg.Tools.Afconvert)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run assembles inputs into the configured artifacts and sprite map JSON.
// The JSON document is written only after every export succeeded; artifacts
// produced before a failure stay on disk.
func (p *Pipeline) Run(ctx context.Context, inputs []string) (*Result, error) {
	if !p.codec.Available() {
		return nil, services.Wrap(services.ErrMissingDependency, "ffmpeg", "preflight",
			fmt.Sprintf("binary %q not found on PATH", p.cfg.Tools.FFmpeg), nil)
	}

	resolved, err := resolveInputs(inputs)
	if err != nil {
		return nil, err
	}
	schema, err := output.ParseSchema(p.cfg.Schema)
	if err != nil {
		return nil, err
	}
	naming, err := export.ParseRawPartNaming(p.cfg.RawPartNaming)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(p.cfg.Output), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	release, err := p.lockOutput()
	if err != nil {
		return nil, err
	}
	defer release()

	ws, err := workspace.Create(p.cfg.Tools.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			p.logger.Warn("failed to remove workspace", logging.Error(err))
		}
	}()

	streamPath := ws.StreamFile()
	stream, err := os.Create(streamPath)
	if err != nil {
		return nil, fmt.Errorf("create stream file: %w", err)
	}
	defer stream.Close()

	format := pcm.Format{SampleRate: p.cfg.SampleRate, Channels: p.cfg.Channels}
	acc := pcm.NewAccumulator(stream, format)

	autoplay := p.cfg.Autoplay
	if autoplay == "" && p.cfg.Silence > 0 {
		autoplay = sprite.SilenceName
	}
	asm := sprite.NewAssembler(acc, sprite.Options{
		Gap:       p.cfg.Gap,
		MinLength: p.cfg.MinLength,
		Autoplay:  autoplay,
		Loops:     p.cfg.Loops,
	})
	if p.cfg.Silence > 0 {
		if _, err := asm.LeadIn(p.cfg.Silence); err != nil {
			return nil, fmt.Errorf("write lead-in silence: %w", err)
		}
		p.logger.Info("lead-in silence added", logging.Float64("seconds", p.cfg.Silence))
	}

	spec := ffmpeg.EncodeSpec{Bitrate: p.cfg.Bitrate, VBR: p.cfg.VBR}
	orch := export.New(p.codec, p.caf, p.logger)
	rawFormats := p.cfg.RawPartFormats()

	for i, input := range resolved {
		clipPath := ws.ClipFile(i)
		if err := p.codec.Decode(ctx, input, clipPath); err != nil {
			return nil, err
		}
		name := clipName(input)
		entry, err := appendClip(asm, name, clipPath)
		if err != nil {
			return nil, err
		}
		p.logger.Info("clip added",
			logging.String("clip", name),
			logging.Float64("start", entry.Start),
			logging.Float64("end", entry.End))
		if len(rawFormats) > 0 {
			part := export.RawPart{Source: clipPath, Name: name, Seq: i + 1}
			if err := orch.ExportRawParts(ctx, part, rawFormats, spec, naming, p.cfg.Output); err != nil {
				return nil, err
			}
		}
		if err := ws.Remove(clipPath); err != nil {
			p.logger.Warn("failed to remove decoded clip",
				logging.String("path", clipPath), logging.Error(err))
		}
	}

	duration := asm.Offset()
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("close stream file: %w", err)
	}

	resources, err := orch.Export(ctx, streamPath, export.Plan(p.cfg.ExportFormats(), p.cfg.Output), spec)
	if err != nil {
		return nil, err
	}
	if err := ws.Remove(streamPath); err != nil {
		p.logger.Warn("failed to remove stream file",
			logging.String("path", streamPath), logging.Error(err))
	}

	encoded, err := output.Render(schema, output.Document{
		Resources:  resources,
		Sprites:    asm.SpriteMap(),
		Autoplay:   autoplay,
		PathPrefix: p.cfg.PathPrefix,
	})
	if err != nil {
		return nil, err
	}
	jsonPath := p.cfg.Output + ".json"
	if err := os.WriteFile(jsonPath, encoded, 0o644); err != nil {
		return nil, fmt.Errorf("write sprite map: %w", err)
	}

	attrs := []logging.Attr{
		logging.String("json", jsonPath),
		logging.Float64("duration", duration),
		logging.Int("entries", asm.SpriteMap().Len()),
		logging.Int("resources", len(resources)),
	}
	if autoplay != "" {
		attrs = append(attrs, logging.String("autoplay", autoplay))
	}
	p.logger.Info("sprite assembly complete", logging.Args(attrs...)...)

	return &Result{
		JSONPath:  jsonPath,
		Resources: resources,
		SpriteMap: asm.SpriteMap(),
		Duration:  duration,
	}, nil
}

// lockOutput guards the output base against concurrent runs. The returned
// release func unlocks and removes the lock file.
func (p *Pipeline) lockOutput() (func(), error) {
	lockPath := p.cfg.Output + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLocked, "pipeline", "lock",
			fmt.Sprintf("lock file %q", lockPath), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "pipeline", "lock",
			fmt.Sprintf("another run is writing %q", p.cfg.Output), nil)
	}
	release := func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release output lock", logging.Error(err))
		}
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("failed to remove lock file",
				logging.String("path", lockPath), logging.Error(err))
		}
	}
	return release, nil
}

// resolveInputs de-duplicates the input list preserving first occurrence and
// verifies every path names an existing file.
func resolveInputs(inputs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(inputs))
	resolved := make([]string, 0, len(inputs))
	for _, input := range inputs {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		info, err := os.Stat(trimmed)
		if err != nil {
			return nil, services.Wrap(services.ErrInputNotFound, "pipeline", "inputs",
				fmt.Sprintf("file %q", trimmed), err)
		}
		if info.IsDir() {
			return nil, services.Wrap(services.ErrInputNotFound, "pipeline", "inputs",
				fmt.Sprintf("%q is a directory", trimmed), nil)
		}
		resolved = append(resolved, trimmed)
	}
	if len(resolved) == 0 {
		return nil, errors.New("at least one input file required")
	}
	return resolved, nil
}

// clipName derives the sprite entry name from an input path: the basename
// minus extension, NFC-normalized so decomposed filenames match their
// composed spelling.
func clipName(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}

func appendClip(asm *sprite.Assembler, name, path string) (sprite.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return sprite.Entry{}, fmt.Errorf("open decoded clip: %w", err)
	}
	defer f.Close()
	return asm.AddClip(name, f)
}
