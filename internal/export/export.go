package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"spritegen/internal/logging"
	"spritegen/internal/services/afconvert"
	"spritegen/internal/services/ffmpeg"
)

// Job is one export task: encode the combined stream into Format at Dest.
type Job struct {
	Format string
	Dest   string
}

// Plan expands the requested formats into ordered jobs for outputBase. Job
// order follows the request order and is the production order.
func Plan(formats []string, outputBase string) []Job {
	jobs := make([]Job, 0, len(formats))
	for _, format := range formats {
		jobs = append(jobs, Job{Format: format, Dest: outputBase + "." + format})
	}
	return jobs
}

// RawPartNaming selects how standalone per-clip artifacts are named.
type RawPartNaming string

const (
	// NamingIndex names raw parts <outputBase>_NNN.<ext> by input position.
	NamingIndex RawPartNaming = "index"
	// NamingBasename names raw parts <clipname>.<ext> next to the output base.
	NamingBasename RawPartNaming = "basename"
)

// ParseRawPartNaming maps a configuration value onto a naming mode.
func ParseRawPartNaming(value string) (RawPartNaming, error) {
	switch RawPartNaming(strings.TrimSpace(value)) {
	case NamingIndex, "":
		return NamingIndex, nil
	case NamingBasename:
		return NamingBasename, nil
	default:
		return "", fmt.Errorf("unknown raw part naming %q", value)
	}
}

// RawPart identifies one decoded clip buffer eligible for standalone export.
type RawPart struct {
	// Source is the clip's decoded raw PCM file.
	Source string
	// Name is the clip's sprite name.
	Name string
	// Seq is the clip's 1-based position in input order.
	Seq int
}

// Orchestrator runs export jobs strictly in order and collects the produced
// artifact paths.
type Orchestrator struct {
	encoder ffmpeg.Client
	caf     afconvert.Client
	logger  *slog.Logger
}

// New constructs an Orchestrator. A nil caf client disables the derived
// artifact; a nil logger keeps exports silent.
func New(encoder ffmpeg.Client, caf afconvert.Client, logger *slog.Logger) *Orchestrator {
	if caf == nil {
		caf = afconvert.Unavailable{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{encoder: encoder, caf: caf, logger: logger}
}

// Export encodes the stream at rawPath once per job, in job order, and
// returns the produced artifact paths. The first failing job aborts the
// remainder; the partial path list names what is already on disk. After a
// successful aiff job the derived caf artifact is appended when the host
// capability is present.
func (o *Orchestrator) Export(ctx context.Context, rawPath string, jobs []Job, spec ffmpeg.EncodeSpec) ([]string, error) {
	resources := make([]string, 0, len(jobs)+1)
	for _, job := range jobs {
		jobSpec := spec
		jobSpec.Format = job.Format
		o.logger.Info("exporting stream",
			logging.String("format", job.Format),
			logging.String("file", job.Dest))
		if err := o.encoder.Encode(ctx, rawPath, job.Dest, jobSpec); err != nil {
			return resources, err
		}
		resources = append(resources, job.Dest)
		if job.Format == "aiff" {
			derived, err := o.deriveCaf(ctx, job.Dest)
			if err != nil {
				return resources, err
			}
			if derived != "" {
				resources = append(resources, derived)
			}
		}
	}
	return resources, nil
}

// ExportRawParts encodes a single clip's decoded buffer once per format.
// The artifacts are side exports and never join the combined resource list.
func (o *Orchestrator) ExportRawParts(ctx context.Context, part RawPart, formats []string, spec ffmpeg.EncodeSpec, naming RawPartNaming, outputBase string) error {
	for _, format := range formats {
		dest := rawPartDest(outputBase, part, format, naming)
		jobSpec := spec
		jobSpec.Format = format
		o.logger.Info("exporting raw part",
			logging.String("clip", part.Name),
			logging.String("format", format),
			logging.String("file", dest))
		if err := o.encoder.Encode(ctx, part.Source, dest, jobSpec); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) deriveCaf(ctx context.Context, aiffPath string) (string, error) {
	if !o.caf.Available() {
		o.logger.Debug("caf conversion unavailable, skipping", logging.String("source", aiffPath))
		return "", nil
	}
	dst := strings.TrimSuffix(aiffPath, filepath.Ext(aiffPath)) + "." + afconvert.DerivedExtension
	o.logger.Info("exporting stream",
		logging.String("format", afconvert.DerivedExtension),
		logging.String("file", dst))
	if err := o.caf.Convert(ctx, aiffPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func rawPartDest(outputBase string, part RawPart, format string, naming RawPartNaming) string {
	if naming == NamingBasename {
		return filepath.Join(filepath.Dir(outputBase), part.Name+"."+format)
	}
	return fmt.Sprintf("%s_%03d.%s", outputBase, part.Seq, format)
}
