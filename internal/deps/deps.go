package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool spritegen may invoke.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Runtime returns the external tools the pipeline and commands rely on, with
// the configured binary overrides applied. FFmpeg is the only hard
// requirement; the rest degrade gracefully.
func Runtime(ffmpeg, ffprobe, afconvert string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     fallback(ffmpeg, "ffmpeg"),
			Description: "Decodes input clips and encodes every export format",
		},
		{
			Name:        "FFprobe",
			Command:     fallback(ffprobe, "ffprobe"),
			Description: "Reads input metadata for the inspect command",
			Optional:    true,
		},
		{
			Name:        "afconvert",
			Command:     fallback(afconvert, "afconvert"),
			Description: "Derives the IMA4 caf artifact from aiff exports (macOS only)",
			Optional:    true,
		},
	}
}

// Check evaluates a single requirement, resolving its command on PATH.
func Check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Check(req))
	}
	return results
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
