package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// FFmpegStatus resolves the decoder/encoder binary, honoring explicit paths
// from configuration. The pipeline refuses to start when this reports
// unavailable.
func FFmpegStatus(command string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Decodes input clips and encodes every export format",
	}

	name := fallback(strings.TrimSpace(command), "ffmpeg")
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		result.Command = name
		if info, err := os.Stat(name); err == nil && isExecutable(info) {
			result.Available = true
			return result
		}
		result.Detail = fmt.Sprintf("binary %q not executable", name)
		return result
	}

	if resolved, err := exec.LookPath(name); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}
	result.Command = name
	result.Detail = fmt.Sprintf("binary %q not found", name)
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
