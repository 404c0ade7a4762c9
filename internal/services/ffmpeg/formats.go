package ffmpeg

import (
	"fmt"
	"strconv"

	"spritegen/internal/pcm"
)

// EncodeSpec names the target format and carries the encoder tuning knobs
// passed through from configuration.
type EncodeSpec struct {
	// Format is one of the names reported by Formats.
	Format string
	// Bitrate is the constant bitrate in kbit/s for lossy formats.
	Bitrate int
	// VBR selects mp3 variable-bitrate quality 0-9; any other value keeps
	// constant bitrate.
	VBR int
}

// Formats returns the supported export format names in stable order.
func Formats() []string {
	return []string{"aiff", "wav", "ac3", "mp3", "mp4", "m4a", "ogg", "opus", "webm"}
}

// Supported reports whether format names a known encoder configuration.
func Supported(format string) bool {
	for _, known := range Formats() {
		if format == known {
			return true
		}
	}
	return false
}

// Describe returns a short human-readable note about a format's encoding.
func Describe(format string) string {
	switch format {
	case "aiff":
		return "PCM in an AIFF container; source for the IMA4 caf conversion on macOS"
	case "wav":
		return "PCM in a WAV container"
	case "ac3":
		return "Dolby Digital at the configured bitrate"
	case "mp3":
		return "MPEG layer 3; honors the vbr quality setting when 0-9"
	case "mp4":
		return "AAC in an MP4 container"
	case "m4a":
		return "AAC in an M4A container"
	case "ogg":
		return "Vorbis in an Ogg container"
	case "opus":
		return "Opus at the configured bitrate"
	case "webm":
		return "Vorbis in a WebM container"
	default:
		return ""
	}
}

func encodeArgs(spec EncodeSpec, format pcm.Format) ([]string, error) {
	bitrate := strconv.Itoa(spec.Bitrate) + "k"
	switch spec.Format {
	case "aiff", "wav":
		return nil, nil
	case "ac3":
		return []string{"-acodec", "ac3", "-ab", bitrate}, nil
	case "mp3":
		args := []string{"-ar", strconv.Itoa(format.SampleRate), "-f", "mp3"}
		if spec.VBR >= 0 && spec.VBR <= 9 {
			args = append(args, "-aq", strconv.Itoa(spec.VBR))
		} else {
			args = append(args, "-ab", bitrate)
		}
		return args, nil
	case "mp4", "m4a":
		return []string{"-ab", bitrate, "-strict", "-2"}, nil
	case "ogg":
		return []string{"-acodec", "libvorbis", "-f", "ogg", "-ab", bitrate}, nil
	case "opus":
		return []string{"-acodec", "libopus", "-ab", bitrate}, nil
	case "webm":
		return []string{"-acodec", "libvorbis", "-f", "webm", "-ab", bitrate}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", spec.Format)
	}
}
