package config

const (
	defaultOutput          = "output"
	defaultExport          = "ogg,m4a,mp3,ac3"
	defaultSchema          = "default"
	defaultSilence         = 0.0
	defaultGap             = 1.0
	defaultMinLength       = 0.0
	defaultBitrate         = 128
	defaultVBR             = -1
	defaultSampleRate      = 44100
	defaultChannels        = 1
	defaultRawPartNaming   = "index"
	defaultLogFormat       = "auto"
	defaultLogLevel        = "info"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultAfconvertBinary = "afconvert"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output:        defaultOutput,
		Export:        defaultExport,
		Schema:        defaultSchema,
		Silence:       defaultSilence,
		Gap:           defaultGap,
		MinLength:     defaultMinLength,
		Bitrate:       defaultBitrate,
		VBR:           defaultVBR,
		SampleRate:    defaultSampleRate,
		Channels:      defaultChannels,
		RawPartNaming: defaultRawPartNaming,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Tools: Tools{
			FFmpeg:    defaultFFmpegBinary,
			FFprobe:   defaultFFprobeBinary,
			Afconvert: defaultAfconvertBinary,
		},
	}
}
