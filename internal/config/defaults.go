package config

const (
	defaultConfigPath       = "~/.config/vidconv/config.toml"
	defaultStateDir         = "~/.local/share/vidconv"
	defaultLogDir           = "~/.local/share/vidconv/logs"
	defaultFFmpegBinary     = "ffmpeg"
	defaultDVDAuthorBinary  = "dvdauthor"
	defaultShim             = "wsl"
	defaultKillGraceSeconds = 3
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:           defaultFFmpegBinary,
			DVDAuthor:        defaultDVDAuthorBinary,
			Shim:             defaultShim,
			KillGraceSeconds: defaultKillGraceSeconds,
		},
		Conversion: Conversion{
			Format:      "mp4",
			Codec:       "h265",
			Quality:     "medium",
			Resolution:  "original",
			DiscProfile: "off",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
