package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeConversion()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	if value, ok := os.LookupEnv("VIDCONV_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FFmpeg = value
	}
	if value, ok := os.LookupEnv("VIDCONV_DVDAUTHOR"); ok && strings.TrimSpace(value) != "" {
		c.Tools.DVDAuthor = value
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.DVDAuthor = strings.TrimSpace(c.Tools.DVDAuthor)
	if c.Tools.DVDAuthor == "" {
		c.Tools.DVDAuthor = defaultDVDAuthorBinary
	}
	c.Tools.Shim = strings.TrimSpace(c.Tools.Shim)

	c.Tools.ShimWorkdir = strings.TrimSpace(c.Tools.ShimWorkdir)
	if c.Tools.ShimWorkdir == "" {
		if profile, ok := os.LookupEnv("USERPROFILE"); ok && strings.TrimSpace(profile) != "" {
			c.Tools.ShimWorkdir = profile
		} else if home, err := os.UserHomeDir(); err == nil {
			c.Tools.ShimWorkdir = home
		}
	} else {
		var err error
		if c.Tools.ShimWorkdir, err = expandPath(c.Tools.ShimWorkdir); err != nil {
			return fmt.Errorf("tools.shim_workdir: %w", err)
		}
	}
	if c.Tools.KillGraceSeconds == 0 {
		c.Tools.KillGraceSeconds = defaultKillGraceSeconds
	}
	return nil
}

func (c *Config) normalizeConversion() {
	defaults := Default().Conversion
	fill := func(value *string, fallback string) {
		*value = strings.TrimSpace(*value)
		if *value == "" {
			*value = fallback
		}
	}
	fill(&c.Conversion.Format, defaults.Format)
	fill(&c.Conversion.Codec, defaults.Codec)
	fill(&c.Conversion.Quality, defaults.Quality)
	fill(&c.Conversion.Resolution, defaults.Resolution)
	fill(&c.Conversion.DiscProfile, defaults.DiscProfile)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
