package config

import (
	"errors"
	"fmt"

	"vidconv/internal/presets"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.KillGraceSeconds < 0 {
		return errors.New("tools.kill_grace_seconds must be non-negative")
	}
	return nil
}

func (c *Config) validateConversion() error {
	if _, err := presets.Resolve(c.Selection()); err != nil {
		return fmt.Errorf("conversion: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
