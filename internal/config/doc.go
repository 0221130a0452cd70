// Package config loads, normalizes, and validates vidconv configuration.
//
// Configuration lives in a TOML file (default ~/.config/vidconv/config.toml)
// covering state and log directories, external tool locations, the default
// conversion selection, and logging. Load applies defaults, expands paths,
// honours environment overrides for tool binaries, and validates the preset
// selection so commands fail before any work starts.
//
// CreateSample writes the embedded sample_config.toml for `vidconv config init`.
package config
