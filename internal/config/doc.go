// Package config loads and validates the rewatch configuration file.
//
// Configuration is TOML, defaulting to ~/.config/rewatch/config.toml with a
// project-local rewatch.toml fallback. Load applies repository defaults,
// overlays the file, expands ~ in every path field, and validates the result
// so the rest of the program never sees a half-formed config.
package config
