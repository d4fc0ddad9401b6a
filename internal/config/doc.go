// Package config loads and validates the TOML configuration that drives the
// build pipeline.
//
// Load resolves the config path (explicit flag, ~/.config/medley/config.toml,
// or ./medley.toml), decodes on top of Default(), expands and absolutizes all
// path fields, and validates the result. Missing config files are not an
// error; defaults apply.
package config
