// Package config handles configuration management for dotprofile.
// Configuration is layered with koanf: embedded TOML defaults, then the
// user's config file, then DOTPROFILE_* environment variables.
package config
