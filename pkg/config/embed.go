package config

import (
	_ "embed"
)

// defaultConfig is the lowest configuration layer. gen-config prints it
// with every value commented out.
//
//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsTOML returns the shipped defaults verbatim.
func DefaultsTOML() string {
	return string(defaultConfig)
}
