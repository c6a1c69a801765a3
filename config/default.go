package config

import (
	_ "embed"
)

//go:embed vitesec.toml.example
var TomlExample []byte

// NewDefaultConfig returns the configuration used when no vitesec.toml is
// present: serve dist/ on the vite preview port, write every artifact.
func NewDefaultConfig() *Config {
	return &Config{
		Serve: Serve{
			Addr: ":4173",
			Dist: "dist",
		},
		Artifacts: Artifacts{
			Port:      4173,
			ServerJS:  true,
			NginxConf: true,
			Manifest:  true,
		},
	}
}
