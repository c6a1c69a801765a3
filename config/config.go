// Package config holds the tool configuration, loaded from an optional
// vitesec.toml in the project directory. Everything has a default; the file
// only exists to override paths and ports per deployment. The canonical
// header list is deliberately not configurable here, it is a process-wide
// constant shared by every artifact.
package config

// Filename is the config file looked up in the project directory.
const Filename = "vitesec.toml"

type Config struct {
	Serve     Serve     `toml:"serve"`
	Artifacts Artifacts `toml:"artifacts"`
}

// Serve configures the built-in static file server.
type Serve struct {
	// Addr is the listen address, host:port or :port.
	Addr string `toml:"addr"`
	// Dist is the build output directory to serve, relative to the
	// project directory.
	Dist string `toml:"dist"`
}

// Artifacts configures what the harden command writes next to the config.
type Artifacts struct {
	// Port is baked into server.js as the fallback port and into
	// nginx.conf as the proxy upstream.
	Port int `toml:"port"`

	ServerJS  bool `toml:"server_js"`
	NginxConf bool `toml:"nginx_conf"`
	Manifest  bool `toml:"manifest"`
}
