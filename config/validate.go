package config

import (
	"fmt"
	"net"
	"strings"
)

func Validate(cfg *Config) error {
	if err := validateServe(&cfg.Serve); err != nil {
		return fmt.Errorf("serve config validation failed: %w", err)
	}
	if cfg.Artifacts.Port < 1 || cfg.Artifacts.Port > 65535 {
		return fmt.Errorf("artifacts port %d out of range", cfg.Artifacts.Port)
	}
	return nil
}

// validateServe ensures Addr is host:port or :port and Dist is a relative
// path inside the project.
func validateServe(s *Serve) error {
	if s.Addr == "" {
		return fmt.Errorf("serve address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		return fmt.Errorf("invalid serve address %q: %w", s.Addr, err)
	}

	if s.Dist == "" {
		return fmt.Errorf("dist directory cannot be empty")
	}
	if strings.HasPrefix(s.Dist, "/") || strings.HasPrefix(s.Dist, "..") {
		return fmt.Errorf("dist directory %q must be relative to the project", s.Dist)
	}
	return nil
}
