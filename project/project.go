// Package project applies the hardening steps to a vite project directory:
// patch the vite config in place, write the deployment artifacts, patch the
// package manifest. Every step is best effort; a step that cannot proceed is
// reported and the rest still run, so a re-run after fixing the cause picks
// up exactly what is missing (every step is idempotent).
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/caasmo/vitesec/artifact"
	"github.com/caasmo/vitesec/config"
	"github.com/caasmo/vitesec/headers"
	"github.com/caasmo/vitesec/vitecfg"
)

// configCandidates are probed in order; the first existing file wins.
var configCandidates = []string{
	"vite.config.ts",
	"vite.config.js",
	"vite.config.mts",
	"vite.config.mjs",
}

// DiscoverConfig returns the path of the project's vite config, or "" when
// the project has none.
func DiscoverConfig(dir string) (string, error) {
	for _, name := range configCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("project: error probing %s: %w", path, err)
		}
	}
	return "", nil
}

type Hardener struct {
	logger *slog.Logger
	force  bool // overwrite existing generated artifacts
}

func NewHardener(logger *slog.Logger, force bool) *Hardener {
	return &Hardener{logger: logger, force: force}
}

// Harden runs every hardening step against dir. It never fails the run over
// a single step; problems are logged and the remaining steps proceed.
func (h *Hardener) Harden(dir string) {
	logger := h.logger.With("dir", dir)

	cfg, err := config.Load(dir)
	if err != nil {
		logger.Warn("invalid tool config, using defaults", "err", err)
		cfg = config.NewDefaultConfig()
	}

	h.patchViteConfig(dir, logger)

	entries := headers.Canonical()
	if cfg.Artifacts.ServerJS {
		h.writeArtifact(dir, "server.js", logger, func() (string, error) {
			return artifact.ServerJS(entries, cfg.Artifacts.Port)
		})
	}
	if cfg.Artifacts.NginxConf {
		h.writeArtifact(dir, "nginx.conf", logger, func() (string, error) {
			return artifact.NginxConf(entries, cfg.Artifacts.Port)
		})
	}
	if cfg.Artifacts.Manifest {
		h.patchManifest(dir, logger)
	}
}

// HardenAll hardens several project directories concurrently. The patcher is
// stateless and each directory is touched by exactly one goroutine, so the
// fan-out is safe; individual failures are logged, never propagated.
func (h *Hardener) HardenAll(dirs []string) {
	var g errgroup.Group
	g.SetLimit(4)
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			h.Harden(dir)
			return nil
		})
	}
	_ = g.Wait()
}

func (h *Hardener) patchViteConfig(dir string, logger *slog.Logger) {
	path, err := DiscoverConfig(dir)
	if err != nil {
		logger.Warn("config discovery failed", "err", err)
		return
	}
	if path == "" {
		logger.Info("no vite config file found, skipping config patch")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read vite config", "path", path, "err", err)
		return
	}

	res, err := vitecfg.Patch(string(data))
	if err != nil {
		// ParseError: report and continue with the remaining steps.
		logger.Warn("vite config could not be parsed", "path", path, "err", err)
		return
	}
	if !res.Found {
		logger.Info("no defineConfig call found, config left unchanged", "path", path)
		return
	}
	for _, section := range res.Skipped {
		logger.Warn("section is not an object literal, left unchanged",
			"path", path, "section", section)
	}
	if !res.Changed {
		logger.Info("vite config already carries all headers", "path", path)
		return
	}

	if err := writeFilePreserveMode(path, []byte(res.Text)); err != nil {
		logger.Warn("failed to write vite config", "path", path, "err", err)
		return
	}
	logger.Info("security headers added to vite config", "path", path)
}

func (h *Hardener) writeArtifact(dir, name string, logger *slog.Logger, render func() (string, error)) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !h.force {
		logger.Info("artifact already exists, not overwriting", "path", path)
		return
	}

	contents, err := render()
	if err != nil {
		logger.Warn("failed to render artifact", "path", path, "err", err)
		return
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		logger.Warn("failed to write artifact", "path", path, "err", err)
		return
	}
	logger.Info("artifact written", "path", path)
}

func (h *Hardener) patchManifest(dir string, logger *slog.Logger) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no package.json found, skipping manifest patch")
		} else {
			logger.Warn("failed to read package.json", "path", path, "err", err)
		}
		return
	}

	out, changed, err := artifact.PatchManifest(data)
	if err != nil {
		logger.Warn("failed to patch package.json", "path", path, "err", err)
		return
	}
	if !changed {
		logger.Info("package.json already provisioned", "path", path)
		return
	}

	if err := writeFilePreserveMode(path, out); err != nil {
		logger.Warn("failed to write package.json", "path", path, "err", err)
		return
	}
	logger.Info("package.json patched", "path", path)
}

// writeFilePreserveMode rewrites an existing file keeping its permissions.
func writeFilePreserveMode(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
