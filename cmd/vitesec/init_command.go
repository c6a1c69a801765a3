package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caasmo/vitesec/config"
)

// handleInitCommand writes the example vitesec.toml into the project
// directory. An existing file is never overwritten; remove it first to
// recreate it.
func handleInitCommand(logger *slog.Logger, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(output)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: init takes at most one directory", ErrTooManyArguments)
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	path := filepath.Join(dir, config.Filename)
	if _, err := os.Stat(path); err == nil {
		logger.Error("config file already exists - remove it first if you want to recreate it", "path", path)
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.WriteFile(path, config.TomlExample, 0644); err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	logger.Info("created config file from template", "path", path)
	return nil
}
