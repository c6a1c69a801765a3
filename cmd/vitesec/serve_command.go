package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caasmo/vitesec/config"
	"github.com/caasmo/vitesec/server"
)

// handleServeCommand runs the built-in static file server over the
// project's build output.
func handleServeCommand(logger *slog.Logger, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(output)
	addr := fs.String("addr", "", "listen address (overrides vitesec.toml)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: serve takes at most one directory", ErrTooManyArguments)
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}

	root, err := filepath.Abs(filepath.Join(dir, cfg.Serve.Dist))
	if err != nil {
		return err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s (run your build first)", ErrDistNotFound, root)
	}

	return server.New(cfg.Serve, root, logger).Run(context.Background())
}
