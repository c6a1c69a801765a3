package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/caasmo/vitesec/project"
)

// handleHardenCommand patches the vite config and writes the deployment
// artifacts for one or more project directories. Step failures are logged
// and never fail the run; re-running after a fix is always safe because
// every step is idempotent.
func handleHardenCommand(logger *slog.Logger, args []string, output io.Writer) error {
	fs := flag.NewFlagSet("harden", flag.ContinueOnError)
	fs.SetOutput(output)
	force := fs.Bool("force", false, "overwrite existing generated artifacts")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	h := project.NewHardener(logger, *force)
	if len(dirs) == 1 {
		h.Harden(dirs[0])
	} else {
		h.HardenAll(dirs)
	}
	logger.Info("hardening completed", "projects", len(dirs))
	return nil
}
