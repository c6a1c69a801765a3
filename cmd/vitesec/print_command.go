package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/caasmo/vitesec/artifact"
	"github.com/caasmo/vitesec/headers"
)

// handlePrintCommand renders a single artifact to output, for piping into a
// file or inspecting what harden would write.
func handlePrintCommand(args []string, output io.Writer) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(output)
	port := fs.Int("port", artifact.DefaultPort, "port baked into the artifact")

	// Accept both `print server.js -port N` and `print -port N server.js`.
	var name string
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name = args[0]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if name == "" {
		if fs.NArg() == 0 {
			return fmt.Errorf("%w: artifact name (server.js or nginx.conf)", ErrMissingArgument)
		}
		name = fs.Arg(0)
	}

	return printArtifact(output, name, *port)
}

func printArtifact(w io.Writer, name string, port int) error {
	entries := headers.Canonical()

	var contents string
	var err error
	switch name {
	case "server.js":
		contents, err = artifact.ServerJS(entries, port)
	case "nginx.conf":
		contents, err = artifact.NginxConf(entries, port)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownArtifact, name)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, contents)
	return err
}
