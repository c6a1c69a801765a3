package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the slog logger the subcommands share. JSON output uses
// phuslu's slog handler; the default text handler is friendlier in a
// terminal.
func newLogger(jsonOut bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonOut {
		return slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(args []string, output io.Writer) error {
	fs := flag.NewFlagSet("vitesec", flag.ContinueOnError)
	fs.SetOutput(output)

	jsonFlag := fs.Bool("json", false, "log as JSON instead of text")

	fs.Usage = func() { printUsage(output, fs) }

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	cmdArgs := fs.Args()
	if len(cmdArgs) < 1 {
		fs.Usage()
		return nil // showing usage is a successful run
	}

	logger := newLogger(*jsonFlag)
	command := cmdArgs[0]
	commandArgs := cmdArgs[1:]

	switch command {
	case "harden":
		return handleHardenCommand(logger, commandArgs, output)
	case "print":
		return handlePrintCommand(commandArgs, output)
	case "serve":
		return handleServeCommand(logger, commandArgs, output)
	case "init":
		return handleInitCommand(logger, commandArgs, output)
	case "help":
		fs.Usage()
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vitesec [global options] <command> [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Injects the canonical security headers into a vite project: the vite")
	fmt.Fprintln(w, "config's server and preview sections, a production node server, an nginx")
	fmt.Fprintln(w, "reverse proxy config and the package.json serve script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  harden [dir ...]       patch the vite config and write the artifacts (default dir: .)")
	fmt.Fprintln(w, "  print <artifact>       render server.js or nginx.conf to stdout")
	fmt.Fprintln(w, "  serve [dir]            serve the build output with the headers applied")
	fmt.Fprintln(w, "  init [dir]             write a vitesec.toml with the default settings")
	fmt.Fprintln(w, "  help                   show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  vitesec harden")
	fmt.Fprintln(w, "  vitesec harden -force ./app ./admin")
	fmt.Fprintln(w, "  vitesec print nginx.conf -port 8080")
	fmt.Fprintln(w, "  vitesec serve ./app")
}
