package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/caasmo/vitesec/headers"
)

func TestPrintArtifacts(t *testing.T) {
	for _, name := range []string{"server.js", "nginx.conf"} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := printArtifact(&out, name, 8080); err != nil {
				t.Fatalf("printArtifact: %v", err)
			}
			for _, e := range headers.Canonical() {
				if !strings.Contains(out.String(), e.Name) {
					t.Errorf("%s missing header %s", name, e.Name)
				}
			}
			if !strings.Contains(out.String(), "8080") {
				t.Errorf("%s missing requested port", name)
			}
		})
	}
}

func TestPrintUnknownArtifact(t *testing.T) {
	var out bytes.Buffer
	err := printArtifact(&out, "Caddyfile", 8080)
	if !errors.Is(err, ErrUnknownArtifact) {
		t.Fatalf("expected ErrUnknownArtifact, got %v", err)
	}
}

func TestHandlePrintCommandFlagOrder(t *testing.T) {
	for _, args := range [][]string{
		{"nginx.conf", "-port", "9001"},
		{"-port", "9001", "nginx.conf"},
	} {
		var out bytes.Buffer
		if err := handlePrintCommand(args, &out); err != nil {
			t.Fatalf("args %v: %v", args, err)
		}
		if !strings.Contains(out.String(), "127.0.0.1:9001") {
			t.Errorf("args %v: port flag not honored", args)
		}
	}
}

func TestHandlePrintCommandMissingName(t *testing.T) {
	var out bytes.Buffer
	err := handlePrintCommand(nil, &out)
	if !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("expected ErrMissingArgument, got %v", err)
	}
}
