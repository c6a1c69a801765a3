package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRunNoArgsShowsUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("usage not printed:\n%s", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"frobnicate"}, &out)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Error("usage not printed alongside the error")
	}
}

func TestRunInvalidGlobalFlag(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-nope", "harden"}, &out)
	if !errors.Is(err, ErrInvalidFlag) {
		t.Fatalf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestRunHelpCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, cmd := range []string{"harden", "print", "serve", "init"} {
		if !strings.Contains(out.String(), cmd) {
			t.Errorf("help output missing command %s", cmd)
		}
	}
}
