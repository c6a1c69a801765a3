package main

import "errors"

// Shared error variables for the vitesec command. Only genuine CLI misuse
// becomes a non-zero exit; hardening steps that cannot proceed are logged
// inside the project package and the run still succeeds, so the tool always
// tries everything it can.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidFlag      = errors.New("invalid flag provided")
	ErrMissingArgument  = errors.New("missing required argument")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrUnknownArtifact  = errors.New("unknown artifact name")
	ErrDistNotFound     = errors.New("build output directory not found")
	ErrConfigExists     = errors.New("config file already exists")
)
