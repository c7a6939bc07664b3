// Package model defines the value types shared by the envlist CLI layers.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shinji-kodama/envlist/env"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	// OutputText is human-readable, one item per line.
	OutputText OutputFormat = "text"

	// OutputJSON is indented JSON for machine consumption.
	OutputJSON OutputFormat = "json"

	// OutputYAML is YAML, convenient for pasting into profiles.
	OutputYAML OutputFormat = "yaml"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat is one of the predefined formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a string to an OutputFormat.
// Matching is case-insensitive.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// EditKind is the operation an Edit performs on a variable.
type EditKind string

const (
	// EditPrepend inserts the value's elements at the head of the list.
	EditPrepend EditKind = "prepend"

	// EditAppend inserts the value's elements at the tail of the list.
	EditAppend EditKind = "append"

	// EditRemove drops the value's elements from the list.
	EditRemove EditKind = "remove"

	// EditSet overwrites the variable with the raw value.
	EditSet EditKind = "set"

	// EditUnset removes the variable.
	EditUnset EditKind = "unset"
)

// String returns the string representation of EditKind.
func (k EditKind) String() string {
	return string(k)
}

// Edit is one change to one variable, as given on the command line
// (e.g. --prepend PATH=/opt/bin).
type Edit struct {
	Kind  EditKind `json:"kind" yaml:"kind"`
	Name  string   `json:"name" yaml:"name"`
	Value string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// ParseEdit builds an Edit from a NAME=VALUE flag argument. For EditUnset
// the argument is the bare variable name.
func ParseEdit(kind EditKind, arg string) (Edit, error) {
	if kind == EditUnset {
		if arg == "" || strings.Contains(arg, "=") {
			return Edit{}, fmt.Errorf("invalid --unset argument %q: expected NAME", arg)
		}
		return Edit{Kind: kind, Name: arg}, nil
	}
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return Edit{}, fmt.Errorf("invalid --%s argument %q: expected NAME=VALUE", kind, arg)
	}
	return Edit{Kind: kind, Name: name, Value: value}, nil
}

// Apply performs the edit through e.
func (ed Edit) Apply(e *env.Env) error {
	switch ed.Kind {
	case EditPrepend:
		return e.Add(ed.Name, ed.Value, true)
	case EditAppend:
		return e.Add(ed.Name, ed.Value, false)
	case EditRemove:
		return removeElements(e, ed.Name, ed.Value)
	case EditSet:
		return e.Set(ed.Name, ed.Value)
	case EditUnset:
		return e.Remove(ed.Name)
	default:
		return fmt.Errorf("unknown edit kind %q", ed.Kind)
	}
}

// removeElements drops every element of the delimited raw value from the
// list variable name. A list left empty unsets the variable.
func removeElements(e *env.Env, name, raw string) error {
	l, err := e.Load(name)
	if err != nil {
		return err
	}
	for _, v := range env.Decompose(raw, e.Separator()).Values() {
		l.Remove(v)
	}
	return e.Save(l, name)
}

// ExitCode defines the process exit codes of the envlist CLI.
// These codes allow scripts to tell failure causes apart.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidArgument indicates a malformed variable name, a value that
	// cannot be stored as a list element, or a bad flag.
	ExitInvalidArgument ExitCode = 2

	// ExitVarNotFound indicates the requested variable is not set.
	ExitVarNotFound ExitCode = 3

	// ExitProfileNotFound indicates the --profile file does not exist.
	ExitProfileNotFound ExitCode = 4

	// ExitCommandFailed indicates the command given to exec could not be
	// started.
	ExitCommandFailed ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate library errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeFor maps an error from the env package to an exit code.
// A CLIError anywhere in the chain keeps its own code.
func ExitCodeFor(err error) ExitCode {
	var cliErr *CLIError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cliErr):
		return cliErr.Code
	case errors.Is(err, env.ErrInvalidArgument), errors.Is(err, env.ErrEncoding):
		return ExitInvalidArgument
	default:
		return ExitGeneralError
	}
}
