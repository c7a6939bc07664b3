// Package model defines the value types shared by the envlist CLI layers.
//
// It holds the output format selector, the edit operations applied to list
// variables, and the exit codes and CLIError type that let the CLI
// translate library errors into process exit statuses.
package model
