package env

import (
	"fmt"
	"strings"
)

// Accessor reads and writes raw variable values in one environment table.
//
// Names must be non-empty and free of '=' and NUL. On Windows this makes
// the hidden per-drive entries ("=C:" and friends) unreachable through any
// Accessor; they are left untouched in the process table.
type Accessor interface {
	// Lookup returns the raw value of name. found is false, with a nil
	// error, when the variable is not set.
	Lookup(name string) (value string, found bool, err error)

	// Set overwrites name with value.
	Set(name, value string) error

	// Unset removes name. Removing a variable that is not set succeeds.
	Unset(name string) error
}

// OS returns the accessor for the process environment of the build target.
func OS() Accessor {
	return osAccessor{}
}

// validateName rejects names no platform can store.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty variable name: %w", ErrInvalidArgument)
	}
	if strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("variable name %q contains '=' or NUL: %w", name, ErrInvalidArgument)
	}
	return nil
}

func validateValue(name, value string) error {
	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("value of %s contains NUL: %w", name, ErrInvalidArgument)
	}
	return nil
}
