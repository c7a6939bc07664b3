//go:build unix

package env

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// osAccessor maps directly onto getenv, setenv and unsetenv.
type osAccessor struct{}

func (osAccessor) Lookup(name string) (string, bool, error) {
	if err := validateName(name); err != nil {
		return "", false, err
	}
	value, found := unix.Getenv(name)
	return value, found, nil
}

func (osAccessor) Set(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateValue(name, value); err != nil {
		return err
	}
	if err := unix.Setenv(name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

func (osAccessor) Unset(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := unix.Unsetenv(name); err != nil {
		return fmt.Errorf("failed to unset %s: %w", name, err)
	}
	return nil
}
