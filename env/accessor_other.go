//go:build !unix && !windows

package env

import (
	"fmt"
	"os"
)

// osAccessor goes through the os package on targets that are neither
// unix nor windows (plan9, wasip1, js).
type osAccessor struct{}

func (osAccessor) Lookup(name string) (string, bool, error) {
	if err := validateName(name); err != nil {
		return "", false, err
	}
	value, found := os.LookupEnv(name)
	return value, found, nil
}

func (osAccessor) Set(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateValue(name, value); err != nil {
		return err
	}
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

func (osAccessor) Unset(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Unsetenv(name); err != nil {
		return fmt.Errorf("failed to unset %s: %w", name, err)
	}
	return nil
}
