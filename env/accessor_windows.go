//go:build windows

package env

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	// initialBufferSize is the first guess, in UTF-16 code units, for the
	// size of a value. Most variables fit.
	initialBufferSize = 256

	// maxLookupAttempts bounds the grow-and-retry loop. The value may grow
	// again between the size query and the second read.
	maxLookupAttempts = 4
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procGetEnvironmentVariableW = kernel32.NewProc("GetEnvironmentVariableW")
	procSetEnvironmentVariableW = kernel32.NewProc("SetEnvironmentVariableW")
)

// osAccessor calls the wide-character Win32 environment functions.
type osAccessor struct{}

func (osAccessor) Lookup(name string) (string, bool, error) {
	if err := validateName(name); err != nil {
		return "", false, err
	}
	nameW, err := toWide(name)
	if err != nil {
		return "", false, err
	}

	buf := make([]uint16, initialBufferSize)
	for range maxLookupAttempts {
		r1, _, callErr := procGetEnvironmentVariableW.Call(
			uintptr(unsafe.Pointer(&nameW[0])),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(len(buf)),
		)
		n := int(r1)
		if n == 0 {
			var errno syscall.Errno
			if errors.As(callErr, &errno) && errno == windows.ERROR_ENVVAR_NOT_FOUND {
				return "", false, nil
			}
			// Set to the empty string.
			return "", true, nil
		}
		if n < len(buf) {
			value, err := fromWide(buf[:n])
			if err != nil {
				return "", false, fmt.Errorf("failed to decode %s: %w", name, err)
			}
			return value, true, nil
		}
		// n is the required size including the terminator.
		buf = make([]uint16, n)
	}
	return "", false, fmt.Errorf("value of %s kept growing while being read", name)
}

func (osAccessor) Set(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateValue(name, value); err != nil {
		return err
	}
	nameW, err := toWide(name)
	if err != nil {
		return err
	}
	valueW, err := toWide(value)
	if err != nil {
		return err
	}
	return setEnvironmentVariable(name, &nameW[0], &valueW[0])
}

func (osAccessor) Unset(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	nameW, err := toWide(name)
	if err != nil {
		return err
	}
	return setEnvironmentVariable(name, &nameW[0], nil)
}

// setEnvironmentVariable removes the variable when value is nil.
func setEnvironmentVariable(name string, nameW, valueW *uint16) error {
	r1, _, callErr := procSetEnvironmentVariableW.Call(
		uintptr(unsafe.Pointer(nameW)),
		uintptr(unsafe.Pointer(valueW)),
	)
	if r1 == 0 {
		var errno syscall.Errno
		if valueW == nil && errors.As(callErr, &errno) && errno == windows.ERROR_ENVVAR_NOT_FOUND {
			return nil
		}
		return fmt.Errorf("failed to update %s: %w", name, callErr)
	}
	return nil
}
