package env

import "errors"

var (
	// ErrInvalidArgument is returned for malformed names and for values
	// that cannot be stored as a single list element.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEncoding is returned when text cannot be transcoded to or from
	// the wide representation used by the Windows environment API.
	ErrEncoding = errors.New("encoding failure")

	// ErrBufferTooSmall is returned by FirstInto when the caller's buffer
	// cannot hold the value plus its terminator.
	ErrBufferTooSmall = errors.New("buffer too small")
)
