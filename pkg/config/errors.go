package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the struct
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrNilPointer is returned when a nil pointer is passed to Load
	ErrNilPointer = errors.New("config.nil_pointer")
)
