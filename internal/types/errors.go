// Package types defines custom error types for mediascout.
package types

import "fmt"

// ErrConfigInvalid indicates a configuration error
type ErrConfigInvalid struct {
	Path   string
	Reason string
	Err    error
}

func (e ErrConfigInvalid) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %s", msg)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, msg)
}

func (e ErrConfigInvalid) Unwrap() error {
	return e.Err
}

// ErrConfigNotFound indicates a configuration file doesn't exist
type ErrConfigNotFound struct {
	Path string
}

func (e ErrConfigNotFound) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// ErrPatternInvalid indicates a detection table entry could not be compiled
type ErrPatternInvalid struct {
	Table   string
	Pattern string
	Err     error
}

func (e ErrPatternInvalid) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Table, e.Pattern, e.Err)
}

func (e ErrPatternInvalid) Unwrap() error {
	return e.Err
}

// ErrInputNotFound indicates a filename list doesn't exist
type ErrInputNotFound struct {
	Path string
}

func (e ErrInputNotFound) Error() string {
	return fmt.Sprintf("input list not found: %s", e.Path)
}

// ErrFormatUnknown indicates an unsupported report format
type ErrFormatUnknown struct {
	Format string
}

func (e ErrFormatUnknown) Error() string {
	return fmt.Sprintf("unknown output format: %s", e.Format)
}
