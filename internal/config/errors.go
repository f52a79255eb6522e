package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates a file extension with no known decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidSetting indicates a setting value outside its allowed set.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// BindingError describes a keymap entry that could not be registered.
type BindingError struct {
	// Source is the keymap file, or "defaults".
	Source string
	// Index is the entry's position in the file, starting at 1.
	Index int
	// Keys is the entry's key sequence as written.
	Keys string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: binding %d (%q): %v", e.Source, e.Index, e.Keys, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error {
	return e.Err
}
