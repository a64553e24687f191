package config

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrUnknownCategory   = errors.New("category not found")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidPosition   = errors.New("unknown position")
	ErrInvalidOpacity    = errors.New("opacity out of range")
	ErrShortcutChanged   = errors.New("shortcut changed since it was read")
)

// ValidationError rejects an input before anything is mutated. Path names the
// offending document location (e.g. "categories.Godot").
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ReadError reports why a document could not be used. Load recovers from it
// by falling back to the default document.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: failed to read config: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed save. The in-memory document is unaffected.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: failed to write config: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
