// Package domain defines domain-specific errors.
// These errors represent engine failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that the engine and its adapters can return.
var (
	// ErrInvalidConfiguration is returned when engine or adapter settings are rejected.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSurfaceUnavailable is returned when no drawable surface is attached at tick time.
	ErrSurfaceUnavailable = errors.New("surface unavailable")

	// ErrSpectrumUnavailable is returned when sampling fails or yields malformed data.
	ErrSpectrumUnavailable = errors.New("spectrum unavailable")

	// ErrNotResizable is returned when the attached surface cannot change its backing size.
	ErrNotResizable = errors.New("surface is not resizable")

	// ErrUnsupportedFormat is returned when an audio file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoTrackLoaded is returned when playback is attempted with no track loaded.
	ErrNoTrackLoaded = errors.New("no track loaded")

	// ErrServiceShutdown is returned by services used after Shutdown.
	ErrServiceShutdown = errors.New("service is shut down")
)

// ConfigurationError describes a rejected setting.
// It fails fast: no partial engine state is created when one is returned.
type ConfigurationError struct {
	Field   string // Setting that failed validation
	Value   any    // Offending value
	Message string // Error message
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets callers match every ConfigurationError with errors.Is(err, ErrInvalidConfiguration).
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(field string, value any, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FrameError reports why a single tick was skipped.
// It never terminates the animation loop.
type FrameError struct {
	Op      string // Stage that failed (e.g., "surface", "sample", "draw")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frame %s skipped: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("frame %s skipped: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *FrameError) Unwrap() error {
	return e.Err
}

// NewFrameError creates a new FrameError.
func NewFrameError(op, message string, err error) *FrameError {
	return &FrameError{
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// AudioError represents an error from the playback or decoding adapter.
type AudioError struct {
	Op      string // Operation that failed (e.g., "load", "play", "decode")
	Path    string // File path (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *AudioError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("audio %s failed for '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("audio %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *AudioError) Unwrap() error {
	return e.Err
}

// NewAudioError creates a new AudioError.
func NewAudioError(op, path, message string, err error) *AudioError {
	return &AudioError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}
