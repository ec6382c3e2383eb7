// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrTrackNotFound is returned when a requested track cannot be found.
	ErrTrackNotFound = errors.New("track not found")

	// ErrNoSource is returned when a media operation needs a loaded source and there is none.
	ErrNoSource = errors.New("no audio source loaded")

	// ErrSuperseded is returned when an in-flight load or play was overtaken by a newer load.
	ErrSuperseded = errors.New("operation superseded by a newer load")

	// ErrInvalidVolume is returned when the volume is out of valid range (0-100).
	ErrInvalidVolume = errors.New("invalid volume: must be between 0 and 100")

	// ErrInvalidPosition is returned when seeking while the duration is unknown.
	ErrInvalidPosition = errors.New("invalid playback position")

	// ErrUnsupportedFormat is returned when an audio format cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrEmptyCatalog is returned when a catalog contains no tracks.
	ErrEmptyCatalog = errors.New("catalog has no tracks")
)

// User-visible messages shown next to the player controls.
const (
	MessageLoadFailed = "Failed to load audio file"
	MessagePlayFailed = "Failed to play audio"
	MessageNoSource   = "No audio source for this track"
)

// MediaErrorKind classifies media failures.
type MediaErrorKind int

const (
	// LoadFailure means the resource could not open or decode the source.
	LoadFailure MediaErrorKind = iota

	// PlaybackRejected means the resource refused to start playback.
	PlaybackRejected
)

// String returns a human-readable representation of the kind.
func (k MediaErrorKind) String() string {
	switch k {
	case LoadFailure:
		return "load failure"
	case PlaybackRejected:
		return "playback rejected"
	default:
		return "unknown"
	}
}

// MediaError represents a failure reported by the media resource.
type MediaError struct {
	Kind    MediaErrorKind
	URL     string // Source url (if known)
	Message string // User-visible message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *MediaError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("media %s for '%s': %s", e.Kind, e.URL, e.Message)
	}
	return fmt.Sprintf("media %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *MediaError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a LoadFailure MediaError.
func NewLoadError(url string, err error) *MediaError {
	return &MediaError{Kind: LoadFailure, URL: url, Message: MessageLoadFailed, Err: err}
}

// NewPlaybackError creates a PlaybackRejected MediaError.
func NewPlaybackError(url string, err error) *MediaError {
	return &MediaError{Kind: PlaybackRejected, URL: url, Message: MessagePlayFailed, Err: err}
}

// IsMediaError reports whether err is a MediaError of the given kind.
func IsMediaError(err error, kind MediaErrorKind) bool {
	var mediaErr *MediaError
	if errors.As(err, &mediaErr) {
		return mediaErr.Kind == kind
	}
	return false
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "MediaSession", "CatalogService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
