// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"context"
)

// MediaSignalKind identifies a notification emitted by a MediaResource.
type MediaSignalKind int

const (
	// SignalLoadStart is emitted when the resource begins fetching a source.
	SignalLoadStart MediaSignalKind = iota

	// SignalDurationChange carries the source duration in seconds.
	SignalDurationChange

	// SignalCanPlay is emitted once the source is decoded and ready.
	SignalCanPlay

	// SignalTimeUpdate carries the current playback position in seconds.
	SignalTimeUpdate

	// SignalEnded is emitted when playback reaches the natural end of the source.
	SignalEnded

	// SignalError is emitted when the source cannot be fetched or decoded.
	SignalError
)

// String returns a human-readable representation of the signal kind.
func (k MediaSignalKind) String() string {
	switch k {
	case SignalLoadStart:
		return "loadstart"
	case SignalDurationChange:
		return "durationchange"
	case SignalCanPlay:
		return "canplay"
	case SignalTimeUpdate:
		return "timeupdate"
	case SignalEnded:
		return "ended"
	case SignalError:
		return "error"
	default:
		return "unknown"
	}
}

// MediaSignal is a single notification from a MediaResource.
// Generation is the value passed to the Load call that produced the signal.
type MediaSignal struct {
	Kind       MediaSignalKind
	Generation uint64
	Value      float64 // Seconds, for SignalDurationChange and SignalTimeUpdate
	Err        error   // For SignalError
}

// MediaListener receives signals from a MediaResource.
// Listeners may be invoked from any goroutine.
type MediaListener func(signal MediaSignal)

// MediaResource is the platform media primitive: one source at a time,
// asynchronous loading and an asynchronous play confirmation.
//
// Implementations must be thread-safe as they may be called from multiple goroutines.
type MediaResource interface {
	// SetListener installs the single receiver of resource signals.
	SetListener(listener MediaListener)

	// Load replaces the current source with url and starts loading it.
	// It returns immediately; progress is reported through signals tagged with generation.
	Load(generation uint64, url string)

	// Play starts or resumes playback of the loaded source and blocks until
	// the resource confirms or rejects it.
	Play(ctx context.Context) error

	// Pause halts playback, keeping the position.
	Pause()

	// Seek moves the playback position to the given seconds.
	Seek(seconds float64)

	// SetVolume sets the output gain, from 0.0 (silent) to 1.0 (full volume).
	SetVolume(volume float64)

	// Unload releases the current source. Pending signals of the released source are not emitted.
	Unload()

	// Close releases every resource held by the implementation.
	Close() error
}
