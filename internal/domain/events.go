// Package domain defines events for the event-driven architecture.
// Events replace the callback system and enable loose coupling between components.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Coordinator events
	EventTrackSelected EventType = "track.selected"

	// Media session events
	EventLoadStarted     EventType = "media.load_started"
	EventMediaReady      EventType = "media.ready"
	EventDurationChanged EventType = "media.duration_changed"
	EventProgress        EventType = "media.progress"
	EventPlaying         EventType = "media.playing"
	EventPaused          EventType = "media.paused"
	EventTrackEnded      EventType = "media.ended"
	EventMediaError      EventType = "media.error"
	EventVolumeChanged   EventType = "media.volume_changed"
	EventStopped         EventType = "media.stopped"

	// Favorites events
	EventFavoriteToggled EventType = "favorite.toggled"

	// Navigation events
	EventViewChanged  EventType = "view.changed"
	EventThemeToggled EventType = "theme.toggled"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackSelectedEvent is published when the coordinator changes the current track.
type TrackSelectedEvent struct {
	baseEvent
	Track Track
	Index int // Playlist index (-1 if the track is not in the playlist)
}

// Type returns the event type.
func (e TrackSelectedEvent) Type() EventType {
	return EventTrackSelected
}

// NewTrackSelectedEvent creates a new TrackSelectedEvent.
func NewTrackSelectedEvent(track Track, index int) TrackSelectedEvent {
	return TrackSelectedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
		Index:     index,
	}
}

// LoadStartedEvent is published when a new source starts loading.
type LoadStartedEvent struct {
	baseEvent
	URL        string
	Generation uint64
}

// Type returns the event type.
func (e LoadStartedEvent) Type() EventType {
	return EventLoadStarted
}

// NewLoadStartedEvent creates a new LoadStartedEvent.
func NewLoadStartedEvent(url string, generation uint64) LoadStartedEvent {
	return LoadStartedEvent{
		baseEvent:  newBaseEvent(),
		URL:        url,
		Generation: generation,
	}
}

// MediaReadyEvent is published when the loaded source can start playing.
type MediaReadyEvent struct {
	baseEvent
	URL string
}

// Type returns the event type.
func (e MediaReadyEvent) Type() EventType {
	return EventMediaReady
}

// NewMediaReadyEvent creates a new MediaReadyEvent.
func NewMediaReadyEvent(url string) MediaReadyEvent {
	return MediaReadyEvent{
		baseEvent: newBaseEvent(),
		URL:       url,
	}
}

// DurationChangedEvent is published once the media duration is known.
type DurationChangedEvent struct {
	baseEvent
	Duration float64 // Seconds
}

// Type returns the event type.
func (e DurationChangedEvent) Type() EventType {
	return EventDurationChanged
}

// NewDurationChangedEvent creates a new DurationChangedEvent.
func NewDurationChangedEvent(duration float64) DurationChangedEvent {
	return DurationChangedEvent{
		baseEvent: newBaseEvent(),
		Duration:  duration,
	}
}

// ProgressEvent is published on each progress signal and after a seek.
type ProgressEvent struct {
	baseEvent
	Position float64 // Seconds
	Duration float64 // Seconds
}

// Type returns the event type.
func (e ProgressEvent) Type() EventType {
	return EventProgress
}

// NewProgressEvent creates a new ProgressEvent.
func NewProgressEvent(position, duration float64) ProgressEvent {
	return ProgressEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
		Duration:  duration,
	}
}

// PlayingEvent is published when the resource confirms playback started.
type PlayingEvent struct {
	baseEvent
	URL string
}

// Type returns the event type.
func (e PlayingEvent) Type() EventType {
	return EventPlaying
}

// NewPlayingEvent creates a new PlayingEvent.
func NewPlayingEvent(url string) PlayingEvent {
	return PlayingEvent{
		baseEvent: newBaseEvent(),
		URL:       url,
	}
}

// PausedEvent is published when playback is paused.
type PausedEvent struct {
	baseEvent
	Position float64
}

// Type returns the event type.
func (e PausedEvent) Type() EventType {
	return EventPaused
}

// NewPausedEvent creates a new PausedEvent.
func NewPausedEvent(position float64) PausedEvent {
	return PausedEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
	}
}

// TrackEndedEvent is published when the media reaches its natural end.
// The session never advances on its own; the coordinator reacts to this event.
type TrackEndedEvent struct {
	baseEvent
	URL        string
	Generation uint64
}

// Type returns the event type.
func (e TrackEndedEvent) Type() EventType {
	return EventTrackEnded
}

// NewTrackEndedEvent creates a new TrackEndedEvent.
func NewTrackEndedEvent(url string, generation uint64) TrackEndedEvent {
	return TrackEndedEvent{
		baseEvent:  newBaseEvent(),
		URL:        url,
		Generation: generation,
	}
}

// MediaErrorEvent is published when a load or play fails.
type MediaErrorEvent struct {
	baseEvent
	Message string
	Error   error
}

// Type returns the event type.
func (e MediaErrorEvent) Type() EventType {
	return EventMediaError
}

// NewMediaErrorEvent creates a new MediaErrorEvent.
func NewMediaErrorEvent(message string, err error) MediaErrorEvent {
	return MediaErrorEvent{
		baseEvent: newBaseEvent(),
		Message:   message,
		Error:     err,
	}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume int // 0 to 100
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume int) VolumeChangedEvent {
	return VolumeChangedEvent{
		baseEvent: newBaseEvent(),
		Volume:    volume,
	}
}

// StoppedEvent is published when the session releases its source.
type StoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e StoppedEvent) Type() EventType {
	return EventStopped
}

// NewStoppedEvent creates a new StoppedEvent.
func NewStoppedEvent() StoppedEvent {
	return StoppedEvent{baseEvent: newBaseEvent()}
}

// FavoriteToggledEvent is published when a track id enters or leaves the favorites.
type FavoriteToggledEvent struct {
	baseEvent
	TrackID    string
	IsFavorite bool
}

// Type returns the event type.
func (e FavoriteToggledEvent) Type() EventType {
	return EventFavoriteToggled
}

// NewFavoriteToggledEvent creates a new FavoriteToggledEvent.
func NewFavoriteToggledEvent(trackID string, isFavorite bool) FavoriteToggledEvent {
	return FavoriteToggledEvent{
		baseEvent:  newBaseEvent(),
		TrackID:    trackID,
		IsFavorite: isFavorite,
	}
}

// ViewChangedEvent is published when the user navigates.
type ViewChangedEvent struct {
	baseEvent
	View View
}

// Type returns the event type.
func (e ViewChangedEvent) Type() EventType {
	return EventViewChanged
}

// NewViewChangedEvent creates a new ViewChangedEvent.
func NewViewChangedEvent(view View) ViewChangedEvent {
	return ViewChangedEvent{
		baseEvent: newBaseEvent(),
		View:      view,
	}
}

// ThemeToggledEvent is published when the theme switches.
type ThemeToggledEvent struct {
	baseEvent
	Theme Theme
}

// Type returns the event type.
func (e ThemeToggledEvent) Type() EventType {
	return EventThemeToggled
}

// NewThemeToggledEvent creates a new ThemeToggledEvent.
func NewThemeToggledEvent(theme Theme) ThemeToggledEvent {
	return ThemeToggledEvent{
		baseEvent: newBaseEvent(),
		Theme:     theme,
	}
}
