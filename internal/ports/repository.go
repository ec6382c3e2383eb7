// Package ports define repository interfaces for data access abstraction.
package ports

import (
	"github.com/hariomify/hariomify/internal/domain"
)

// FavoritesRepository stores the set of favorite track ids.
// The set lives in memory for the lifetime of the process.
//
// Thread-safety: Implementations must be thread-safe.
type FavoritesRepository interface {
	// Add inserts id. Adding an existing id is a no-op.
	Add(id string)

	// Remove deletes id. Removing an absent id is a no-op.
	Remove(id string)

	// Contains reports whether id is in the set.
	Contains(id string) bool

	// List returns the ids in insertion order.
	List() []string

	// Count returns the number of ids.
	Count() int

	// Clear empties the set.
	Clear()
}

// CatalogSource provides the fixed playlist and the browse genres.
type CatalogSource interface {
	// Tracks returns the playlist in display order.
	Tracks() []domain.Track

	// Genres returns the browse tiles.
	Genres() []domain.Genre
}

// ActivityRepository keeps the most recent listening activity, newest first.
//
// Thread-safety: Implementations must be thread-safe.
type ActivityRepository interface {
	// Append records an entry, evicting the oldest beyond capacity.
	Append(entry domain.Activity)

	// Recent returns up to n entries, newest first. n <= 0 returns all.
	Recent(n int) []domain.Activity

	// Len returns the number of stored entries.
	Len() int
}
