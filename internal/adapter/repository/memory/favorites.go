package memory

import (
	"slices"
	"sync"

	"github.com/hariomify/hariomify/internal/ports"
)

// FavoritesRepository implements ports.FavoritesRepository in memory.
// Ids keep their insertion order; nothing survives a restart.
//
// Thread-safe: All operations protected by sync.RWMutex.
type FavoritesRepository struct {
	ids   []string
	index map[string]struct{}
	mu    sync.RWMutex
}

// NewFavoritesRepository creates an empty favorites repository.
func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{
		index: make(map[string]struct{}),
	}
}

// Add inserts id at the end. Existing ids keep their position.
func (r *FavoritesRepository) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; ok {
		return
	}
	r.index[id] = struct{}{}
	r.ids = append(r.ids, id)
}

// Remove deletes id.
func (r *FavoritesRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; !ok {
		return
	}
	delete(r.index, id)
	r.ids = slices.DeleteFunc(r.ids, func(v string) bool { return v == id })
}

// Contains reports whether id is a favorite.
func (r *FavoritesRepository) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[id]
	return ok
}

// List returns a copy of the ids in insertion order.
func (r *FavoritesRepository) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.ids)
}

// Count returns the number of favorites.
func (r *FavoritesRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ids)
}

// Clear removes every favorite.
func (r *FavoritesRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = nil
	r.index = make(map[string]struct{})
}

// Verify that FavoritesRepository implements the interface
var _ ports.FavoritesRepository = (*FavoritesRepository)(nil)
