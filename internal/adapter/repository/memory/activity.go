package memory

import (
	"sync"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// DefaultActivityCapacity is the number of entries kept when none is given.
const DefaultActivityCapacity = 50

// ActivityRepository implements ports.ActivityRepository as a bounded list.
// Nothing is written to disk; the history ends with the process.
//
// Thread-safe: All operations protected by sync.RWMutex.
type ActivityRepository struct {
	mu       sync.RWMutex
	entries  []domain.Activity // oldest first
	capacity int
}

// NewActivityRepository creates a repository keeping at most capacity entries.
// A capacity <= 0 selects DefaultActivityCapacity.
func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityRepository{
		entries:  make([]domain.Activity, 0, capacity),
		capacity: capacity,
	}
}

// Append records an entry.
func (r *ActivityRepository) Append(entry domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, entry)
}

// Recent returns up to n entries, newest first.
func (r *ActivityRepository) Recent(n int) []domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]domain.Activity, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Len returns the number of stored entries.
func (r *ActivityRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Verify interface implementation
var _ ports.ActivityRepository = (*ActivityRepository)(nil)
