// internal/store/memory.go
//
// In-memory store for step-by-step solve sessions served over HTTP.
//
// Characteristics:
//   - Stores *Entry objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; nothing outlives a solve.
//   - Callers delete an entry once its session reaches a terminal state;
//     Sweep drops abandoned ones.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordsolver/internal/solver"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("session not found")

// Entry is one live session. Lock it while stepping; a Session is not safe
// for concurrent use.
type Entry struct {
	sync.Mutex
	ID        string
	Length    int
	Heuristic string
	Session   *solver.Session
	Touched   time.Time
}

// NewEntry wraps sess with a fresh ID.
func NewEntry(sess *solver.Session, length int) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Length:    length,
		Heuristic: sess.Heuristic().Name(),
		Session:   sess,
		Touched:   time.Now(),
	}
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or updates an entry.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes an entry; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes entries not touched since before and returns how many.
	Sweep(ctx context.Context, before time.Time) int

	// Len is the number of live entries.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries map
	entries map[string]*Entry // keyed by Entry.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*Entry)}
}

// Save adds or updates the entry in the map.
func (m *memory) Save(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Touched = time.Now()
	m.entries[e.ID] = e
	return nil
}

// Get looks up an entry by ID.
func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if e.Touched.Before(before) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
