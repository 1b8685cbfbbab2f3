// Package memory provides an in-memory core.Store, mainly as a test double
// and for ephemeral notebooks.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/notebook/pkg/core"
)

// Store keeps the notes collection in memory.
type Store struct {
	mu    sync.RWMutex
	notes []core.Note

	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error

	reads  int
	writes int
}

// NewStore creates a store seeded with notes.
func NewStore(notes ...core.Note) *Store {
	return &Store{notes: slices.Clone(notes)}
}

func (s *Store) Initialize(ctx context.Context) error { return nil }

// Read returns a copy of the collection.
func (s *Store) Read(ctx context.Context) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.notes)
	if out == nil {
		out = []core.Note{}
	}
	return out, nil
}

// Write replaces the collection with a copy of notes.
func (s *Store) Write(ctx context.Context, notes []core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.notes = slices.Clone(notes)
	return nil
}

// Snapshot returns the current collection without counting as a read.
func (s *Store) Snapshot() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Calls reports how many times Read and Write were invoked.
func (s *Store) Calls() (reads, writes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads, s.writes
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var _ core.Store = (*Store)(nil)
