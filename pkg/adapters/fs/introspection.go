package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	File          string     `json:"file"`
	Format        string     `json:"format"`
	SystemDir     string     `json:"system_dir"`
	CachedNotes   int        `json:"cached_notes"` // -1 when nothing is cached
	CacheHits     int        `json:"cache_hits"`
	CacheMisses   int        `json:"cache_misses"`
	ReadOnly      bool       `json:"read_only"`
	Versioned     bool       `json:"versioned"`
	LockHeld      bool       `json:"lock_held"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits, misses := s.cache.Stats()

	return StoreState{
		Path:          s.Path,
		File:          s.config.File,
		Format:        s.serializer.Format(),
		SystemDir:     s.config.SystemDir,
		CachedNotes:   s.cache.Len(),
		CacheHits:     hits,
		CacheMisses:   misses,
		ReadOnly:      s.config.ReadOnly,
		Versioned:     s.config.Versioned,
		LockHeld:      s.lock.Held(),
		WatcherActive: s.watcherActive,
		LastEvent:     s.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Store) recordEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastEvent = &now
}
