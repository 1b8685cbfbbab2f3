package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// MinTitleLength is the minimum number of characters of a trimmed title.
const MinTitleLength = 5

const defaultEventBuffer = 100

// Outcome classifies the result of a write attempt.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Observer is notified of every write attempt (e.g. to feed metrics).
type Observer interface {
	Observe(outcome Outcome)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used to stamp note IDs.
func WithClock(c Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an observer of write outcomes.
func WithObserver(o Observer) ServiceOption {
	return func(s *Service) {
		s.observer = o
	}
}

// WithEventBuffer sets the size of the buffer decoupling Watch consumers from the store.
// Zero or negative means default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// Service handles the business logic for notes.
type Service struct {
	store    Store
	clock    Clock
	logger   *slog.Logger
	observer Observer

	// writeMu serializes read-modify-write cycles issued through this service.
	writeMu sync.Mutex

	mu              sync.RWMutex
	eventBufferSize int
}

// NewService creates a new Service on top of store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:           store,
		clock:           SystemClock,
		logger:          slog.New(slog.DiscardHandler),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateTitle rejects titles shorter than MinTitleLength once trimmed.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		return &ValidationError{Field: "title", Message: MsgInvalidTitle}
	}
	return nil
}

// CreateNote validates the submission, stamps it with a creation ID and appends it
// to the stored collection.
//
// Workflow:
//  1. Validate the title. A rejected submission touches nothing.
//  2. Lock (in process, and across processes when the store supports it).
//  3. Read the collection, append the new note, write the collection back.
func (s *Service) CreateNote(ctx context.Context, title, content string) (Note, error) {
	if err := ValidateTitle(title); err != nil {
		s.logger.Debug("note rejected", "field", "title", "reason", err.Error())
		s.observe(OutcomeRejected)
		return Note{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if l, ok := s.store.(Locker); ok {
		unlock, err := l.Lock(ctx)
		if err != nil {
			s.observe(OutcomeFailed)
			return Note{}, &StorageError{Op: "lock", Err: err}
		}
		defer unlock()
	}

	existing, err := s.store.Read(ctx)
	if err != nil {
		s.observe(OutcomeFailed)
		return Note{}, &StorageError{Op: "read", Err: err}
	}

	note := Note{
		ID:      s.nextID(existing),
		Title:   title,
		Content: content,
	}

	updated := make([]Note, 0, len(existing)+1)
	updated = append(updated, existing...)
	updated = append(updated, note)

	if _, ok := ctx.Value(ChangeReasonKey).(string); !ok {
		ctx = context.WithValue(ctx, ChangeReasonKey, "feat(notes): add "+note.ID)
	}
	if err := s.store.Write(ctx, updated); err != nil {
		s.observe(OutcomeFailed)
		return Note{}, &StorageError{Op: "write", Err: err}
	}

	s.logger.Info("note created", "id", note.ID, "total", len(updated))
	s.observe(OutcomeCreated)
	return note, nil
}

// nextID returns the clock reading as an ID, advanced past the newest ID in
// existing so that IDs stay unique and strictly increasing.
func (s *Service) nextID(existing []Note) string {
	now := s.clock.Now().UTC().Truncate(time.Millisecond)

	var newest time.Time
	for _, n := range existing {
		t, err := ParseID(n.ID)
		if err != nil {
			continue
		}
		if t.After(newest) {
			newest = t
		}
	}

	if !newest.IsZero() && !now.After(newest) {
		now = newest.Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return FormatID(now)
}

// ListNotes returns the stored collection in insertion order.
// An empty collection yields a *NotFoundError.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	notes, err := s.store.Read(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if len(notes) == 0 {
		return nil, &NotFoundError{Message: MsgNoNotes}
	}
	return notes, nil
}

// GetNote retrieves a single note by ID.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, &ValidationError{Field: "id", Message: "note ID cannot be empty"}
	}
	notes, err := s.store.Read(ctx)
	if err != nil {
		return Note{}, &StorageError{Op: "read", Err: err}
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, &NotFoundError{Message: MsgNoteNotFound}
}

// SortNewestFirst returns a copy of notes ordered by ID, newest first.
func SortNewestFirst(notes []Note) []Note {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b Note) int {
		return strings.Compare(b.ID, a.ID)
	})
	return sorted
}

// Watch observes changes in the store if supported.
// Events are buffered so a slow consumer does not stall the store's watcher.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}

	upstream, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	out := make(chan Event, size)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Sync synchronizes the store with its remote if supported.
func (s *Service) Sync(ctx context.Context) error {
	sy, ok := s.store.(Syncable)
	if !ok {
		return errors.New("store does not support synchronization")
	}
	return sy.Sync(ctx)
}

// Close releases the store when it holds resources (e.g. a database handle).
func (s *Service) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Store exposes the underlying store.
func (s *Service) Store() Store {
	return s.store
}

func (s *Service) observe(o Outcome) {
	if s.observer != nil {
		s.observer.Observe(o)
	}
}
