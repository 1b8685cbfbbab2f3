package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/pkg/adapters/memory"
	"github.com/aretw0/notebook/pkg/core"
)

// fixedClock returns the same instant on every call.
func fixedClock(t time.Time) core.Clock {
	return core.ClockFunc(func() time.Time { return t })
}

// countingObserver records write outcomes.
type countingObserver struct {
	mu     sync.Mutex
	counts map[core.Outcome]int
}

func (o *countingObserver) Observe(out core.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[core.Outcome]int)
	}
	o.counts[out]++
}

func TestService_RejectsShortTitle(t *testing.T) {
	store := memory.NewStore()
	obs := &countingObserver{}
	service := core.NewService(store, core.WithObserver(obs))

	_, err := service.CreateNote(context.Background(), "Hi", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, "Invalid title - must be at least 5 characters long.", err.Error())

	reads, writes := store.Calls()
	assert.Zero(t, reads, "rejected submission must not read")
	assert.Zero(t, writes, "rejected submission must not write")
	assert.Empty(t, store.Snapshot())
	assert.Equal(t, 1, obs.counts[core.OutcomeRejected])
}

func TestService_TitleValidation(t *testing.T) {
	tests := []struct {
		title string
		valid bool
	}{
		{"", false},
		{"Hi", false},
		{"    abcd    ", false},
		{"\tabcd\n", false},
		{"abcde", true},
		{"  abcde  ", true},
		{"Groceries", true},
		{"日本語です", true},
		{"日本語", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			store := memory.NewStore(core.Note{ID: "2024-01-01T00:00:00.000Z", Title: "Existing", Content: ""})
			service := core.NewService(store)

			_, err := service.CreateNote(context.Background(), tt.title, "body")
			after := store.Snapshot()

			if tt.valid {
				require.NoError(t, err)
				assert.Len(t, after, 2)
			} else {
				assert.ErrorIs(t, err, core.ErrValidation)
				assert.Len(t, after, 1)
			}
		})
	}
}

// Length is counted in code points: characters outside the BMP count once.
func TestValidateTitle_CountsCodePoints(t *testing.T) {
	assert.ErrorIs(t, core.ValidateTitle("😀😀😀"), core.ErrValidation)
	assert.ErrorIs(t, core.ValidateTitle("😀😀😀😀"), core.ErrValidation)
	assert.NoError(t, core.ValidateTitle("😀😀😀😀😀"))
	assert.NoError(t, core.ValidateTitle(" 😀 ab 😀 "))
}

func TestService_CreateAppendsNote(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 30, 15, 123456789, time.UTC)
	store := memory.NewStore()
	service := core.NewService(store, core.WithClock(fixedClock(now)))

	note, err := service.CreateNote(context.Background(), "Groceries", "milk, eggs")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09T14:30:15.123Z", note.ID)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "milk, eggs", note.Content)

	stored := store.Snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, note, stored[0])
}

func TestService_KeepsUntrimmedTitle(t *testing.T) {
	store := memory.NewStore()
	service := core.NewService(store)

	note, err := service.CreateNote(context.Background(), "  Padded title  ", "")
	require.NoError(t, err)
	assert.Equal(t, "  Padded title  ", note.Title)
}

func TestService_IDsStrictlyIncrease(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 30, 15, 0, time.UTC)
	store := memory.NewStore()
	// Frozen clock: every note is created in the same millisecond.
	service := core.NewService(store, core.WithClock(fixedClock(now)))
	ctx := context.Background()

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 5; i++ {
		n, err := service.CreateNote(ctx, "Repeated title", "")
		require.NoError(t, err)
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
		if prev != "" {
			assert.Greater(t, n.ID, prev)
		}
		prev = n.ID
	}
	assert.Equal(t, "2024-03-09T14:30:15.004Z", prev)
}

func TestService_IDAfterClockMovedBackwards(t *testing.T) {
	store := memory.NewStore(core.Note{ID: "2030-01-01T00:00:00.000Z", Title: "From the future"})
	service := core.NewService(store, core.WithClock(fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	n, err := service.CreateNote(context.Background(), "Present note", "")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01T00:00:00.001Z", n.ID)
}

func TestService_ConcurrentCreatesLoseNothing(t *testing.T) {
	store := memory.NewStore()
	service := core.NewService(store)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateNote(ctx, "Concurrent note", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	notes := store.Snapshot()
	assert.Len(t, notes, workers)

	ids := make(map[string]bool)
	for _, n := range notes {
		ids[n.ID] = true
	}
	assert.Len(t, ids, workers)
}

func TestService_StorageFailures(t *testing.T) {
	boom := errors.New("disk on fire")

	t.Run("Read", func(t *testing.T) {
		store := memory.NewStore()
		store.ReadErr = boom
		obs := &countingObserver{}
		service := core.NewService(store, core.WithObserver(obs))

		_, err := service.CreateNote(context.Background(), "Valid title", "")
		assert.ErrorIs(t, err, core.ErrStorage)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, obs.counts[core.OutcomeFailed])

		_, err = service.ListNotes(context.Background())
		assert.ErrorIs(t, err, core.ErrStorage)
		assert.NotErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Write", func(t *testing.T) {
		store := memory.NewStore()
		store.WriteErr = boom
		service := core.NewService(store)

		_, err := service.CreateNote(context.Background(), "Valid title", "")
		var serr *core.StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "write", serr.Op)
	})
}

func TestService_ListNotes(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		service := core.NewService(memory.NewStore())

		notes, err := service.ListNotes(context.Background())
		assert.Nil(t, notes)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, "Could not find any notes.", err.Error())
	})

	t.Run("One Note", func(t *testing.T) {
		service := core.NewService(memory.NewStore(core.Note{ID: "2024-01-01T00:00:00.000Z", Title: "Only note"}))

		notes, err := service.ListNotes(context.Background())
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})

	t.Run("Insertion Order", func(t *testing.T) {
		store := memory.NewStore()
		service := core.NewService(store)
		ctx := context.Background()
		for _, title := range []string{"first note", "second note", "third note"} {
			_, err := service.CreateNote(ctx, title, "")
			require.NoError(t, err)
		}

		notes, err := service.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "first note", notes[0].Title)
		assert.Equal(t, "third note", notes[2].Title)

		newest := core.SortNewestFirst(notes)
		assert.Equal(t, "third note", newest[0].Title)
		assert.Equal(t, "first note", notes[0].Title, "sorting must not mutate the input")
	})
}

func TestService_GetNote(t *testing.T) {
	store := memory.NewStore(core.Note{ID: "2024-01-01T00:00:00.000Z", Title: "Known note"})
	service := core.NewService(store)
	ctx := context.Background()

	n, err := service.GetNote(ctx, "2024-01-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "Known note", n.Title)

	_, err = service.GetNote(ctx, "2099-01-01T00:00:00.000Z")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = service.GetNote(ctx, "")
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestService_Unsupported(t *testing.T) {
	service := core.NewService(memory.NewStore())

	_, err := service.Watch(context.Background())
	assert.EqualError(t, err, "store does not support watching")

	err = service.Sync(context.Background())
	assert.EqualError(t, err, "store does not support synchronization")
}

// chanStore is a Watchable store backed by a channel.
type chanStore struct {
	*memory.Store
	upstream chan core.Event
}

func (c *chanStore) Watch(ctx context.Context) (<-chan core.Event, error) {
	return c.upstream, nil
}

func TestService_WatchDecouplesConsumer(t *testing.T) {
	store := &chanStore{Store: memory.NewStore(), upstream: make(chan core.Event)}
	service := core.NewService(store, core.WithEventBuffer(10))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := service.Watch(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			select {
			case store.upstream <- core.Event{Type: core.EventModify, ID: "notes.json"}:
			case <-time.After(time.Second):
				t.Error("producer blocked")
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for producer")
	}

	for i := 0; i < 5; i++ {
		select {
		case e := <-stream:
			assert.Equal(t, core.EventModify, e.Type)
		case <-time.After(time.Second):
			t.Fatalf("missing event %d", i)
		}
	}
}

func TestService_State(t *testing.T) {
	service := core.NewService(memory.NewStore(), core.WithEventBuffer(7))

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, 7, state.EventBufferSize)
	assert.Equal(t, "memory-store", state.StoreType)
	assert.False(t, state.Watchable)
	assert.Equal(t, "service", service.ComponentType())
}

type closingStore struct {
	*memory.Store
	closed bool
}

func (s *closingStore) Close() error {
	s.closed = true
	return nil
}

func TestService_Close(t *testing.T) {
	store := &closingStore{Store: memory.NewStore()}
	require.NoError(t, core.NewService(store).Close())
	assert.True(t, store.closed)

	assert.NoError(t, core.NewService(memory.NewStore()).Close())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, core.MsgInvalidTitle, core.UserMessage(core.ValidateTitle("x"), "generic"))
	assert.Equal(t, core.MsgNoNotes, core.UserMessage(&core.NotFoundError{Message: core.MsgNoNotes}, "generic"))
	assert.Equal(t, "generic", core.UserMessage(&core.StorageError{Op: "read", Err: errors.New("x")}, "generic"))
}
