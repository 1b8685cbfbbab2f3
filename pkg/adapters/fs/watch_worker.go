package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notebook/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

type watchWorker struct {
	store   *Store
	watcher *fsnotify.Watcher
	events  chan<- core.Event
	delay   time.Duration
	known   bool // whether the notes file exists
}

// Watch reports changes of the notes file, including changes made through this store.
// Bursts of filesystem events are coalesced. The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic writes replace the file, which drops a file watch.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	_, statErr := os.Stat(s.filePath)
	events := make(chan core.Event)
	w := &watchWorker{
		store:   s,
		watcher: watcher,
		events:  events,
		delay:   watchDebounce,
		known:   statErr == nil,
	}

	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watcher: %w", err))
			return
		}
		s.config.Logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// Stack only at debug level.
			if w.store.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.store.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	var pending *core.Event

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}

			e, relevant := w.translate(event)
			if !relevant {
				continue
			}
			w.store.cache.Invalidate()
			// A creation outranks modifications within one burst.
			if pending == nil || e.Type == core.EventCreate {
				pending = &e
			}
			timer.Reset(w.delay)

		case <-timer.C:
			if pending == nil {
				continue
			}
			e := *pending
			pending = nil
			w.store.recordEvent()
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.store.config.Logger.Error("fsnotify error", "error", wErr)
			if w.store.config.ErrorHandler != nil {
				w.store.config.ErrorHandler(wErr)
			}
		}
	}
}

// translate maps a filesystem event to a domain event.
// Only events on the notes file matter; chmod-only events are noise.
func (w *watchWorker) translate(event fsnotify.Event) (core.Event, bool) {
	w.store.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if isTempFile(event.Name) || filepath.Base(event.Name) != filepath.Base(w.store.filePath) {
		return core.Event{}, false
	}

	e := core.Event{
		Type:      core.EventModify,
		ID:        w.store.config.File,
		Timestamp: time.Now().Unix(),
	}

	switch {
	case event.Has(fsnotify.Create):
		if !w.known {
			e.Type = core.EventCreate
		}
		w.known = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.known = false
	case event.Has(fsnotify.Write):
	default:
		return core.Event{}, false
	}

	return e, true
}
