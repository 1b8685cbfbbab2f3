package platform

import (
	"log/slog"

	"github.com/aretw0/notebook/pkg/adapters/fs"
	"github.com/aretw0/notebook/pkg/core"
)

// options holds the internal configuration for a notebook.
type options struct {
	store       core.Store
	logger      *slog.Logger
	adapter     string
	file        string
	systemDir   string
	autoInit    bool
	versioning  bool
	forceTemp   bool
	mustExist   bool
	readOnly    bool
	devSafety   bool
	eventBuffer int
	clock       core.Clock
	observer    core.Observer
	onWatchErr  func(error)
	serializers map[string]fs.Serializer
}

// Option defines a functional option for configuring a notebook.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:     "fs",
		devSafety:   true,
		serializers: make(map[string]fs.Serializer),
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStore injects a custom store (e.g. a test double).
// When set, the adapter selection and every filesystem option are ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default) or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the service and the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFile sets the notes file name inside the data directory.
// The extension picks the format (.json, .yaml, .yml). Defaults to notes.json.
func WithFile(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// WithSystemDir sets the hidden directory holding the lock file. Defaults to ".notebook".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithSerializer registers a serializer for a notes file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithAutoInit allows git init of the data directory when versioning is enabled.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithVersioning commits the notes file to git after every write. Off by default.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioning = enabled
	}
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithMustExist fails initialization when the data directory is missing.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes return core.ErrReadOnly.
// 2. Initialization creates nothing.
// 3. The dev sandbox is bypassed (the real path is used).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), data paths are re-rooted under the temp directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithEventBuffer sets the size of the buffer between the store watcher and
// service watchers. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithClock sets the clock stamping note IDs.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithObserver registers an observer of write outcomes (e.g. metrics).
func WithObserver(obs core.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onWatchErr = fn
	}
}
