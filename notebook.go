package notebook

import (
	"context"
	"log/slog"

	"github.com/aretw0/notebook/internal/platform"
	"github.com/aretw0/notebook/pkg/adapters/fs"
	"github.com/aretw0/notebook/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Service is a public alias for the domain service.
type Service = core.Service

// Store is a public alias for the storage port.
type Store = core.Store

// --- Configuration ---

// Option defines a functional option for configuring a notebook.
type Option = platform.Option

// WithStore injects a custom store (e.g. a test double).
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or "memory".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the service and the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFile sets the notes file name; its extension picks the format.
func WithFile(name string) Option {
	return platform.WithFile(name)
}

// WithSystemDir sets the hidden directory holding the lock file.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithSerializer registers a serializer for a notes file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithAutoInit allows git init of the data directory when versioning is enabled.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning commits the notes file to git after every write.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist fails initialization when the data directory is missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock sets the clock stamping note IDs.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithObserver registers an observer of write outcomes.
func WithObserver(o core.Observer) Option {
	return platform.WithObserver(o)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a notebook service over the data directory at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes the store explicitly.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// --- Operations ---

// Sync pulls and pushes a versioned data directory.
func Sync(ctx context.Context, path string, opts ...Option) error {
	return platform.Sync(ctx, path, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath applies the dev sandbox rules to a data path.
func ResolveDataPath(userPath string, sandbox bool) string {
	return platform.ResolveDataPath(userPath, sandbox)
}

// IsDevRun reports whether the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a notebook data directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Semantic Commits ---

const (
	CommitTypeFeat  = platform.CommitTypeFeat
	CommitTypeFix   = platform.CommitTypeFix
	CommitTypeDocs  = platform.CommitTypeDocs
	CommitTypeChore = platform.CommitTypeChore
)

// FormatCommitMessage builds a Conventional Commit message.
func FormatCommitMessage(ctype, scope, subject, body string) string {
	return platform.FormatCommitMessage(ctype, scope, subject, body)
}

// AppendFooter appends the notebook footer to a free-form message.
func AppendFooter(msg string) string {
	return platform.AppendFooter(msg)
}

// WithChangeReason attaches a commit message to ctx for versioned stores.
func WithChangeReason(ctx context.Context, msg string) context.Context {
	return platform.WithChangeReason(ctx, msg)
}
