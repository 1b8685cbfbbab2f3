// Package fs implements core.Store on top of a single file in a data directory.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notebook/internal/lockfile"
	"github.com/aretw0/notebook/pkg/core"
	"github.com/aretw0/notebook/pkg/git"
)

const (
	DefaultFile      = "notes.json"
	DefaultSystemDir = ".notebook"
	lockFileName     = "notes.lock"
)

// Config holds the configuration for the file store.
type Config struct {
	Path         string // data directory
	File         string // notes file name inside Path, e.g. "notes.json"
	SystemDir    string // hidden directory for the lock file, e.g. ".notebook"
	AutoInit     bool   // git init when versioning and the directory is not a repository
	MustExist    bool
	ReadOnly     bool
	Versioned    bool // commit the notes file after every write
	Logger       *slog.Logger
	ErrorHandler func(error) // watcher runtime errors
	Serializers  map[string]Serializer
}

// Store implements core.Store by reading and rewriting one notes file.
type Store struct {
	Path       string
	filePath   string
	config     Config
	serializer Serializer
	cache      *cache
	lock       *lockfile.Lock
	git        *git.Client

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// NewStore creates a file store. It fails when no serializer matches the file extension.
func NewStore(config Config) (*Store, error) {
	if config.File == "" {
		config.File = DefaultFile
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	registry := DefaultSerializers()
	for ext, s := range config.Serializers {
		registry[ext] = s
	}
	serializer, err := serializerFor(config.File, registry)
	if err != nil {
		return nil, err
	}

	return &Store{
		Path:       config.Path,
		filePath:   filepath.Join(config.Path, config.File),
		config:     config,
		serializer: serializer,
		cache:      newCache(),
		lock:       lockfile.New(filepath.Join(config.Path, config.SystemDir, lockFileName)),
		git:        git.NewClient(config.Path, config.Logger),
	}, nil
}

// FilePath returns the absolute location of the notes file.
func (s *Store) FilePath() string {
	return s.filePath
}

// Initialize performs the necessary setup for the store (mkdir, git init).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.ReadOnly {
		return nil
	}

	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data directory does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if !s.config.Versioned {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(ctx); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	if mod && wasNewRepo {
		if err := s.git.Add(ctx, ".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := s.git.Commit(ctx, fmt.Sprintf("chore: configure %s ignore", s.config.SystemDir), ".gitignore"); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

// ensureIgnore keeps the system directory (lock file) out of version control.
func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	ignoreEntry := s.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	var buf bytes.Buffer
	buf.Write(content)
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(ignoreEntry + "\n")

	if err := writeFileAtomic(ignorePath, buf.Bytes(), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Read loads the whole collection.
// A missing or blank notes file is an empty collection; a malformed one is an error.
func (s *Store) Read(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.filePath)
	if os.IsNotExist(err) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", s.filePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", s.filePath)
	}

	if notes, hit := s.cache.Get(info.ModTime(), info.Size()); hit {
		return notes, nil
	}

	f, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.filePath, err)
	}
	defer f.Close()

	notes, err := s.serializer.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.filePath, err)
	}

	s.cache.Set(info.ModTime(), info.Size(), notes)
	s.config.Logger.Debug("notes file loaded", "path", s.filePath, "count", len(notes))
	return notes, nil
}

// Write replaces the notes file with notes.
//
// Workflow:
//  1. Serialize the collection.
//  2. Write atomically (temp file + rename).
//  3. (If versioned) stage and commit the notes file with the change reason from ctx.
func (s *Store) Write(ctx context.Context, notes []core.Note) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.serializer.Serialize(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	s.config.Logger.Debug("writing notes file", "path", s.filePath, "count", len(notes))

	if err := writeFileAtomic(s.filePath, data, 0644); err != nil {
		s.cache.Invalidate()
		return err
	}
	s.cache.Invalidate()

	if s.config.Versioned {
		if err := s.commit(ctx, len(notes)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) commit(ctx context.Context, count int) error {
	status, err := s.git.Status(ctx, s.config.File)
	if err != nil {
		return fmt.Errorf("failed to read git status: %w", err)
	}
	if status == "" {
		return nil
	}

	msg, _ := ctx.Value(core.ChangeReasonKey).(string)
	if msg == "" {
		msg = fmt.Sprintf("docs(notes): save %d notes", count)
	}

	if err := s.git.Add(ctx, s.config.File); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	if err := s.git.Commit(ctx, msg, s.config.File); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// Lock implements core.Locker with a lock file in the system directory.
// Read-only stores never write, so their lock is a no-op.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	if s.config.ReadOnly {
		return func() {}, nil
	}
	return s.lock.Acquire(ctx)
}

// Sync synchronizes the data directory with its git remote.
func (s *Store) Sync(ctx context.Context) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if !s.config.Versioned {
		return errors.New("cannot sync without versioning")
	}
	if !s.git.IsRepo() {
		return fmt.Errorf("path is not a git repository: %s", s.Path)
	}

	unlock, err := s.lock.Acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if !s.git.HasRemote(ctx) {
		return errors.New("remote 'origin' not configured")
	}

	s.config.Logger.Info("syncing notes with remote")
	if err := s.git.Sync(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	s.cache.Invalidate()
	s.config.Logger.Info("sync completed successfully")
	return nil
}

var (
	_ core.Store     = (*Store)(nil)
	_ core.Locker    = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
	_ core.Syncable  = (*Store)(nil)
)
