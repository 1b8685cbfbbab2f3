// Package sqlite implements core.Store on top of a SQLite database file.
// The notes table keeps the collection in insertion order through its seq column.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aretw0/notebook/internal/lockfile"
	"github.com/aretw0/notebook/pkg/core"
)

const (
	// DefaultFile is the database file name used when Config.File is empty.
	DefaultFile      = "notes.db"
	DefaultSystemDir = ".notebook"
)

//go:embed schema.sql
var schemaSQL string

// Config holds the configuration for the SQLite store.
type Config struct {
	Path      string // data directory
	File      string // database file name inside Path
	SystemDir string // hidden directory for the lock file
	ReadOnly  bool
	Logger    *slog.Logger
}

// Store implements core.Store with one row per note.
type Store struct {
	config Config
	dbPath string
	lock   *lockfile.Lock

	mu sync.RWMutex
	db *sql.DB
}

// NewStore creates a SQLite store. No I/O happens until Initialize.
func NewStore(config Config) *Store {
	if config.File == "" {
		config.File = DefaultFile
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		config: config,
		dbPath: filepath.Join(config.Path, config.File),
		lock:   lockfile.New(filepath.Join(config.Path, config.SystemDir, config.File+".lock")),
	}
}

// Initialize opens the database and creates the schema.
// A read-only store over a missing database stays closed and reads as empty.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	dsn := s.dbPath + "?_pragma=busy_timeout(5000)"
	if s.config.ReadOnly {
		if _, err := os.Stat(s.dbPath); os.IsNotExist(err) {
			return nil
		}
		dsn = "file:" + s.dbPath + "?mode=ro&_pragma=busy_timeout(5000)"
	} else if err := os.MkdirAll(s.config.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.dbPath, err)
	}

	if !s.config.ReadOnly {
		if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
			db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	s.db = db
	s.config.Logger.Debug("sqlite store opened", "path", s.dbPath)
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Read loads the whole collection in insertion order.
func (s *Store) Read(ctx context.Context) ([]core.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := []core.Note{}
	if s.db == nil {
		if s.config.ReadOnly {
			return notes, nil
		}
		return nil, errors.New("sqlite store is not initialized")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, content FROM notes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n core.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}

// Write replaces the stored collection with notes in one transaction.
func (s *Store) Write(ctx context.Context, notes []core.Note) (err error) {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errors.New("sqlite store is not initialized")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO notes (seq, id, title, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range notes {
		if _, err = stmt.ExecContext(ctx, i, n.ID, n.Title, n.Content); err != nil {
			return fmt.Errorf("failed to insert note %s: %w", n.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Lock implements core.Locker. The write transaction only covers Write, so the
// read-modify-write of a caller is serialized across processes with a lock file.
// Read-only stores never write, so their lock is a no-op.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	if s.config.ReadOnly {
		return func() {}, nil
	}
	return s.lock.Acquire(ctx)
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string `json:"path"`
	Open     bool   `json:"open"`
	ReadOnly bool   `json:"read_only"`
	LockHeld bool   `json:"lock_held"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{
		Path:     s.dbPath,
		Open:     s.db != nil,
		ReadOnly: s.config.ReadOnly,
		LockHeld: s.lock.Held(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite-store"
}

var (
	_ core.Store  = (*Store)(nil)
	_ core.Locker = (*Store)(nil)
)
