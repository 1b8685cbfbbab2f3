// Package importer creates notes in bulk from Markdown files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notebook/pkg/core"
)

// Creator is the part of core.Service the importer needs.
type Creator interface {
	CreateNote(ctx context.Context, title, content string) (core.Note, error)
}

// Result reports what happened to one matched file.
type Result struct {
	File string
	Note core.Note
	Err  error
}

// Skipped reports whether the file was rejected by validation rather than failing.
func (r Result) Skipped() bool {
	return errors.Is(r.Err, core.ErrValidation)
}

// Importer walks a directory and creates one note per matching file.
type Importer struct {
	creator Creator
	fsys    fs.FS
	logger  *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an importer reading from root.
func New(creator Creator, root string, opts ...Option) *Importer {
	return NewFS(creator, os.DirFS(root), opts...)
}

// NewFS creates an importer reading from fsys.
func NewFS(creator Creator, fsys fs.FS, opts ...Option) *Importer {
	i := &Importer{
		creator: creator,
		fsys:    fsys,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import creates notes for every file matching pattern, in lexical order.
// Per-file problems are reported in the results; a storage failure stops the run
// and is returned along with the results gathered so far.
func (i *Importer) Import(ctx context.Context, pattern string) ([]Result, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(i.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
	}

	results := make([]Result, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := i.importFile(ctx, name)
		results = append(results, res)

		switch {
		case res.Err == nil:
			i.logger.Info("note imported", "file", name, "id", res.Note.ID)
		case res.Skipped():
			i.logger.Warn("file skipped", "file", name, "reason", res.Err)
		case errors.Is(res.Err, core.ErrStorage):
			return results, res.Err
		default:
			i.logger.Error("file import failed", "file", name, "error", res.Err)
		}
	}
	return results, nil
}

func (i *Importer) importFile(ctx context.Context, name string) Result {
	f, err := i.fsys.Open(name)
	if err != nil {
		return Result{File: name, Err: err}
	}
	defer f.Close()

	doc, err := ParseMarkdown(f)
	if err != nil {
		return Result{File: name, Err: fmt.Errorf("%s: %w", name, err)}
	}

	note, err := i.creator.CreateNote(ctx, doc.Title(name), doc.Content())
	return Result{File: name, Note: note, Err: err}
}
