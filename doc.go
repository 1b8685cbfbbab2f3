// Package notebook is the composition root of the notebook application.
//
// It wires the core domain (validation, ID stamping, the append-only notes
// collection) to a storage adapter using the hexagonal layout of pkg/core and
// pkg/adapters.
//
// The whole collection lives in one file (notes.json by default, YAML when the
// file name ends in .yaml or .yml) and is rewritten atomically on every new note.
// Optional git versioning commits each change; a SQLite adapter and an
// in-memory adapter are available too.
//
// Usage:
//
//	svc, err := notebook.New("./data",
//		notebook.WithLogger(logger),
//	)
//
//	note, err := svc.CreateNote(ctx, "Groceries", "milk, eggs")
//	notes, err := svc.ListNotes(ctx)
package notebook
