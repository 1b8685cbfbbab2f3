// Package core holds the notebook domain: notes, the storage port and the
// service implementing the write and list paths.
package core

import (
	"fmt"
	"time"
)

// IDLayout is the ISO-8601 layout (UTC, millisecond precision) used for note IDs.
const IDLayout = "2006-01-02T15:04:05.000Z07:00"

// Note is the central entity of the domain.
// Its ID is the creation timestamp, which makes IDs sortable by creation time.
// Notes are never mutated after creation.
type Note struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	ID      string `json:"id" yaml:"id"`
}

// CreatedAt parses the note ID back into a time.
func (n Note) CreatedAt() (time.Time, error) {
	return ParseID(n.ID)
}

// FormatID renders t as a note ID.
func FormatID(t time.Time) string {
	return t.UTC().Format(IDLayout)
}

// ParseID parses a note ID produced by FormatID.
func ParseID(id string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid note id %q: %w", id, err)
	}
	return t, nil
}

// EventType represents the type of change in the notes collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
)

// Event represents a change in the notes collection.
// ID is the note ID when known, or the name of the changed file otherwise.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message)
// to stores that version their data.
const ChangeReasonKey contextKey = "change_reason"
