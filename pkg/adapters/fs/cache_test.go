package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/pkg/core"
)

func TestCache(t *testing.T) {
	stamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	notes := []core.Note{{ID: "2024-01-01T12:00:00.000Z", Title: "Cached note"}}

	t.Run("Miss When Empty", func(t *testing.T) {
		c := newCache()
		_, hit := c.Get(stamp, 10)
		assert.False(t, hit)
		assert.Equal(t, -1, c.Len())
	})

	t.Run("Hit On Same Stamp", func(t *testing.T) {
		c := newCache()
		c.Set(stamp, 10, notes)

		got, hit := c.Get(stamp, 10)
		require.True(t, hit)
		assert.Equal(t, notes, got)

		hits, misses := c.Stats()
		assert.Equal(t, 1, hits)
		assert.Equal(t, 0, misses)
	})

	t.Run("Miss On Changed Stamp", func(t *testing.T) {
		c := newCache()
		c.Set(stamp, 10, notes)

		_, hit := c.Get(stamp.Add(time.Second), 10)
		assert.False(t, hit, "mtime change must miss")

		_, hit = c.Get(stamp, 11)
		assert.False(t, hit, "size change must miss")
	})

	t.Run("Returns Copies", func(t *testing.T) {
		c := newCache()
		c.Set(stamp, 10, notes)

		got, _ := c.Get(stamp, 10)
		got[0].Title = "mutated"

		again, _ := c.Get(stamp, 10)
		assert.Equal(t, "Cached note", again[0].Title)
	})

	t.Run("Invalidate", func(t *testing.T) {
		c := newCache()
		c.Set(stamp, 10, notes)
		c.Invalidate()

		_, hit := c.Get(stamp, 10)
		assert.False(t, hit)
	})
}
