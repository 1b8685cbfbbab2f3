package fs_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/notebook/pkg/adapters/fs"
	"github.com/aretw0/notebook/pkg/core"
)

func generateNotes(count int) []core.Note {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	notes := make([]core.Note, count)
	for i := range notes {
		notes[i] = core.Note{
			ID:      core.FormatID(start.Add(time.Duration(i) * time.Millisecond)),
			Title:   fmt.Sprintf("Benchmark note %d", i),
			Content: "This is a test note.",
		}
	}
	return notes
}

func benchStore(b *testing.B, file string, count int) *fs.Store {
	b.Helper()
	store, err := fs.NewStore(fs.Config{Path: filepath.Join(b.TempDir(), "data"), File: file})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		b.Fatal(err)
	}
	if err := store.Write(ctx, generateNotes(count)); err != nil {
		b.Fatal(err)
	}
	return store
}

// BenchmarkStore_Read compares a cold parse of the notes file with a cached read.
func BenchmarkStore_Read(b *testing.B) {
	for _, file := range []string{"notes.json", "notes.yaml"} {
		for _, count := range []int{100, 1000} {
			b.Run(fmt.Sprintf("%s/%d/cold", file, count), func(b *testing.B) {
				dir := b.TempDir()
				src := benchStore(b, file, count)
				ctx := context.Background()
				notes, err := src.Read(ctx)
				if err != nil {
					b.Fatal(err)
				}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					b.StopTimer()
					// A fresh store has an empty cache.
					store, err := fs.NewStore(fs.Config{Path: filepath.Join(dir, fmt.Sprint(i)), File: file})
					if err != nil {
						b.Fatal(err)
					}
					if err := store.Write(ctx, notes); err != nil {
						b.Fatal(err)
					}
					b.StartTimer()
					if _, err := store.Read(ctx); err != nil {
						b.Fatal(err)
					}
				}
			})

			b.Run(fmt.Sprintf("%s/%d/warm", file, count), func(b *testing.B) {
				store := benchStore(b, file, count)
				ctx := context.Background()
				if _, err := store.Read(ctx); err != nil {
					b.Fatal(err)
				}
				for b.Loop() {
					if _, err := store.Read(ctx); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkStore_Write(b *testing.B) {
	for _, count := range []int{100, 1000} {
		b.Run(fmt.Sprint(count), func(b *testing.B) {
			store := benchStore(b, "notes.json", 0)
			notes := generateNotes(count)
			ctx := context.Background()
			for b.Loop() {
				if err := store.Write(ctx, notes); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
