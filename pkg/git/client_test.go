package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// newRepo initializes a throwaway repository with a local identity.
func newRepo(t *testing.T) *Client {
	t.Helper()
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	client := NewClient(t.TempDir(), nil)
	if err := client.Init(ctx); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	if _, err := client.Run(ctx, "config", "user.email", "notebook@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Run(ctx, "config", "user.name", "Notebook Test"); err != nil {
		t.Fatal(err)
	}
	return client
}

func TestClient_Init(t *testing.T) {
	client := newRepo(t)

	if !client.IsRepo() {
		t.Error("expected IsRepo after Init")
	}
	if _, err := os.Stat(filepath.Join(client.WorkDir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory not created")
	}
}

func TestClient_IsRepo_PlainDir(t *testing.T) {
	client := NewClient(t.TempDir(), nil)
	if client.IsRepo() {
		t.Error("plain directory reported as repository")
	}
}

func TestClient_AddCommitStatus(t *testing.T) {
	client := newRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(client.WorkDir, "notes.json"), []byte(`{"notes":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	status, err := client.Status(ctx, "notes.json")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status == "" {
		t.Fatal("expected untracked file in status")
	}

	if err := client.Add(ctx, "notes.json"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := client.Commit(ctx, "docs(notes): seed", "notes.json"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	status, err = client.Status(ctx, "notes.json")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != "" {
		t.Errorf("expected clean status after commit, got %q", status)
	}

	log, err := client.Run(ctx, "log", "--format=%s")
	if err != nil {
		t.Fatal(err)
	}
	if log != "docs(notes): seed" {
		t.Errorf("unexpected log: %q", log)
	}
}

func TestClient_HasRemote(t *testing.T) {
	client := newRepo(t)
	ctx := context.Background()

	if client.HasRemote(ctx) {
		t.Error("fresh repository should have no remote")
	}

	if _, err := client.Run(ctx, "remote", "add", "origin", t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if !client.HasRemote(ctx) {
		t.Error("expected origin remote")
	}
}
