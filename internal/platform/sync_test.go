package platform_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/internal/platform"
)

func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// TestSync_PushesToRemote clones a bare remote, records a note with versioning
// and checks that Sync publishes the commit.
func TestSync_PushesToRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "Notebook Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "notebook@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Notebook Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "notebook@example.com")

	root := t.TempDir()
	remote := filepath.Join(root, "remote.git")
	gitRun(t, root, "init", "--bare", "--initial-branch=main", remote)

	seed := filepath.Join(root, "seed")
	gitRun(t, root, "clone", remote, seed)
	require.NoError(t, os.WriteFile(filepath.Join(seed, "README.md"), []byte("notes\n"), 0644))
	gitRun(t, seed, "add", "README.md")
	gitRun(t, seed, "commit", "-m", "initial commit")
	gitRun(t, seed, "push", "origin", "HEAD:main")

	local := filepath.Join(root, "local")
	gitRun(t, root, "clone", remote, local)

	svc, err := platform.New(local, platform.WithVersioning(true))
	require.NoError(t, err)

	ctx := platform.WithChangeReason(context.Background(),
		platform.FormatCommitMessage(platform.CommitTypeFeat, "notes", "add groceries", ""))
	_, err = svc.CreateNote(ctx, "Groceries", "milk, eggs")
	require.NoError(t, err)

	require.NoError(t, platform.Sync(context.Background(), local, platform.WithVersioning(true)))

	log := gitRun(t, remote, "log", "--format=%s", "main")
	assert.Equal(t, "feat(notes): add groceries", strings.Split(log, "\n")[0])
}
