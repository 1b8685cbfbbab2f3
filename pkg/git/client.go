// Package git wraps the git command line for versioning a notebook data directory.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client runs git commands inside a working directory.
// It does not serialize access itself; callers hold the store lock.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
	}
}

// IsInstalled reports whether a git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether the working directory is the root of a git repository.
func (c *Client) IsRepo() bool {
	info, err := os.Stat(filepath.Join(c.WorkDir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new git repository. Re-running it is harmless.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Add stages files.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Commit records staged changes, restricted to files when given.
func (c *Client) Commit(ctx context.Context, msg string, files ...string) error {
	args := []string{"commit", "-m", msg}
	if len(files) > 0 {
		args = append(args, "--")
		args = append(args, files...)
	}
	_, err := c.Run(ctx, args...)
	return err
}

// Status returns the porcelain status of the repo, restricted to files when given.
func (c *Client) Status(ctx context.Context, files ...string) (string, error) {
	args := []string{"status", "--porcelain"}
	if len(files) > 0 {
		args = append(args, "--")
		args = append(args, files...)
	}
	return c.Run(ctx, args...)
}

// HasRemote reports whether a remote named origin is configured.
func (c *Client) HasRemote(ctx context.Context) bool {
	out, err := c.Run(ctx, "remote")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "origin" {
			return true
		}
	}
	return false
}

// Sync rebases local commits onto origin and pushes them.
func (c *Client) Sync(ctx context.Context) error {
	if _, err := c.Run(ctx, "pull", "--rebase", "origin"); err != nil {
		return err
	}
	_, err := c.Run(ctx, "push", "origin", "HEAD")
	return err
}
