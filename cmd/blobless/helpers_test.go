package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/raphi011/blobless/internal/log"
	"github.com/raphi011/blobless/internal/output"
)

// testCtx returns a context carrying a logger and printer writing into
// the returned buffers.
func testCtx() (context.Context, *bytes.Buffer, *bytes.Buffer) {
	var logBuf, outBuf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&logBuf, false, false))
	ctx = output.WithPrinter(ctx, &outBuf)
	return ctx, &logBuf, &outBuf
}

// mustGit runs a git command in dir and fails the test on error.
func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// setupTestRepo creates a git repo with an initial commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	repoPath := filepath.Join(dir, "repo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatal(err)
	}

	mustGit(t, repoPath, "init", "-b", "main")
	mustGit(t, repoPath, "config", "user.email", "test@test.com")
	mustGit(t, repoPath, "config", "user.name", "Test User")
	mustGit(t, repoPath, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, repoPath, "add", "README.md")
	mustGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}
