package convert

import (
	"bytes"
	"context"
	"crypto/rand"
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

// gitOut runs a git command in dir and returns trimmed stdout.
func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return string(bytes.TrimSpace(out))
}

// writeBlob writes size bytes of incompressible data.
func writeBlob(t *testing.T, path string, size int) {
	t.Helper()
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
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

// setupConvertible builds a work repo with blob-heavy history and a local
// bare origin that supports filtered fetches, the shape the conversion
// pipeline expects. Returns the work repo path.
func setupConvertible(t *testing.T) string {
	t.Helper()

	work := setupTestRepo(t)

	// Two commits with incompressible content; the first commit's blob is
	// only reachable through history after the second one.
	writeBlob(t, filepath.Join(work, "big1.bin"), 200*1024)
	mustGit(t, work, "add", "big1.bin")
	mustGit(t, work, "commit", "-m", "add big1")

	mustGit(t, work, "rm", "-q", "big1.bin")
	writeBlob(t, filepath.Join(work, "big2.bin"), 200*1024)
	mustGit(t, work, "add", "big2.bin")
	mustGit(t, work, "commit", "-m", "replace big1 with big2")
	mustGit(t, work, "tag", "v1")

	origin := filepath.Join(filepath.Dir(work), "origin.git")
	mustGit(t, work, "clone", "--bare", "--quiet", work, origin)
	mustGit(t, origin, "config", "uploadpack.allowfilter", "true")

	mustGit(t, work, "remote", "add", "origin", origin)
	mustGit(t, work, "config", "branch.main.remote", "origin")
	mustGit(t, work, "config", "branch.main.merge", "refs/heads/main")

	return work
}
