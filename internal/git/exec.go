package git

import (
	"context"
	"io"

	"github.com/raphi011/blobless/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// runGitEnv executes a git command with extra environment variables scoped
// to this single invocation.
func runGitEnv(ctx context.Context, dir string, env []string, args ...string) error {
	return cmd.RunEnvContext(ctx, "", env, "git", gitArgs(dir, args)...)
}

// runGitStdin executes a git command feeding it the given reader as stdin.
func runGitStdin(ctx context.Context, dir string, stdin io.Reader, args ...string) error {
	return cmd.RunStdinContext(ctx, "", stdin, "git", gitArgs(dir, args)...)
}

// runGitStderr executes a git command and returns its stderr output even
// on success, for callers that inspect warnings.
func runGitStderr(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.StderrContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
