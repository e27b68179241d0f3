package git

import (
	"context"
	"fmt"
	"strings"
)

// GitDir returns the absolute path to the git directory of the repository
// containing dir. Fails if dir is not inside a git repository.
func GitDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("resolve git dir: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the name of the checked-out branch.
// Returns "" (and no error) for a detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RevParse resolves a revision to its full object id.
func RevParse(ctx context.Context, dir, rev string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--verify", rev)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rev, err)
	}
	return strings.TrimSpace(string(output)), nil
}
