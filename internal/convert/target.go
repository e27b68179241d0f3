package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/raphi011/blobless/internal/git"
)

// Target identifies one repository to convert. Resolved once per target,
// immutable afterwards.
type Target struct {
	Dir    string // directory named on the command line
	GitDir string // absolute path to the git directory
	Branch string // checked-out branch
	Remote string // fetch remote for Branch
	URL    string // fetch URL of Remote
}

// Resolve locates the repository at dir and determines the single remote
// the conversion will fetch from.
func Resolve(ctx context.Context, dir string) (*Target, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrInvalidTarget)
	}

	gitDir, err := git.GitDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotARepository)
	}

	branch, err := git.CurrentBranch(ctx, dir)
	if err != nil {
		return nil, err
	}
	if branch == "" {
		return nil, fmt.Errorf("%s: %w", dir, ErrDetachedHead)
	}

	remote, err := resolveRemote(ctx, dir, branch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	url, err := git.RemoteURL(ctx, dir, remote)
	if err != nil {
		return nil, err
	}

	return &Target{
		Dir:    dir,
		GitDir: gitDir,
		Branch: branch,
		Remote: remote,
		URL:    url,
	}, nil
}

// resolveRemote picks the remote to fetch from. A single configured
// remote is used directly (covers bare mirrors without branch config);
// otherwise the branch's upstream remote decides. Several remotes and no
// upstream is an error, never a guess.
func resolveRemote(ctx context.Context, dir, branch string) (string, error) {
	remotes, err := git.Remotes(ctx, dir)
	if err != nil {
		return "", err
	}

	switch len(remotes) {
	case 0:
		return "", ErrNoRemote
	case 1:
		return remotes[0], nil
	}

	if remote := git.BranchRemote(ctx, dir, branch); remote != "" {
		return remote, nil
	}
	return "", fmt.Errorf("%w for branch %q and %d remotes exist, cannot pick one",
		ErrNoRemote, branch, len(remotes))
}
