package git

import (
	"context"
	"fmt"
)

// CloneOptions controls how a bare clone is created.
type CloneOptions struct {
	// Reference is a local repository whose objects seed the transfer.
	// Must not have missing objects; git refuses such a reference.
	Reference string
	// Dissociate severs the object-sharing link to Reference after the
	// clone completes, making the clone self-contained.
	Dissociate bool
}

// CloneBare creates a bare clone of url at dest.
func CloneBare(ctx context.Context, url, dest string, opts CloneOptions) error {
	args := []string{"clone", "--bare", "--quiet"}
	if opts.Reference != "" {
		args = append(args, "--reference", opts.Reference)
		if opts.Dissociate {
			args = append(args, "--dissociate")
		}
	}
	args = append(args, url, dest)

	if err := runGit(ctx, "", args...); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}
