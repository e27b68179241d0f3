package git

import (
	"context"
	"fmt"
)

// Repack consolidates all objects of the repository at dir into packs
// and deletes the loose copies. A repository serving as a dedup
// alternate must be packed first: the drop in RepackDroppingAlternate
// only takes effect for objects the alternate holds in a pack.
func Repack(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "repack", "-a", "-d", "--quiet"); err != nil {
		return fmt.Errorf("repack: %w", err)
	}
	return nil
}

// RepackDroppingAlternate repacks all objects of the repository at dir,
// dropping every object that is already present under altObjectsDir.
//
// The alternate object directory is made visible only to this single
// repack invocation (scoped environment, never written to the
// repository's alternates file), so object-existence queries issued
// afterwards reflect only the true local store.
func RepackDroppingAlternate(ctx context.Context, dir, altObjectsDir string) error {
	env := []string{"GIT_ALTERNATE_OBJECT_DIRECTORIES=" + altObjectsDir}
	// -l keeps only objects not reachable through the alternate.
	if err := runGitEnv(ctx, dir, env, "repack", "-a", "-d", "-l", "--quiet"); err != nil {
		return fmt.Errorf("dedup repack: %w", err)
	}
	return nil
}
