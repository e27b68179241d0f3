package git

import (
	"context"
	"fmt"
	"strings"
)

// Fsck runs the object-store consistency check.
// Dangling objects are a normal byproduct of repository use, not
// corruption, so warnings about them are suppressed.
func Fsck(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "fsck", "--no-dangling")
}

// MissingObjects returns the ids of objects that are referenced by any ref
// but absent from the local object store. A non-empty result means the
// store is already partial (blobless or mid-conversion).
func MissingObjects(ctx context.Context, dir string) ([]string, error) {
	output, err := outputGit(ctx, dir, "rev-list", "--objects", "--all", "--missing=print")
	if err != nil {
		return nil, fmt.Errorf("enumerate missing objects: %w", err)
	}
	return parseMissing(output), nil
}

// MissingObjectsFrom returns the ids of locally missing objects reachable
// from a single revision, ignoring the rest of history.
func MissingObjectsFrom(ctx context.Context, dir, rev string) ([]string, error) {
	output, err := outputGit(ctx, dir, "rev-list", "--objects", "--missing=print", rev)
	if err != nil {
		return nil, fmt.Errorf("enumerate missing objects of %s: %w", rev, err)
	}
	return parseMissing(output), nil
}

// parseMissing extracts the "?<oid>" lines from rev-list --missing=print output.
func parseMissing(output []byte) []string {
	var ids []string
	for _, line := range strings.Split(string(output), "\n") {
		if strings.HasPrefix(line, "?") {
			if id := strings.TrimSpace(line[1:]); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
