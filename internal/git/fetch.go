package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrFilterUnsupported indicates the remote's server side does not allow
// filtered fetches (uploadpack.allowFilter).
var ErrFilterUnsupported = errors.New("remote does not support object filtering")

// RefetchFiltered forces a full re-download of all tags and the given
// branch under the remote's fetch filter. Automatic maintenance is
// suppressed so background gc cannot race with an in-progress
// conversion.
//
// A server that does not allow filtering makes git fall back to an
// unfiltered fetch with only a warning; that fallback is surfaced as
// ErrFilterUnsupported instead of silently re-downloading every blob.
func RefetchFiltered(ctx context.Context, dir, remote, branch, filter string) error {
	stderr, err := runGitStderr(ctx, dir, "fetch", "--quiet", "--refetch", "--no-auto-maintenance",
		"--filter="+filter, remote, "refs/tags/*:refs/tags/*", branch)
	if err != nil {
		return fmt.Errorf("filtered refetch from %s: %w", remote, err)
	}
	if bytes.Contains(stderr, []byte("filtering not recognized by server")) {
		return fmt.Errorf("filtered refetch from %s: %w", remote, ErrFilterUnsupported)
	}
	return nil
}

// FetchObjects requests exactly the given object ids from the repository
// at srcPath over the fetch-pack protocol. The source must permit
// requests for arbitrary object ids (uploadpack.allowAnySHA1InWant).
//
// Negotiation is disabled for the transfer: the requested ids are
// reachable from refs the source also advertises, so ordinary have/want
// negotiation would classify them as already-common and send an empty
// pack.
func FetchObjects(ctx context.Context, dir, srcPath string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stdin := strings.NewReader(strings.Join(ids, "\n") + "\n")
	err := runGitStdin(ctx, dir, stdin,
		"-c", "fetch.negotiationAlgorithm=noop", "fetch-pack", "-q", "--stdin", srcPath)
	if err != nil {
		return fmt.Errorf("fetch %d objects from %s: %w", len(ids), srcPath, err)
	}
	return nil
}
