package git

import (
	"context"
	"fmt"
	"strings"
)

// Remotes returns the names of all configured remotes.
func Remotes(ctx context.Context, dir string) ([]string, error) {
	output, err := outputGit(ctx, dir, "remote")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}

	var remotes []string
	for _, line := range strings.Split(string(output), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			remotes = append(remotes, name)
		}
	}
	return remotes, nil
}

// BranchRemote returns the remote configured as the branch's upstream.
// Returns "" if no upstream remote is configured.
func BranchRemote(ctx context.Context, dir, branch string) string {
	return ConfigGet(ctx, dir, fmt.Sprintf("branch.%s.remote", branch))
}

// RemoteURL returns the fetch URL of the given remote.
func RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	output, err := outputGit(ctx, dir, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("get url of remote %q: %w", remote, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ConfigGet returns the value of a config key, or "" if it is unset.
func ConfigGet(ctx context.Context, dir, key string) string {
	output, err := outputGit(ctx, dir, "config", "--get", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// ConfigSet writes a config key in the repository's local config.
func ConfigSet(ctx context.Context, dir, key, value string) error {
	if err := runGit(ctx, dir, "config", key, value); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

// PromisorConfig holds the filter-related settings of a remote.
type PromisorConfig struct {
	Promisor string // remote.<name>.promisor
	Filter   string // remote.<name>.partialclonefilter
}

// RemotePromisorConfig reads the filter-related settings of a remote.
// Unset keys are returned as empty strings.
func RemotePromisorConfig(ctx context.Context, dir, remote string) PromisorConfig {
	return PromisorConfig{
		Promisor: ConfigGet(ctx, dir, fmt.Sprintf("remote.%s.promisor", remote)),
		Filter:   ConfigGet(ctx, dir, fmt.Sprintf("remote.%s.partialclonefilter", remote)),
	}
}

// EnablePromisor marks the remote as a blob-filtering (promisor) remote.
// Safe to call on a remote that is already configured.
func EnablePromisor(ctx context.Context, dir, remote, filter string) error {
	if err := ConfigSet(ctx, dir, fmt.Sprintf("remote.%s.promisor", remote), "true"); err != nil {
		return err
	}
	return ConfigSet(ctx, dir, fmt.Sprintf("remote.%s.partialclonefilter", remote), filter)
}
