// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. The wrapped
// error chain is preserved so callers can recover the subprocess exit status.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoPath, "git", "fsck"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("fsck failed: %w", err)
//	}
//
//	// For commands that return output:
//	output, err := cmd.OutputContext(ctx, repoPath, "git", "remote")
//
// # Design Notes
//
// blobless shells out to the git CLI rather than using Go libraries.
// This approach is simpler, more reliable, and ensures compatibility with
// user configurations (SSH keys, credential helpers, partial-clone
// capabilities of the installed git version).
package cmd
