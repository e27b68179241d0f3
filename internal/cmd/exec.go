package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/raphi011/blobless/internal/log"
)

// newCmd builds a command bound to ctx, running in dir (empty = cwd),
// and echoes it through the context logger in verbose mode.
func newCmd(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	log.FromContext(ctx).Command(name, args...)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	return c
}

// wrapErr folds captured stderr into the error message while keeping the
// original error (and its exit status) in the wrap chain.
func wrapErr(stderr *bytes.Buffer, err error) error {
	if err == nil {
		return nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// RunContext executes a command and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	c := newCmd(ctx, dir, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	return wrapErr(&stderr, c.Run())
}

// RunEnvContext executes a command with extra environment variables
// (KEY=VALUE) visible only to this single invocation.
func RunEnvContext(ctx context.Context, dir string, env []string, name string, args ...string) error {
	c := newCmd(ctx, dir, name, args...)
	c.Env = append(c.Environ(), env...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	return wrapErr(&stderr, c.Run())
}

// RunStdinContext executes a command feeding it the given reader as stdin.
func RunStdinContext(ctx context.Context, dir string, stdin io.Reader, name string, args ...string) error {
	c := newCmd(ctx, dir, name, args...)
	c.Stdin = stdin
	var stderr bytes.Buffer
	c.Stderr = &stderr
	return wrapErr(&stderr, c.Run())
}

// StderrContext executes a command and returns whatever it wrote to
// stderr, successful or not. For commands that signal degraded behavior
// through warnings while still exiting 0.
func StderrContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := newCmd(ctx, dir, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	err := c.Run()
	return stderr.Bytes(), wrapErr(&stderr, err)
}

// OutputContext executes a command and returns stdout, with stderr in error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := newCmd(ctx, dir, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	output, err := c.Output()
	if err != nil {
		return nil, wrapErr(&stderr, err)
	}
	return output, nil
}
