package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/raphi011/blobless/internal/log"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	err := exec.Command("sh", "-c", "exit 3").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %v", err)
	}

	if got := exitCode(err); got != 3 {
		t.Errorf("exitCode(exit 3) = %d, want 3", got)
	}
	if got := exitCode(fmt.Errorf("fetch failed: %w", err)); got != 3 {
		t.Errorf("exitCode(wrapped exit 3) = %d, want 3", got)
	}
	if got := exitCode(errors.New("plain failure")); got != 1 {
		t.Errorf("exitCode(plain error) = %d, want 1", got)
	}
}

func TestVerboseFlagReachesLogger(t *testing.T) {
	// Mutates the shared root command's flag state, so no t.Parallel().
	if err := rootCmd.PersistentFlags().Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := rootCmd.PersistentFlags().Set("verbose", "false"); err != nil {
			t.Fatal(err)
		}
	}()

	rootCmd.SetContext(context.Background())
	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE = %v", err)
	}

	// The logger must be built after flag parsing, or --verbose would
	// never enable command echo.
	if !log.FromContext(rootCmd.Context()).Verbose() {
		t.Error("logger in context is not verbose after --verbose")
	}
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	if got := versionString(); got == "" {
		t.Error("versionString() is empty")
	}
}
