package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/blobless/internal/config"
	"github.com/raphi011/blobless/internal/git"
	"github.com/raphi011/blobless/internal/log"
	"github.com/raphi011/blobless/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg     *config.Config
	workDir string
)

// rootCmd converts the given repositories when invoked without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "blobless [directory ...]",
	Short: "Convert full git clones into blobless partial clones",
	Long: `blobless converts a complete local git clone into a blobless one:
commits and trees stay on disk while file-content objects are dropped
and refetched on demand from the remote.

The object store is snapshotted before the first mutating step and
restored on any failure or interruption, so the repository is never
left in a partial state.`,
	Args:                       cobra.ArbitraryArgs,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now; the logger has to be built here so
		// --verbose and --quiet actually take effect.
		logger := log.New(os.Stderr, verbose, quiet)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))

		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Check git is available
		return git.CheckGit()
	},
	RunE: runConvert,
}

// Execute sets up the shared context and runs the root command.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Get working directory
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "blobless: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling; cancellation reaches the
	// running git subprocess and triggers the rollback path.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data); the logger is
	// attached in PersistentPreRunE once flags are parsed
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "blobless: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to a process exit code. Errors that
// wrap a git exit status pass it through; everything else exits 1.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Conversion flags
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be converted without changing anything")
	rootCmd.Flags().StringVar(&filter, "filter", "", "Partial-clone filter spec (default blob:none)")
	rootCmd.Flags().BoolVar(&keepBackup, "keep-backup", false, "Retain the object-store snapshot after a successful conversion")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newCheckCmd())
}
