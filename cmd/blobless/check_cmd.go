package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/blobless/internal/fsutil"
	"github.com/raphi011/blobless/internal/git"
	"github.com/raphi011/blobless/internal/output"
	"github.com/raphi011/blobless/internal/ui"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [directory]",
		Short: "Report the partial-clone state of a repository",
		Long: `Report the partial-clone state of a repository without changing it.

Shows for each remote whether it is configured as a promisor remote and
with which filter, how many referenced objects are absent from the
local store, whether stale snapshots from interrupted runs exist, and
whether the object store passes a consistency check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			dir := workDir
			if len(args) == 1 {
				dir = args[0]
			}

			gitDir, err := git.GitDir(ctx, dir)
			if err != nil {
				return err
			}

			var issues int

			remotes, err := git.Remotes(ctx, gitDir)
			if err != nil {
				return err
			}
			if len(remotes) == 0 {
				out.Println(ui.Warn("no remotes configured"))
			}
			for _, remote := range remotes {
				pc := git.RemotePromisorConfig(ctx, gitDir, remote)
				switch {
				case pc.Promisor == "true" && pc.Filter != "":
					out.Println(ui.Ok(fmt.Sprintf("remote %s is a promisor remote (filter %s)", remote, pc.Filter)))
				case pc.Promisor == "true":
					out.Println(ui.Warn(fmt.Sprintf("remote %s is a promisor remote without a filter", remote)))
				default:
					out.Println(ui.Warn(fmt.Sprintf("remote %s is not a promisor remote", remote)))
				}
			}

			missing, err := git.MissingObjects(ctx, gitDir)
			if err != nil {
				return err
			}
			if len(missing) == 0 {
				out.Println(ui.Ok("all referenced objects are present locally"))
			} else {
				out.Println(ui.Ok(fmt.Sprintf("%d referenced objects are fetched on demand", len(missing))))
			}

			for _, stale := range fsutil.StaleBackups(filepath.Join(gitDir, "objects")) {
				out.Println(ui.Warn("stale snapshot from an interrupted run: " + stale))
			}

			if err := git.Fsck(ctx, gitDir); err != nil {
				out.Println(ui.Fail(fmt.Sprintf("object store is inconsistent: %v", err)))
				issues++
			} else {
				out.Println(ui.Ok("object store is consistent"))
			}

			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			return nil
		},
	}
}
