package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/raphi011/blobless/internal/convert"
	"github.com/raphi011/blobless/internal/output"
	"github.com/raphi011/blobless/internal/ui"
)

// Conversion flags
var (
	dryRun     bool
	filter     string
	keepBackup bool
)

// runConvert converts every repository named on the command line, or
// the working directory when none is given.
func runConvert(cmd *cobra.Command, args []string) error {
	opts := convert.Options{
		Filter:     filter,
		KeepBackup: keepBackup || cfg.KeepBackup,
		DryRun:     dryRun,
	}
	if opts.Filter == "" {
		opts.Filter = cfg.Filter
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{workDir}
	}

	for _, dir := range dirs {
		if err := convertOne(cmd, dir, opts); err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}
	return nil
}

func convertOne(cmd *cobra.Command, dir string, opts convert.Options) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	target, err := convert.Resolve(ctx, dir)
	if err != nil {
		return err
	}

	var sp *ui.Spinner
	if ui.ShowSpinner() && !opts.DryRun {
		sp = ui.NewSpinner("Preparing")
		sp.Start()
		defer sp.Stop()
		opts.Status = sp.UpdateMessage
	}

	res, err := convert.Run(ctx, target, opts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	if opts.DryRun {
		return nil
	}

	if res.AlreadyBlobless {
		out.Printf("%s is already blobless\n", target.Dir)
	}
	out.Printf("%s: object store shrank by %d KB (%s -> %s)\n",
		target.Dir,
		res.SavedKB(),
		units.HumanSize(float64(res.SizeBefore)),
		units.HumanSize(float64(res.SizeAfter)))
	return nil
}
