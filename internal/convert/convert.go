// Package convert implements the transition that turns a complete local
// clone into a blobless one: commits and trees stay local, file-content
// objects are dropped and refetched on demand from the remote.
//
// The transition is a single linear pipeline per target, wrapped in a
// safety envelope: the object store is snapshotted before the first
// mutating step and restored from that snapshot on any failure or
// interruption, so the repository is never left in a partial state.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/blobless/internal/config"
	"github.com/raphi011/blobless/internal/fsutil"
	"github.com/raphi011/blobless/internal/git"
	"github.com/raphi011/blobless/internal/log"
	"github.com/raphi011/blobless/internal/output"
)

// Options controls a single conversion run.
type Options struct {
	// Filter is the partial-clone filter spec (default blob:none).
	Filter string
	// KeepBackup retains the object-store snapshot on success.
	KeepBackup bool
	// DryRun stops after the read-only preflight steps.
	DryRun bool
	// Status, if set, receives one-line step descriptions (spinner hook).
	Status func(string)
}

// Result summarizes a completed conversion.
type Result struct {
	SizeBefore      int64 // object store bytes before dedup
	SizeAfter       int64 // object store bytes after completion fetch
	FetchedObjects  int   // objects pulled in the targeted-fetch phase
	AlreadyBlobless bool  // targeted-fetch phase found nothing missing
}

// SavedKB returns the object store's size decrease in kilobytes.
func (r *Result) SavedKB() int64 {
	return (r.SizeBefore - r.SizeAfter) / 1024
}

// Run converts the repository at target into a blobless clone.
//
// On any failure, including context cancellation from an interrupt
// signal, the finalizer restores the object store from its pre-run
// snapshot before Run returns.
func Run(ctx context.Context, target *Target, opts Options) (res *Result, err error) {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if opts.Filter == "" {
		opts.Filter = config.DefaultFilter
	}
	status := opts.Status
	if status == nil {
		status = func(string) {}
	}

	// Safety gate: never touch a store that is already unsound.
	status("Checking repository consistency")
	if fsckErr := git.Fsck(ctx, target.GitDir); fsckErr != nil {
		return nil, fmt.Errorf("%w before transition: %v", ErrConsistency, fsckErr)
	}

	objectsDir := filepath.Join(target.GitDir, "objects")
	for _, stale := range fsutil.StaleBackups(objectsDir) {
		l.Warnf("stale backup from a previous run: %s (left untouched, remove manually)", stale)
	}

	// Probe before mutating anything: a store that already misses
	// objects cannot seed the scratch clone (git rejects a reference
	// repository with missing objects).
	status("Probing local object store")
	missing, err := git.MissingObjects(ctx, target.GitDir)
	if err != nil {
		return nil, err
	}

	sizeBefore, err := fsutil.DirSize(objectsDir)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		out.Printf("Would convert %s (branch %s, remote %s at %s) with filter %s\n",
			target.Dir, target.Branch, target.Remote, target.URL, opts.Filter)
		return &Result{SizeBefore: sizeBefore, SizeAfter: sizeBefore}, nil
	}

	st := &runState{objectsDir: objectsDir}
	defer func() {
		err = st.finalize(ctx, target, opts, err)
	}()

	// Snapshot first; everything after this line is undone from the
	// snapshot on failure.
	status("Snapshotting object store")
	out.Println("Snapshotting object store")
	st.backupDir = fsutil.BackupName(objectsDir)
	if cpErr := fsutil.CopyDir(objectsDir, st.backupDir); cpErr != nil {
		return nil, fmt.Errorf("snapshot object store: %w", cpErr)
	}
	st.backupReady = true

	st.scratchDir, err = os.MkdirTemp("", "blobless-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	scratch := filepath.Join(st.scratchDir, "scratch.git")

	cloneOpts := git.CloneOptions{}
	if len(missing) == 0 {
		// A complete local store seeds the transfer so the clone mostly
		// reuses objects we already have.
		cloneOpts = git.CloneOptions{Reference: target.Dir, Dissociate: true}
	}
	status("Cloning " + target.URL)
	out.Printf("Cloning %s\n", target.URL)
	if err := git.CloneBare(ctx, target.URL, scratch, cloneOpts); err != nil {
		return nil, err
	}
	// A clone over the local-path transport can arrive with its objects
	// loose; the dedup step below drops local objects only when the
	// scratch holds them in a pack.
	if err := git.Repack(ctx, scratch); err != nil {
		return nil, err
	}
	// The targeted-fetch phase requests raw object ids from the scratch
	// clone, which upload-pack refuses by default.
	if err := git.ConfigSet(ctx, scratch, "uploadpack.allowanysha1inwant", "true"); err != nil {
		return nil, err
	}

	status("Dropping objects the remote already serves")
	out.Println("Dropping objects the remote already serves")
	if err := git.RepackDroppingAlternate(ctx, target.GitDir, filepath.Join(scratch, "objects")); err != nil {
		return nil, err
	}

	// Past the point of no return for object removal: from here on the
	// remote must be promisor-capable for the store to be usable, and a
	// rollback can no longer undo the config keys (only warn).
	st.reconfigured = true
	if err := git.EnablePromisor(ctx, target.GitDir, target.Remote, opts.Filter); err != nil {
		return nil, err
	}

	status("Refetching history metadata")
	out.Printf("Refetching tags and %s under %s\n", target.Branch, opts.Filter)
	if err := git.RefetchFiltered(ctx, target.GitDir, target.Remote, target.Branch, opts.Filter); err != nil {
		return nil, err
	}

	status("Completing the checked-out revision")
	ids, err := git.MissingObjectsFrom(ctx, target.GitDir, target.Branch)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		out.Println("No objects needed fetching (repository is already blobless)")
	} else {
		out.Printf("Fetching %d objects for the checked-out revision\n", len(ids))
		if err := git.FetchObjects(ctx, target.GitDir, scratch, ids); err != nil {
			return nil, err
		}
	}

	status("Verifying repository consistency")
	if fsckErr := git.Fsck(ctx, target.GitDir); fsckErr != nil {
		return nil, fmt.Errorf("%w after transition: %v", ErrConsistency, fsckErr)
	}

	sizeAfter, err := fsutil.DirSize(objectsDir)
	if err != nil {
		return nil, err
	}

	st.missionComplete = true
	return &Result{
		SizeBefore:      sizeBefore,
		SizeAfter:       sizeAfter,
		FetchedObjects:  len(ids),
		AlreadyBlobless: len(ids) == 0,
	}, nil
}
