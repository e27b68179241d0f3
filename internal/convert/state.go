package convert

import (
	"context"
	"os"

	"github.com/raphi011/blobless/internal/git"
	"github.com/raphi011/blobless/internal/log"
)

// runState is the mutable safety-envelope state shared between the
// pipeline and its finalizer.
type runState struct {
	objectsDir string
	backupDir  string // "" until a snapshot location was chosen
	scratchDir string // "" until the scratch temp dir was created

	backupReady     bool // snapshot copy completed, safe to restore from
	reconfigured    bool // remote config keys may have been written
	missionComplete bool // all mutating and verifying steps succeeded
	finalized       bool // guards against running the finalizer twice
}

// finalize runs exactly once at the end of a conversion, on every exit
// path. It removes the scratch clone and either discards the snapshot
// (success) or restores the object store from it (failure). The incoming
// error is passed through unchanged; cleanup problems are only logged.
func (st *runState) finalize(ctx context.Context, target *Target, opts Options, runErr error) error {
	if st.finalized {
		return runErr
	}
	st.finalized = true

	l := log.FromContext(ctx)

	if st.scratchDir != "" {
		if err := os.RemoveAll(st.scratchDir); err != nil {
			l.Warnf("remove scratch clone %s: %v", st.scratchDir, err)
		}
	}

	if st.missionComplete {
		if opts.KeepBackup {
			l.Printf("Snapshot retained at %s\n", st.backupDir)
			return runErr
		}
		if err := os.RemoveAll(st.backupDir); err != nil {
			l.Warnf("remove snapshot %s: %v", st.backupDir, err)
		}
		return runErr
	}

	if !st.backupReady {
		// An aborted snapshot copy must not be restored; the store was
		// never mutated before the snapshot completed.
		if st.backupDir != "" {
			if err := os.RemoveAll(st.backupDir); err != nil {
				l.Warnf("remove partial snapshot %s: %v", st.backupDir, err)
			}
		}
		return runErr
	}

	l.Warnf("restoring object store from %s", st.backupDir)
	if err := os.RemoveAll(st.objectsDir); err != nil {
		l.Warnf("could not clear object store: %v (snapshot left at %s)", err, st.backupDir)
		return runErr
	}
	if err := os.Rename(st.backupDir, st.objectsDir); err != nil {
		l.Warnf("could not move snapshot back: %v (snapshot left at %s)", err, st.backupDir)
		return runErr
	}
	l.Warnf("object store restored to its pre-run state")

	if st.reconfigured {
		// Remote config keys live outside the object store and are not
		// rolled back; show their current values so the operator can
		// verify them. The parent context may already be cancelled.
		pc := git.RemotePromisorConfig(context.WithoutCancel(ctx), target.GitDir, target.Remote)
		l.Warnf("verify the settings of remote %q: promisor=%q partialclonefilter=%q",
			target.Remote, pc.Promisor, pc.Filter)
	}
	return runErr
}
