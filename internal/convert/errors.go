package convert

import "errors"

// Precondition and verification failures. Anything else that goes wrong
// is a wrapped subprocess error carrying the underlying exit status.
var (
	// ErrInvalidTarget indicates a target argument that is not a directory.
	ErrInvalidTarget = errors.New("not a directory")

	// ErrNotARepository indicates a target outside any git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrDetachedHead indicates no checked-out branch; a branch is
	// required to determine the fetch remote unambiguously.
	ErrDetachedHead = errors.New("detached HEAD, checkout a branch first")

	// ErrNoRemote indicates the fetch remote could not be determined.
	ErrNoRemote = errors.New("no remote configured")

	// ErrConsistency indicates the object-store consistency check failed.
	ErrConsistency = errors.New("consistency check failed")
)
