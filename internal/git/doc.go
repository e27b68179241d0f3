// Package git wraps the git CLI operations needed to convert a repository
// into a blobless clone: discovery, remote and config inspection, object
// enumeration, cloning, repacking and filtered fetching.
//
// All functions shell out to git; see internal/cmd for the rationale.
package git
