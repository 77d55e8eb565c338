// Package scm defines the source-control surface the release engine works
// against and its git command-line adapter.
package scm

import "context"

// Credentials authenticate remote tag listing and pushing. They are passed
// through opaquely.
type Credentials struct {
	Username string
	Password string
}

// Repository is the collaborator contract consumed by the release engine.
// Implementations perform the actual version-control work; the engine never
// talks to git directly.
type Repository interface {
	// CurrentBranch names the checked-out branch. Detached checkouts report
	// the commit hash.
	CurrentBranch(ctx context.Context) (string, error)

	// IsWorkingTreeChanged reports uncommitted local modifications.
	IsWorkingTreeChanged(ctx context.Context) (bool, error)

	// LocalTags lists all tag names known to the local repository.
	LocalTags(ctx context.Context) ([]string, error)

	// RemoteTags lists all tag names on the configured remote.
	RemoteTags(ctx context.Context) ([]string, error)

	// CreateTag creates an annotated tag at HEAD.
	CreateTag(ctx context.Context, name, message string) error

	// PushTag publishes a previously created tag to the configured remote.
	PushTag(ctx context.Context, name string) error
}
