package repositories

import "context"

// CommitInput describes a commit to be created on a fresh branch.
type CommitInput struct {
	BranchName  string
	Message     string
	AuthorName  string
	AuthorEmail string
	Paths       []string // Absolute paths of the files to stage
}

// WorkspaceRepository abstracts the git working copy the bumps are applied to.
type WorkspaceRepository interface {
	// Clone makes a shallow copy of remoteURL in dir.
	Clone(ctx context.Context, remoteURL, dir string) error

	// RemoteURL returns the fetch URL of the "origin" remote of dir.
	RemoteURL(dir string) (string, error)

	// UniqueBranchName returns "<prefix>-N" for the smallest N not yet
	// present on the "origin" remote.
	UniqueBranchName(ctx context.Context, dir, prefix string) (string, error)

	// CommitAndPush creates the branch, commits the given paths and pushes
	// the branch to "origin".
	CommitAndPush(ctx context.Context, dir string, input CommitInput) error
}
