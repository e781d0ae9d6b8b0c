package repositories

import (
	"context"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// PullRequestRepository opens pull requests on the hosting service that owns
// the working copy.
type PullRequestRepository interface {
	// MatchesURL returns true if the remote URL belongs to this provider.
	MatchesURL(remoteURL string) bool

	// DefaultBranch returns the default branch of the repository behind
	// remoteURL.
	DefaultBranch(ctx context.Context, remoteURL string) (string, error)

	// CreatePullRequest opens a pull request on the repository behind remoteURL.
	CreatePullRequest(
		ctx context.Context,
		remoteURL string,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)
}
