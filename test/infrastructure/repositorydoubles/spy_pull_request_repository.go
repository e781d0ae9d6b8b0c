//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// SpyPullRequestRepository implements repositories.PullRequestRepository as a
// configurable spy.
type SpyPullRequestRepository struct {
	// --- MatchesURL ---
	Host string

	// --- DefaultBranch ---
	Default          string
	DefaultBranchErr error

	// --- CreatePullRequest ---
	CreatedPR   *entities.PullRequest
	CreatePRErr error
	PRInputs    []entities.PullRequestInput
}

var _ repositories.PullRequestRepository = (*SpyPullRequestRepository)(nil)

func (s *SpyPullRequestRepository) MatchesURL(remoteURL string) bool {
	return s.Host != "" && strings.Contains(remoteURL, s.Host)
}

func (s *SpyPullRequestRepository) DefaultBranch(_ context.Context, _ string) (string, error) {
	return s.Default, s.DefaultBranchErr
}

func (s *SpyPullRequestRepository) CreatePullRequest(
	_ context.Context,
	_ string,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	s.PRInputs = append(s.PRInputs, input)
	return s.CreatedPR, s.CreatePRErr
}
