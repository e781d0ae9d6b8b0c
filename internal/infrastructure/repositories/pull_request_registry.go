package repositories

import (
	"fmt"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	domainRepos "github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// PullRequestFactory is a constructor function that creates a PullRequestRepository from the run settings.
type PullRequestFactory func(settings *entities.Settings) domainRepos.PullRequestRepository

// WorkspaceFactory is a constructor function that creates a WorkspaceRepository given an auth token.
type WorkspaceFactory func(token string) domainRepos.WorkspaceRepository

// PullRequestRegistry manages the hosting providers able to open pull requests.
type PullRequestRegistry struct {
	names     []string
	factories map[string]PullRequestFactory
}

// NewPullRequestRegistry creates an empty pull request registry.
func NewPullRequestRegistry() *PullRequestRegistry {
	return &PullRequestRegistry{
		factories: make(map[string]PullRequestFactory),
	}
}

// Register adds a pull request factory under the given name (e.g. "github").
func (r *PullRequestRegistry) Register(name string, factory PullRequestFactory) {
	if _, ok := r.factories[name]; !ok {
		r.names = append(r.names, name)
	}
	r.factories[name] = factory
}

// ForRemote returns a configured repository for the provider owning remoteURL.
func (r *PullRequestRegistry) ForRemote(
	remoteURL string,
	settings *entities.Settings,
) (domainRepos.PullRequestRepository, error) {
	for _, name := range r.names {
		repo := r.factories[name](settings)
		if repo.MatchesURL(remoteURL) {
			return repo, nil
		}
	}
	return nil, fmt.Errorf("unsupported git remote URL for pull requests: %s", remoteURL)
}

// Names returns the list of registered provider names.
func (r *PullRequestRegistry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
