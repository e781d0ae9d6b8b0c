package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/fetchbump/internal/domain/repositories"
	cmakeRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/cmake"
	gitRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/gitlab"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Release providers, tried in registration order
	if err := container.Provide(func() *ReleaseRegistry {
		reg := NewReleaseRegistry()
		reg.Register("github", ghRepo.NewGitHubReleaseRepository)
		reg.Register("gitlab", glRepo.NewGitLabReleaseRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *PullRequestRegistry {
		reg := NewPullRequestRegistry()
		reg.Register("github", ghRepo.NewGitHubPullRequestRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() WorkspaceFactory {
		return gitRepo.NewGitWorkspaceRepository
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.DeclarationRepository {
		return cmakeRepo.NewCMakeDeclarationRepository()
	}); err != nil {
		return err
	}

	return nil
}
