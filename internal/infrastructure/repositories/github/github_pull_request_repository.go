package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	gitInfra "github.com/rios0rios0/gitforge/pkg/git/infrastructure"
	globalEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const (
	fallbackBranch = "main"
	githubHost     = "github.com"
)

// GitHubPullRequestRepository implements repositories.PullRequestRepository
// for repositories hosted on GitHub.
type GitHubPullRequestRepository struct {
	client *gh.Client
}

// NewGitHubPullRequestRepository creates a GitHub pull request repository from settings.
func NewGitHubPullRequestRepository(settings *entities.Settings) repositories.PullRequestRepository {
	client := gh.NewClient(&http.Client{Timeout: settings.Timeout})
	if settings.GitHub.Token != "" {
		client = client.WithAuthToken(settings.GitHub.Token)
	}
	if settings.GitHub.BaseURL != "" {
		if baseURL, err := url.Parse(strings.TrimSuffix(settings.GitHub.BaseURL, "/") + "/"); err == nil {
			client.BaseURL = baseURL
		}
	}
	return &GitHubPullRequestRepository{client: client}
}

func (r *GitHubPullRequestRepository) MatchesURL(remoteURL string) bool {
	return strings.Contains(remoteURL, githubHost)
}

// DefaultBranch asks GitHub for the default branch, falling back to "main"
// when the repository metadata cannot be read.
func (r *GitHubPullRequestRepository) DefaultBranch(ctx context.Context, remoteURL string) (string, error) {
	owner, repo, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return "", err
	}

	repository, _, getErr := r.client.Repositories.Get(ctx, owner, repo)
	if getErr != nil {
		logger.Warnf("[github] Failed to read %s/%s metadata, assuming %q: %v", owner, repo, fallbackBranch, getErr)
		return fallbackBranch, nil
	}
	if branch := repository.GetDefaultBranch(); branch != "" {
		return branch, nil
	}
	return fallbackBranch, nil
}

func (r *GitHubPullRequestRepository) CreatePullRequest(
	ctx context.Context,
	remoteURL string,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	owner, repo, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return nil, err
	}

	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	maintainerCanModify := true
	pr, _, createErr := r.client.PullRequests.Create(
		ctx, owner, repo,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &sourceBranch,
			Base:                &targetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if createErr != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", createErr)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

// ParseRemoteURL extracts owner and repository name from an SSH or HTTPS
// GitHub remote URL.
func ParseRemoteURL(remoteURL string) (string, string, error) {
	info, err := gitInfra.ParseRemoteURL(strings.TrimSpace(remoteURL))
	if err != nil {
		return "", "", fmt.Errorf("cannot read remote URL: %w", err)
	}
	if info.ServiceType != globalEntities.GITHUB {
		return "", "", fmt.Errorf("remote %s is not hosted on %s", remoteURL, githubHost)
	}
	if info.Organization == "" || info.RepoName == "" {
		return "", "", fmt.Errorf("cannot extract owner/repo from URL: %s", remoteURL)
	}
	return info.Organization, info.RepoName, nil
}
