package github

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

// archivePattern matches ".../<owner>/<repo>/archive/[refs/tags/]<tag>.<ext>".
var archivePattern = regexp.MustCompile(
	`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+)/archive/(?:refs/tags/)?([^/]+?)\.(?:tar\.gz|tgz|tar\.bz2|tar\.xz|zip)$`,
)

// GitHubReleaseRepository implements repositories.ReleaseRepository on top of
// the GitHub tags API.
type GitHubReleaseRepository struct {
	client          *gh.Client
	timeout         time.Duration
	skipPrereleases bool
}

// NewGitHubReleaseRepository creates a GitHub release repository from settings.
// The token is optional; anonymous calls are rate limited but work.
func NewGitHubReleaseRepository(settings *entities.Settings) repositories.ReleaseRepository {
	client := gh.NewClient(&http.Client{Timeout: settings.Timeout})
	if settings.GitHub.Token != "" {
		client = client.WithAuthToken(settings.GitHub.Token)
	}
	if settings.GitHub.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(settings.GitHub.BaseURL, "/") + "/")
		if err != nil {
			logger.Warnf("[github] Ignoring invalid API URL %q: %v", settings.GitHub.BaseURL, err)
		} else {
			client.BaseURL = baseURL
		}
	}

	return &GitHubReleaseRepository{
		client:          client,
		timeout:         settings.Timeout,
		skipPrereleases: settings.IgnorePrereleases,
	}
}

func (r *GitHubReleaseRepository) Name() string { return providerName }

func (r *GitHubReleaseRepository) MatchesURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "github.com" || host == "www.github.com"
}

func (r *GitHubReleaseRepository) Project(rawURL string) (string, bool) {
	owner, repo, ok := parseArchiveURL(rawURL)
	if !ok {
		return "", false
	}
	return owner + "/" + repo, true
}

// ResolveLatest lists the tags of the repository in a single request and
// returns the newest one.
func (r *GitHubReleaseRepository) ResolveLatest(ctx context.Context, rawURL string) (string, bool) {
	owner, repo, ok := parseArchiveURL(rawURL)
	if !ok {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tags, _, err := r.client.Repositories.ListTags(ctx, owner, repo, &gh.ListOptions{PerPage: perPage})
	if err != nil {
		logger.Warnf("[github] Failed to list tags for %s/%s: %v", owner, repo, err)
		return "", false
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.GetName())
	}
	logger.Debugf("[github] %s/%s has %d tags", owner, repo, len(names))

	return entities.NewestVersion(names, r.skipPrereleases)
}

func parseArchiveURL(rawURL string) (string, string, bool) {
	m := archivePattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
