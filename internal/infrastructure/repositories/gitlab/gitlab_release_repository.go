package gitlab

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

// archivePattern matches ".../<namespace>/<project>/-/(archive|releases)/<tag>/...".
// The namespace may contain subgroups.
var archivePattern = regexp.MustCompile(
	`^https?://(?:www\.)?gitlab\.com/([^/]+(?:/[^/]+)+?)/-/(?:archive|releases)/([^/]+)/`,
)

// GitLabReleaseRepository implements repositories.ReleaseRepository on top of
// the GitLab releases API.
type GitLabReleaseRepository struct {
	client          *gl.Client
	timeout         time.Duration
	skipPrereleases bool
}

// NewGitLabReleaseRepository creates a GitLab release repository from settings.
func NewGitLabReleaseRepository(settings *entities.Settings) repositories.ReleaseRepository {
	opts := []gl.ClientOptionFunc{
		gl.WithHTTPClient(&http.Client{Timeout: settings.Timeout}),
		gl.WithoutRetries(),
	}
	if settings.GitLab.BaseURL != "" {
		opts = append(opts, gl.WithBaseURL(settings.GitLab.BaseURL))
	}

	client, err := gl.NewClient(settings.GitLab.Token, opts...)
	if err != nil {
		// Return a repository that resolves nothing rather than failing the run
		logger.Warnf("[gitlab] Failed to initialize client: %v", err)
		client = nil
	}

	return &GitLabReleaseRepository{
		client:          client,
		timeout:         settings.Timeout,
		skipPrereleases: settings.IgnorePrereleases,
	}
}

func (r *GitLabReleaseRepository) Name() string { return providerName }

func (r *GitLabReleaseRepository) MatchesURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "gitlab.com" || host == "www.gitlab.com"
}

func (r *GitLabReleaseRepository) Project(rawURL string) (string, bool) {
	project, ok := parseArchiveURL(rawURL)
	return project, ok
}

// ResolveLatest lists the releases of the project in a single request and
// returns the newest tag. Entries without a tag fall back to their name.
func (r *GitLabReleaseRepository) ResolveLatest(ctx context.Context, rawURL string) (string, bool) {
	project, ok := parseArchiveURL(rawURL)
	if !ok || r.client == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// the client escapes the project path into a single segment (org%2Fproject)
	releases, _, err := r.client.Releases.ListReleases(
		project,
		&gl.ListReleasesOptions{ListOptions: gl.ListOptions{PerPage: perPage}},
		gl.WithContext(ctx),
	)
	if err != nil {
		logger.Warnf("[gitlab] Failed to list releases for %s: %v", project, err)
		return "", false
	}

	names := make([]string, 0, len(releases))
	for _, release := range releases {
		name := release.TagName
		if name == "" {
			name = release.Name
		}
		names = append(names, name)
	}
	logger.Debugf("[gitlab] %s has %d releases", project, len(names))

	return entities.NewestVersion(names, r.skipPrereleases)
}

func parseArchiveURL(rawURL string) (string, bool) {
	m := archivePattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
