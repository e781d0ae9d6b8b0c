//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	ghRepo "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/fetchbump/test/domain/entitybuilders"
)

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "should parse an HTTPS remote", url: "https://github.com/acme/engine.git", owner: "acme", repo: "engine"},
		{name: "should parse an SSH remote", url: "git@github.com:acme/engine.git", owner: "acme", repo: "engine"},
		{name: "should parse a remote without .git", url: "https://github.com/acme/engine", owner: "acme", repo: "engine"},
		{name: "should reject a remote of another host", url: "https://gitlab.com/acme/engine.git", wantErr: true},
		{name: "should reject a remote without repository", url: "https://github.com/acme", wantErr: true},
		{name: "should reject an empty remote", url: "", wantErr: true},
		{name: "should trim surrounding whitespace", url: " git@github.com:acme/engine.git\n", owner: "acme", repo: "engine"},
		{name: "should reject an SSH remote of another host", url: "git@gitlab.com:acme/engine.git", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			url := tt.url

			// when
			owner, repo, err := ghRepo.ParseRemoteURL(url)

			// then
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestGitHubPullRequestRepository(t *testing.T) {
	t.Parallel()

	const remote = "https://github.com/acme/engine.git"

	t.Run("should read the default branch", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/engine", r.URL.Path)
			_, _ = w.Write([]byte(`{"default_branch":"develop"}`))
		}))
		t.Cleanup(server.Close)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		settings.GitHub.BaseURL = server.URL
		repo := ghRepo.NewGitHubPullRequestRepository(settings)

		// when
		branch, err := repo.DefaultBranch(context.Background(), remote)

		// then
		require.NoError(t, err)
		assert.Equal(t, "develop", branch)
	})

	t.Run("should fall back to main when the metadata cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(server.Close)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		settings.GitHub.BaseURL = server.URL
		repo := ghRepo.NewGitHubPullRequestRepository(settings)

		// when
		branch, err := repo.DefaultBranch(context.Background(), remote)

		// then
		require.NoError(t, err)
		assert.Equal(t, "main", branch)
	})

	t.Run("should open the pull request", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/repos/acme/engine/pulls", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"number":42,"title":"Bump","html_url":"https://github.com/acme/engine/pull/42","state":"open"}`))
		}))
		t.Cleanup(server.Close)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		settings.GitHub.BaseURL = server.URL
		repo := ghRepo.NewGitHubPullRequestRepository(settings)

		// when
		//nolint:exhaustruct // Minimal PullRequestInput initialization with required fields only
		pr, err := repo.CreatePullRequest(context.Background(), remote, entities.PullRequestInput{
			SourceBranch: "refs/heads/bump-fetchcontent-0",
			TargetBranch: "main",
			Title:        "Bump",
			Description:  "body",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 42, pr.ID)
		assert.Equal(t, "https://github.com/acme/engine/pull/42", pr.URL)
		assert.Equal(t, "bump-fetchcontent-0", received["head"])
		assert.Equal(t, "main", received["base"])
		assert.Equal(t, "body", received["body"])
	})

	t.Run("should match GitHub remotes only", func(t *testing.T) {
		t.Parallel()

		// given
		repo := ghRepo.NewGitHubPullRequestRepository(entitybuilders.NewSettingsBuilder().BuildSettings())

		// when
		github := repo.MatchesURL(remote)
		gitlab := repo.MatchesURL("https://gitlab.com/acme/engine.git")

		// then
		assert.True(t, github)
		assert.False(t, gitlab)
	})
}
