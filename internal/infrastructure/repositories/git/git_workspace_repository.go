package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const (
	remoteName     = "origin"
	maxBranchTries = 100
	tokenUser      = "x-access-token"
)

// ErrTooManyBranches is returned when every candidate branch name is taken.
var ErrTooManyBranches = errors.New("too many dependency bump branches on the remote, close some")

// GitWorkspaceRepository implements repositories.WorkspaceRepository with go-git.
type GitWorkspaceRepository struct {
	token string
}

// NewGitWorkspaceRepository creates a workspace repository authenticating
// HTTPS remotes with token. An empty token means anonymous access.
func NewGitWorkspaceRepository(token string) repositories.WorkspaceRepository {
	return &GitWorkspaceRepository{token: token}
}

func (r *GitWorkspaceRepository) auth() transport.AuthMethod {
	if r.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: tokenUser, Password: r.token}
}

func (r *GitWorkspaceRepository) Clone(ctx context.Context, remoteURL, dir string) error {
	logger.Infof("Cloning %s into %s", remoteURL, dir)
	//nolint:exhaustruct // Minimal CloneOptions initialization with required fields only
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:   remoteURL,
		Depth: 1,
		Auth:  r.auth(),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", remoteURL, err)
	}
	return nil
}

func (r *GitWorkspaceRepository) RemoteURL(dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %w", dir, err)
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", remoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteName)
	}
	return urls[0], nil
}

func (r *GitWorkspaceRepository) UniqueBranchName(ctx context.Context, dir, prefix string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %w", dir, err)
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", remoteName, err)
	}

	//nolint:exhaustruct // Minimal ListOptions initialization with required fields only
	refs, err := remote.ListContext(ctx, &gogit.ListOptions{Auth: r.auth()})
	if err != nil {
		return "", fmt.Errorf("failed to list remote branches: %w", err)
	}

	existing := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref.Name().IsBranch() {
			existing[ref.Name().Short()] = true
		}
	}

	return NextBranchName(prefix, existing)
}

// NextBranchName returns the first "<prefix>-N" not present in existing.
func NextBranchName(prefix string, existing map[string]bool) (string, error) {
	for i := range maxBranchTries {
		candidate := fmt.Sprintf("%s-%d", prefix, i)
		if !existing[candidate] {
			return candidate, nil
		}
	}
	return "", ErrTooManyBranches
}

func (r *GitWorkspaceRepository) CommitAndPush(
	ctx context.Context,
	dir string,
	input repositories.CommitInput,
) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %s: %w", dir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	branchRef := plumbing.NewBranchReferenceName(input.BranchName)
	//nolint:exhaustruct // Minimal CheckoutOptions initialization with required fields only
	if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{
		Branch: branchRef,
		Create: true,
		Keep:   true,
	}); checkoutErr != nil {
		return fmt.Errorf("failed to create branch %s: %w", input.BranchName, checkoutErr)
	}

	for _, path := range input.Paths {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil || strings.HasPrefix(rel, "..") {
			return fmt.Errorf("path %s is outside the repository", path)
		}
		if _, addErr := worktree.Add(filepath.ToSlash(rel)); addErr != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, addErr)
		}
	}

	//nolint:exhaustruct // Minimal CommitOptions initialization with required fields only
	hash, err := worktree.Commit(input.Message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  input.AuthorName,
			Email: input.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logger.Infof("Committed %s on %s", hash.String()[:7], input.BranchName)

	refSpec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", branchRef, branchRef))
	//nolint:exhaustruct // Minimal PushOptions initialization with required fields only
	if pushErr := repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
		Auth:       r.auth(),
	}); pushErr != nil {
		return fmt.Errorf("failed to push %s: %w", input.BranchName, pushErr)
	}
	return nil
}
