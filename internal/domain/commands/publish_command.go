package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories"
)

// Publish is the interface for the publish command.
type Publish interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PublishOptions) (*entities.PullRequest, error)
}

// PublishOptions holds the already applied bumps of a local working copy.
type PublishOptions struct {
	Root  string
	Bumps []entities.Bump
}

// PublishCommand turns applied bumps into a branch, a commit and a pull request.
type PublishCommand struct {
	prRegistry       *infraRepos.PullRequestRegistry
	workspaceFactory infraRepos.WorkspaceFactory
}

// NewPublishCommand creates a new PublishCommand.
func NewPublishCommand(
	prRegistry *infraRepos.PullRequestRegistry,
	workspaceFactory infraRepos.WorkspaceFactory,
) *PublishCommand {
	return &PublishCommand{
		prRegistry:       prRegistry,
		workspaceFactory: workspaceFactory,
	}
}

// Execute pushes the bumped files on a fresh branch and opens the pull request.
func (it *PublishCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PublishOptions,
) (*entities.PullRequest, error) {
	if len(opts.Bumps) == 0 {
		return nil, errors.New("nothing to publish")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	workspace := it.workspaceFactory(settings.GitHub.Token)
	remoteURL, err := workspace.RemoteURL(root)
	if err != nil {
		return nil, err
	}

	prRepo, err := it.prRegistry.ForRemote(remoteURL, settings)
	if err != nil {
		return nil, err
	}

	prSettings := settings.PullRequest
	branch, err := workspace.UniqueBranchName(ctx, root, prSettings.BranchPrefix)
	if err != nil {
		return nil, err
	}

	paths, _ := entities.GroupBumpsByFile(opts.Bumps)
	if prSettings.UpdateChangelog {
		if changelog, ok := updateChangelog(root, opts.Bumps); ok {
			paths = append(paths, changelog)
		}
	}

	if commitErr := workspace.CommitAndPush(ctx, root, repositories.CommitInput{
		BranchName:  branch,
		Message:     prSettings.CommitMessage,
		AuthorName:  prSettings.AuthorName,
		AuthorEmail: prSettings.AuthorEmail,
		Paths:       paths,
	}); commitErr != nil {
		return nil, commitErr
	}

	target, err := prRepo.DefaultBranch(ctx, remoteURL)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct // Minimal PullRequestInput initialization with required fields only
	pr, err := prRepo.CreatePullRequest(ctx, remoteURL, entities.PullRequestInput{
		SourceBranch: branch,
		TargetBranch: target,
		Title:        prSettings.Title,
		Description:  entities.PullRequestDescription(opts.Bumps, root),
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Created pull request #%d: %s", pr.ID, pr.URL)
	return pr, nil
}

// updateChangelog adds the bumps to the root CHANGELOG.md and returns its
// path when the file was changed.
func updateChangelog(root string, bumps []entities.Bump) (string, bool) {
	path := filepath.Join(root, entities.ChangelogFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("Failed to read %s: %v", path, err)
		}
		return "", false
	}

	content, changed := entities.AddChangelogEntries(string(data), entities.ChangelogEntries(bumps))
	if !changed {
		logger.Debugf("%s has no Unreleased section, leaving it alone", path)
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Warnf("Failed to stat %s: %v", path, err)
		return "", false
	}
	if writeErr := os.WriteFile(path, []byte(content), info.Mode().Perm()); writeErr != nil {
		logger.Warnf("Failed to write %s: %v", path, writeErr)
		return "", false
	}
	return path, true
}
