package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	infraRepos "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories"
)

const cloneDirPattern = "fetchbump-*"

// Remote is the interface for the remote command.
type Remote interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RemoteOptions) ([]entities.Bump, error)
}

// RemoteOptions names the repository to inspect.
type RemoteOptions struct {
	RepoURL string
}

// RemoteCommand reports the bumps of a repository without a local checkout.
type RemoteCommand struct {
	bump             Bump
	workspaceFactory infraRepos.WorkspaceFactory
}

// NewRemoteCommand creates a new RemoteCommand.
func NewRemoteCommand(bump Bump, workspaceFactory infraRepos.WorkspaceFactory) *RemoteCommand {
	return &RemoteCommand{bump: bump, workspaceFactory: workspaceFactory}
}

// Execute clones the repository into a temporary directory, runs a dry bump
// pass over it and removes the clone.
func (it *RemoteCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RemoteOptions,
) ([]entities.Bump, error) {
	dir, err := os.MkdirTemp("", cloneDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			logger.Warnf("Failed to remove %s: %v", dir, removeErr)
		}
	}()

	workspace := it.workspaceFactory(tokenForRemote(settings, opts.RepoURL))
	if cloneErr := workspace.Clone(ctx, opts.RepoURL, dir); cloneErr != nil {
		return nil, cloneErr
	}

	return it.bump.Execute(ctx, settings, BumpOptions{Root: dir, DryRun: true})
}

// tokenForRemote picks the credential of the host serving repoURL.
func tokenForRemote(settings *entities.Settings, repoURL string) string {
	host := repoURL
	if parsed, err := url.Parse(repoURL); err == nil && parsed.Host != "" {
		host = parsed.Hostname()
	}
	if strings.Contains(strings.ToLower(host), "gitlab") {
		return settings.GitLab.Token
	}
	return settings.GitHub.Token
}
