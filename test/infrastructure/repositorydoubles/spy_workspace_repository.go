//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// SpyWorkspaceRepository implements repositories.WorkspaceRepository as a
// configurable spy.
type SpyWorkspaceRepository struct {
	// --- Clone ---
	CloneErr   error
	CloneFunc  func(dir string) error // Populates the clone directory
	ClonedURLs []string
	CloneDirs  []string

	// --- RemoteURL ---
	Remote    string
	RemoteErr error

	// --- UniqueBranchName ---
	Branch       string
	BranchErr    error
	BranchPrefix string

	// --- CommitAndPush ---
	CommitErr error
	Commits   []repositories.CommitInput
}

var _ repositories.WorkspaceRepository = (*SpyWorkspaceRepository)(nil)

func (s *SpyWorkspaceRepository) Clone(_ context.Context, remoteURL, dir string) error {
	s.ClonedURLs = append(s.ClonedURLs, remoteURL)
	s.CloneDirs = append(s.CloneDirs, dir)
	if s.CloneErr != nil {
		return s.CloneErr
	}
	if s.CloneFunc != nil {
		return s.CloneFunc(dir)
	}
	return nil
}

func (s *SpyWorkspaceRepository) RemoteURL(_ string) (string, error) {
	return s.Remote, s.RemoteErr
}

func (s *SpyWorkspaceRepository) UniqueBranchName(_ context.Context, _, prefix string) (string, error) {
	s.BranchPrefix = prefix
	return s.Branch, s.BranchErr
}

func (s *SpyWorkspaceRepository) CommitAndPush(
	_ context.Context,
	_ string,
	input repositories.CommitInput,
) error {
	s.Commits = append(s.Commits, input)
	return s.CommitErr
}
