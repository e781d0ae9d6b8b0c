//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// StubPublishCommand is a stub implementation of commands.Publish.
type StubPublishCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	PullRequest      *entities.PullRequest
	LastOpts         commands.PublishOptions
}

var _ commands.Publish = (*StubPublishCommand)(nil)

func (s *StubPublishCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.PublishOptions,
) (*entities.PullRequest, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.PullRequest, s.ExecuteErr
}
