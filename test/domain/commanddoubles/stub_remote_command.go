//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// StubRemoteCommand is a stub implementation of commands.Remote.
type StubRemoteCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Bumps            []entities.Bump
	LastOpts         commands.RemoteOptions
}

var _ commands.Remote = (*StubRemoteCommand)(nil)

func (s *StubRemoteCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.RemoteOptions,
) ([]entities.Bump, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Bumps, s.ExecuteErr
}
