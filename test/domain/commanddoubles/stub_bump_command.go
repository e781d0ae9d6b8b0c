//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// StubBumpCommand is a stub implementation of commands.Bump.
type StubBumpCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Bumps            []entities.Bump
	LastSettings     *entities.Settings
	LastOpts         commands.BumpOptions
}

var _ commands.Bump = (*StubBumpCommand)(nil)

func (s *StubBumpCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.BumpOptions,
) ([]entities.Bump, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Bumps, s.ExecuteErr
}
