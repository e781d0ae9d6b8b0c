package commands

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// Planner decides, one declaration at a time, whether a bump applies.
// It never touches files.
type Planner struct {
	releases repositories.ReleaseRepository
	settings *entities.Settings
}

// NewPlanner creates a planner resolving releases through releases.
func NewPlanner(releases repositories.ReleaseRepository, settings *entities.Settings) *Planner {
	return &Planner{releases: releases, settings: settings}
}

// Plan returns the bump for decl, or false when there is nothing to do.
func (it *Planner) Plan(ctx context.Context, decl entities.Declaration) (entities.Bump, bool) {
	if it.settings.IsIgnored(decl.Name) {
		logger.Infof("Skipping %s: listed in ignore", decl.Name)
		return entities.Bump{}, false
	}

	latest, found := it.releases.ResolveLatest(ctx, decl.URL)
	if !found {
		logger.Debugf("No release found for %s (%s)", decl.Name, decl.URL)
		return entities.Bump{}, false
	}

	if !entities.IsNewerVersion(decl.Version, latest) {
		logger.Debugf("%s is up to date at %s (latest %s)", decl.Name, decl.Version, latest)
		return entities.Bump{}, false
	}

	bump, err := entities.NewBump(decl, latest)
	if err != nil {
		if errors.Is(err, entities.ErrNoChange) {
			logger.Debugf("%s: %v", decl.Name, err)
		} else {
			logger.Warnf("Not bumping %s: %v", decl.Name, err)
		}
		return entities.Bump{}, false
	}

	if decl.Hash != "" {
		logger.Warnf(
			"%s pins URL_HASH in %s:%d, update it for %s",
			decl.Name, decl.FilePath, decl.Line, bump.NewVersion,
		)
	}
	return bump, true
}
