package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/fetchbump/internal/infrastructure/repositories"
)

// Bump is the interface for the bump command.
type Bump interface {
	Execute(ctx context.Context, settings *entities.Settings, opts BumpOptions) ([]entities.Bump, error)
}

// BumpOptions holds runtime options for a single bump pass.
type BumpOptions struct {
	Root   string
	DryRun bool // Plan and report, but leave files alone
}

// BumpCommand runs the whole engine over a source tree:
// scan -> resolve and compare -> plan -> patch.
type BumpCommand struct {
	declarations    repositories.DeclarationRepository
	releaseRegistry *infraRepos.ReleaseRegistry
}

// NewBumpCommand creates a new BumpCommand.
func NewBumpCommand(
	declarations repositories.DeclarationRepository,
	releaseRegistry *infraRepos.ReleaseRegistry,
) *BumpCommand {
	return &BumpCommand{
		declarations:    declarations,
		releaseRegistry: releaseRegistry,
	}
}

// Execute returns the bumps in declaration order. Files are only written
// when not running dry.
func (it *BumpCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts BumpOptions,
) ([]entities.Bump, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	files, decls, err := it.scan(root, settings.ExcludeDirs)
	if err != nil {
		return nil, err
	}
	logger.Infof("Found %d declarations in %d files", len(decls), len(files))

	metrics := infraRepos.NewReleaseMetrics()
	resolver := infraRepos.NewReleaseResolver(it.releaseRegistry.Build(settings), metrics)
	bumps, err := planAll(ctx, NewPlanner(resolver, settings), decls, settings.Concurrency)
	if err != nil {
		return nil, err
	}

	if settings.MetricsFile != "" {
		if metricsErr := metrics.WriteToFile(settings.MetricsFile); metricsErr != nil {
			logger.Warnf("%v", metricsErr)
		}
	}

	if len(bumps) == 0 {
		logger.Info("No bumpable dependencies found.")
		return nil, nil
	}

	if patchErr := it.patch(files, bumps, root, opts.DryRun); patchErr != nil {
		return bumps, patchErr
	}

	if opts.DryRun {
		logger.Info("DRY RUN only: no files were modified.")
	}
	return bumps, nil
}

func (it *BumpCommand) scan(
	root string,
	excludeDirs []string,
) (map[string]entities.ConfigFile, []entities.Declaration, error) {
	files := make(map[string]entities.ConfigFile)
	var decls []entities.Declaration

	for path, walkErr := range it.declarations.ConfigFiles(root, excludeDirs) {
		if walkErr != nil {
			return nil, nil, walkErr
		}
		file, loadErr := it.declarations.Load(path)
		if loadErr != nil {
			logger.Warnf("Skipping %s: %v", path, loadErr)
			continue
		}
		logger.Debugf("%s: %d declarations", path, len(file.Declarations))
		files[path] = file
		decls = append(decls, file.Declarations...)
	}
	return files, decls, nil
}

// planAll plans every declaration with at most limit lookups in flight and
// returns the bumps in declaration order.
func planAll(
	ctx context.Context,
	planner *Planner,
	decls []entities.Declaration,
	limit int,
) ([]entities.Bump, error) {
	planned := make([]*entities.Bump, len(decls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, decl := range decls {
		group.Go(func() error {
			if bump, ok := planner.Plan(groupCtx, decl); ok {
				planned[i] = &bump
			}
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("planning interrupted: %w", err)
	}

	var bumps []entities.Bump
	for _, bump := range planned {
		if bump != nil {
			bumps = append(bumps, *bump)
		}
	}
	return bumps, nil
}

func (it *BumpCommand) patch(
	files map[string]entities.ConfigFile,
	bumps []entities.Bump,
	root string,
	dryRun bool,
) error {
	paths, grouped := entities.GroupBumpsByFile(bumps)
	for _, path := range paths {
		fileBumps := grouped[path]
		for _, b := range fileBumps {
			logger.Infof(
				"%s: %s -> %s (%s, %s:%d)",
				b.Name, b.OldVersion, b.NewVersion, b.Kind(), entities.RelativePath(root, b.FilePath), b.Line,
			)
			logger.Debugf("  %s\n  %s", b.OldURL, b.NewURL)
		}

		if dryRun {
			continue
		}

		content := entities.ApplyBumps(files[path].Content, fileBumps)
		if content == files[path].Content {
			continue
		}
		if err := it.declarations.Save(path, content); err != nil {
			return err
		}
	}
	return nil
}
