package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// BumpController handles bumping a local source tree, both as the root
// command and as the "bump" subcommand.
type BumpController struct {
	bump    commands.Bump
	publish commands.Publish
}

// NewBumpController creates a new BumpController.
func NewBumpController(bump commands.Bump, publish commands.Publish) *BumpController {
	return &BumpController{bump: bump, publish: publish}
}

// GetBind returns the Cobra command metadata for the bump controller.
func (it *BumpController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "bump [path]",
		Short: "Bump FetchContent dependencies in a local source tree",
		Long: `Scan CMakeLists.txt and *.cmake files for FetchContent_Declare blocks,
look up the newest GitHub or GitLab release of every dependency and rewrite
the archive URLs in place.

With --open-pr the changes are committed on a new branch, pushed and
proposed as a pull request.`,
	}
}

// Execute runs the bump over args[0], or the current directory.
func (it *BumpController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	openPR, _ := cmd.Flags().GetBool("open-pr")

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	bumps, err := it.bump.Execute(ctx, settings, commands.BumpOptions{
		Root:   root,
		DryRun: dryRun,
	})
	if err != nil {
		logger.Errorf("Bump failed: %v", err)
		return
	}

	if !openPR || len(bumps) == 0 {
		return
	}
	if dryRun {
		logger.Info("Not opening a pull request in dry-run mode")
		return
	}

	if _, publishErr := it.publish.Execute(ctx, settings, commands.PublishOptions{
		Root:  root,
		Bumps: bumps,
	}); publishErr != nil {
		logger.Errorf("Publishing failed: %v", publishErr)
	}
}

// AddFlags adds the bump-specific flags to the given Cobra command.
func (it *BumpController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("open-pr", false,
		"Commit the bumps on a new branch, push it and open a pull request (GitHub only)")
}
