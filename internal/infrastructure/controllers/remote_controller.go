package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/fetchbump/internal/domain/commands"
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// RemoteController handles the "remote" subcommand.
type RemoteController struct {
	command commands.Remote
}

// NewRemoteController creates a new RemoteController.
func NewRemoteController(command commands.Remote) *RemoteController {
	return &RemoteController{command: command}
}

// GetBind returns the Cobra command metadata for the remote controller.
func (it *RemoteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "remote <repo-url>",
		Short: "Report the available bumps of a remote repository",
		Long: `Shallow-clone the repository into a temporary directory and report
which FetchContent dependencies could be bumped. Nothing is pushed.`,
	}
}

// Execute runs a dry bump pass over a fresh clone of args[0].
func (it *RemoteController) Execute(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		logger.Error("remote expects exactly one repository URL")
		return
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	bumps, err := it.command.Execute(context.Background(), settings, commands.RemoteOptions{
		RepoURL: args[0],
	})
	if err != nil {
		logger.Errorf("Remote check failed: %v", err)
		return
	}
	logger.Infof("%d dependencies can be bumped in %s", len(bumps), args[0])
}
