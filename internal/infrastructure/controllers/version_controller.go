package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// Version is stamped at build time with -ldflags "-X ...controllers.Version=<tag>".
var Version = "dev" //nolint:gochecknoglobals // set by the linker

// VersionController handles the "version" subcommand.
type VersionController struct{}

// NewVersionController creates a new VersionController.
func NewVersionController() *VersionController {
	return &VersionController{}
}

// GetBind returns the Cobra command metadata for the version controller.
func (it *VersionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "version",
		Short: "Print the fetchbump version",
		Long:  "Print the fetchbump version.",
	}
}

// Execute prints the version to the command output.
func (it *VersionController) Execute(cmd *cobra.Command, _ []string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fetchbump %s\n", Version)
}
