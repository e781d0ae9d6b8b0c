package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/fetchbump/internal"
	"github.com/rios0rios0/fetchbump/internal/infrastructure/controllers"
)

func buildRootCommand(bumpController *controllers.BumpController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "fetchbump [path]",
		Short: "Version-bump engine for CMake FetchContent dependencies",
		Long: `Keeps CMake FetchContent dependencies current. Every FetchContent_Declare
block whose URL points at a GitHub or GitLab release archive is checked
against the newest upstream release, and the URL is rewritten in place.

Usage modes:
  fetchbump .                      Bump the current source tree
  fetchbump --dry-run /path/to/src Report the bumps without touching files
  fetchbump --open-pr .            Bump, commit, push and open a pull request
  fetchbump remote <repo-url>      Report the bumps of a remote repository`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			bumpController.Execute(command, args)
			return nil
		},
	}

	controllers.AddGlobalFlags(cmd)
	bumpController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				controller.Execute(command, arguments)
			},
		}

		if bc, ok := controller.(*controllers.BumpController); ok {
			bc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// a missing .env is the normal case
	_ = godotenv.Load()

	appContext, bumpController := injectApp()
	cobraRoot := buildRootCommand(bumpController)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'fetchbump': %s", err)
	}
}
