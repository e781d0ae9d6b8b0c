package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// loadSettings builds the run settings from the config file (explicit or
// auto-detected) and the global flags, which win over the file.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file, using defaults: %v", err)
		}
		cfgPath = found
	}
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
	}

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.GitHub.Token = token
	}
	if token, _ := cmd.Flags().GetString("gitlab-token"); token != "" {
		settings.GitLab.Token = token
	}
	return settings, nil
}

// AddGlobalFlags adds the flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"GitHub token (overrides config and GITHUB_TOKEN/GH_TOKEN)")
	cmd.PersistentFlags().String("gitlab-token", "",
		"GitLab token (overrides config and GITLAB_TOKEN/GL_TOKEN)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be bumped without modifying files")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}
