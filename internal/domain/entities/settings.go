package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultConcurrency  = 4
	defaultBranchPrefix = "bump-fetchcontent"
	defaultPRTitle      = "Bump FetchContent dependencies"
	defaultCommitMsg    = "chore: bump FetchContent dependencies"
	defaultAuthorName   = "fetchbump[bot]"
	defaultAuthorEmail  = "fetchbump[bot]@users.noreply.github.com"
)

// Settings is the whole runtime configuration. It is built once by the
// controllers and handed down; nothing below them reads the environment.
type Settings struct {
	GitHub            ProviderSettings    `yaml:"github"`
	GitLab            ProviderSettings    `yaml:"gitlab"`
	Timeout           time.Duration       `yaml:"timeout"`
	Concurrency       int                 `yaml:"concurrency"`
	IgnorePrereleases bool                `yaml:"ignore_prereleases"`
	Ignore            []string            `yaml:"ignore"`       // Dependency names never bumped
	ExcludeDirs       []string            `yaml:"exclude_dirs"` // Directory names skipped while scanning
	MetricsFile       string              `yaml:"metrics_file"`
	PullRequest       PullRequestSettings `yaml:"pull_request"`
}

// ProviderSettings holds the credentials and endpoint of one hosting provider.
type ProviderSettings struct {
	Token   string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url"` // API endpoint override, empty for the public service
}

// PullRequestSettings controls the branch, commit and pull request created
// when publishing bumps.
type PullRequestSettings struct {
	BranchPrefix  string `yaml:"branch_prefix"`
	Title         string `yaml:"title"`
	CommitMessage string `yaml:"commit_message"`
	AuthorName    string `yaml:"author_name"`
	AuthorEmail   string `yaml:"author_email"`

	UpdateChangelog bool `yaml:"update_changelog"` // Adds the bumps to CHANGELOG.md when it has an Unreleased section
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Timeout:           defaultTimeout,
		Concurrency:       defaultConcurrency,
		IgnorePrereleases: true,
		PullRequest: PullRequestSettings{
			BranchPrefix:  defaultBranchPrefix,
			Title:         defaultPRTitle,
			CommitMessage: defaultCommitMsg,
			AuthorName:    defaultAuthorName,
			AuthorEmail:   defaultAuthorEmail,

			UpdateChangelog: true,
		},
	}
}

// NewSettings loads the settings from path, layered over the defaults.
// An empty path yields the defaults. Tokens are resolved and, when still
// empty, taken from the usual provider environment variables.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	if settings.GitHub.Token == "" {
		settings.GitHub.Token = firstEnv("GITHUB_TOKEN", "GH_TOKEN")
	}
	settings.GitLab.Token = resolveToken(settings.GitLab.Token)
	if settings.GitLab.Token == "" {
		settings.GitLab.Token = firstEnv("GITLAB_TOKEN", "GL_TOKEN")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks for values the engine cannot work with.
func (s *Settings) Validate() error {
	if s.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if s.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if strings.TrimSpace(s.PullRequest.BranchPrefix) == "" {
		return errors.New("pull_request.branch_prefix must not be empty")
	}
	return nil
}

// IsIgnored reports whether the dependency must never be bumped.
func (s *Settings) IsIgnored(name string) bool {
	return slices.Contains(s.Ignore, name)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".fetchbump.yaml",
		".fetchbump.yml",
		"fetchbump.yaml",
		"fetchbump.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}
