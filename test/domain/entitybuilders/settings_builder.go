//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// SettingsBuilder starts from the default settings and overrides what the
// test needs.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a builder holding the default settings.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.DefaultSettings(),
	}
}

// WithGitHubToken sets the GitHub token.
func (b *SettingsBuilder) WithGitHubToken(token string) *SettingsBuilder {
	b.settings.GitHub.Token = token
	return b
}

// WithGitLabToken sets the GitLab token.
func (b *SettingsBuilder) WithGitLabToken(token string) *SettingsBuilder {
	b.settings.GitLab.Token = token
	return b
}

// WithIgnore sets the dependency names never bumped.
func (b *SettingsBuilder) WithIgnore(names ...string) *SettingsBuilder {
	b.settings.Ignore = names
	return b
}

// WithConcurrency sets the number of lookups in flight.
func (b *SettingsBuilder) WithConcurrency(n int) *SettingsBuilder {
	b.settings.Concurrency = n
	return b
}

// WithMetricsFile sets the metrics textfile path.
func (b *SettingsBuilder) WithMetricsFile(path string) *SettingsBuilder {
	b.settings.MetricsFile = path
	return b
}

// WithChangelog toggles the CHANGELOG.md update when publishing.
func (b *SettingsBuilder) WithChangelog(enabled bool) *SettingsBuilder {
	b.settings.PullRequest.UpdateChangelog = enabled
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings returns a fresh copy of the settings.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	settings.Ignore = append([]string(nil), b.settings.Ignore...)
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
