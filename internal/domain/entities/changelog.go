package entities

import (
	"fmt"

	changelogEntities "github.com/rios0rios0/gitforge/pkg/changelog/domain/entities"
)

const ChangelogFileName = "CHANGELOG.md"

// ChangelogEntries renders one Keep-a-Changelog bullet per bump. A dependency
// bumped in several files gets a single bullet, for its highest version.
func ChangelogEntries(bumps []Bump) []string {
	entries := make([]string, 0, len(bumps))
	for _, b := range bumps {
		entries = append(entries, fmt.Sprintf(
			"- bumped `%s` from `%s` to `%s`", b.Name, b.OldVersion, b.NewVersion,
		))
	}
	return changelogEntities.DeduplicateEntries(entries)
}

// AddChangelogEntries places entries under "### Changed" of the
// "## [Unreleased]" release, creating the subsection when needed. The second
// result is false, and content is returned as is, when there is no
// Unreleased release to add to.
func AddChangelogEntries(content string, entries []string) (string, bool) {
	updated := changelogEntities.InsertChangelogEntry(content, entries)
	return updated, updated != content
}
