package entities

import (
	"fmt"
	"path/filepath"
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

// PullRequestDescription renders the body of the pull request that carries
// bumps. File paths are shown relative to root.
func PullRequestDescription(bumps []Bump, root string) string {
	var sb strings.Builder
	sb.WriteString("Automated bump of FetchContent dependencies by fetchbump.\n\n")
	sb.WriteString("### Dependencies bumped:\n")
	for _, b := range bumps {
		sb.WriteString(fmt.Sprintf(
			"- **%s**: `%s` → `%s` (%s, in `%s`)\n",
			b.Name, b.OldVersion, b.NewVersion, b.Kind(), RelativePath(root, b.FilePath),
		))
	}
	return sb.String()
}

// RelativePath returns path relative to root, or path itself when it cannot be
// expressed that way.
func RelativePath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
