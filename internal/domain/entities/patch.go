package entities

import "strings"

// ApplyBumps replaces every literal occurrence of each bump's old URL with its
// new URL, in order. Nothing else in content changes, and content that was
// already bumped comes back as is.
func ApplyBumps(content string, bumps []Bump) string {
	for _, b := range bumps {
		if b.OldURL == "" || b.OldURL == b.NewURL {
			continue
		}
		content = strings.ReplaceAll(content, b.OldURL, b.NewURL)
	}
	return content
}

// GroupBumpsByFile groups bumps by file path, keeping the order in which each
// file first appears as well as the order of bumps inside a file.
func GroupBumpsByFile(bumps []Bump) ([]string, map[string][]Bump) {
	var paths []string
	grouped := make(map[string][]Bump)
	for _, b := range bumps {
		if _, ok := grouped[b.FilePath]; !ok {
			paths = append(paths, b.FilePath)
		}
		grouped[b.FilePath] = append(grouped[b.FilePath], b)
	}
	return paths, grouped
}
