package repositories

import "context"

// ReleaseRepository abstracts an upstream hosting provider (GitHub, GitLab)
// that can tell which release of a project is the newest.
type ReleaseRepository interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// MatchesURL returns true if the archive URL is hosted by this provider.
	MatchesURL(rawURL string) bool

	// Project returns the provider-side project path ("owner/repo") that the
	// archive URL belongs to, or false if the URL does not have a known shape.
	Project(rawURL string) (string, bool)

	// ResolveLatest returns the newest release tag for the project behind
	// rawURL. Any failure (unknown shape, non-success response, timeout)
	// yields false; it is never fatal.
	ResolveLatest(ctx context.Context, rawURL string) (string, bool)
}
