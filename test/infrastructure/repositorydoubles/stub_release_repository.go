//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// StubReleaseRepository implements repositories.ReleaseRepository with canned
// answers keyed by URL. It is safe for concurrent use.
type StubReleaseRepository struct {
	ProviderName string
	URLPrefix    string            // MatchesURL is true for URLs with this prefix
	Projects     map[string]string // URL -> project, defaults to the URL itself
	Latest       map[string]string // URL -> newest tag, absent means no result
	Delay        time.Duration     // Slows ResolveLatest down to exercise concurrency

	mu       sync.Mutex
	resolved []string
}

var _ repositories.ReleaseRepository = (*StubReleaseRepository)(nil)

func (s *StubReleaseRepository) Name() string { return s.ProviderName }

func (s *StubReleaseRepository) MatchesURL(rawURL string) bool {
	return strings.HasPrefix(rawURL, s.URLPrefix)
}

func (s *StubReleaseRepository) Project(rawURL string) (string, bool) {
	if s.Projects != nil {
		project, ok := s.Projects[rawURL]
		return project, ok
	}
	return rawURL, true
}

func (s *StubReleaseRepository) ResolveLatest(ctx context.Context, rawURL string) (string, bool) {
	s.mu.Lock()
	s.resolved = append(s.resolved, rawURL)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", false
		}
	}

	tag, ok := s.Latest[rawURL]
	return tag, ok
}

// ResolvedURLs returns the URLs ResolveLatest was called with, in call order.
func (s *StubReleaseRepository) ResolvedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resolved...)
}
