package repositories

import (
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	domainRepos "github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const resolverName = "resolver"

type lookupResult struct {
	tag   string
	found bool
}

// ReleaseResolver dispatches a URL to the first provider that recognizes it.
// Answers are remembered per provider project for the lifetime of the
// resolver, and concurrent lookups of the same project share one request.
type ReleaseResolver struct {
	providers []domainRepos.ReleaseRepository
	metrics   *ReleaseMetrics
	group     singleflight.Group

	mu    sync.Mutex
	cache map[string]lookupResult
}

var _ domainRepos.ReleaseRepository = (*ReleaseResolver)(nil)

// NewReleaseResolver creates a resolver over providers, tried in order.
func NewReleaseResolver(
	providers []domainRepos.ReleaseRepository,
	metrics *ReleaseMetrics,
) *ReleaseResolver {
	return &ReleaseResolver{
		providers: providers,
		metrics:   metrics,
		cache:     make(map[string]lookupResult),
	}
}

func (r *ReleaseResolver) Name() string { return resolverName }

func (r *ReleaseResolver) MatchesURL(rawURL string) bool {
	return r.providerFor(rawURL) != nil
}

func (r *ReleaseResolver) Project(rawURL string) (string, bool) {
	provider := r.providerFor(rawURL)
	if provider == nil {
		return "", false
	}
	project, ok := provider.Project(rawURL)
	if !ok {
		return "", false
	}
	return provider.Name() + ":" + project, true
}

// ResolveLatest returns the newest release for rawURL. Hosts nobody
// recognizes and URLs of an unknown shape give no result.
func (r *ReleaseResolver) ResolveLatest(ctx context.Context, rawURL string) (string, bool) {
	provider := r.providerFor(rawURL)
	if provider == nil {
		logger.Debugf("No provider for %s", rawURL)
		r.metrics.observeUnsupported(unknownProvider)
		return "", false
	}

	project, ok := provider.Project(rawURL)
	if !ok {
		logger.Debugf("[%s] Unrecognized archive URL %s", provider.Name(), rawURL)
		r.metrics.observeUnsupported(provider.Name())
		return "", false
	}

	key := provider.Name() + ":" + project
	if cached, hit := r.cached(key); hit {
		return cached.tag, cached.found
	}

	value, _, _ := r.group.Do(key, func() (any, error) {
		if cached, hit := r.cached(key); hit {
			return cached, nil
		}

		start := time.Now()
		tag, found := provider.ResolveLatest(ctx, rawURL)
		outcome := OutcomeNone
		if found {
			outcome = OutcomeFound
		}
		r.metrics.observeLookup(provider.Name(), outcome, time.Since(start))

		result := lookupResult{tag: tag, found: found}
		r.mu.Lock()
		r.cache[key] = result
		r.mu.Unlock()
		return result, nil
	})

	result, _ := value.(lookupResult)
	return result.tag, result.found
}

func (r *ReleaseResolver) cached(key string) (lookupResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.cache[key]
	return result, ok
}

func (r *ReleaseResolver) providerFor(rawURL string) domainRepos.ReleaseRepository {
	for _, provider := range r.providers {
		if provider.MatchesURL(rawURL) {
			return provider
		}
	}
	return nil
}
