package repositories

import (
	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	domainRepos "github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// ReleaseFactory is a constructor function that creates a ReleaseRepository from the run settings.
type ReleaseFactory func(settings *entities.Settings) domainRepos.ReleaseRepository

// ReleaseRegistry manages all registered hosting providers able to resolve releases.
// Registration order is the dispatch order.
type ReleaseRegistry struct {
	names     []string
	factories map[string]ReleaseFactory
}

// NewReleaseRegistry creates an empty release registry.
func NewReleaseRegistry() *ReleaseRegistry {
	return &ReleaseRegistry{
		factories: make(map[string]ReleaseFactory),
	}
}

// Register adds a release factory under the given name (e.g. "github").
// Registering a name twice replaces the factory but keeps its position.
func (r *ReleaseRegistry) Register(name string, factory ReleaseFactory) {
	if _, ok := r.factories[name]; !ok {
		r.names = append(r.names, name)
	}
	r.factories[name] = factory
}

// Build returns one configured repository per registered provider, in registration order.
func (r *ReleaseRegistry) Build(settings *entities.Settings) []domainRepos.ReleaseRepository {
	result := make([]domainRepos.ReleaseRepository, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.factories[name](settings))
	}
	return result
}

// Names returns the list of registered provider names.
func (r *ReleaseRegistry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
