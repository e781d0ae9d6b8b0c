//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

// SpyDeclarationRepository implements repositories.DeclarationRepository over
// in-memory files and records what gets saved.
type SpyDeclarationRepository struct {
	// --- ConfigFiles / Load ---
	Files   map[string]entities.ConfigFile
	WalkErr error
	LoadErr map[string]error

	// --- Save ---
	SaveErr error
	Saved   map[string]string
}

var _ repositories.DeclarationRepository = (*SpyDeclarationRepository)(nil)

func (s *SpyDeclarationRepository) ConfigFiles(_ string, _ []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if s.WalkErr != nil {
			yield("", s.WalkErr)
			return
		}
		paths := make([]string, 0, len(s.Files))
		for path := range s.Files {
			paths = append(paths, path)
		}
		slices.Sort(paths)
		for _, path := range paths {
			if !yield(path, nil) {
				return
			}
		}
	}
}

func (s *SpyDeclarationRepository) Load(path string) (entities.ConfigFile, error) {
	if err, ok := s.LoadErr[path]; ok {
		return entities.ConfigFile{}, err
	}
	file, ok := s.Files[path]
	if !ok {
		return entities.ConfigFile{}, fmt.Errorf("file not found: %s", path)
	}
	return file, nil
}

func (s *SpyDeclarationRepository) Save(path, content string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Saved == nil {
		s.Saved = make(map[string]string)
	}
	s.Saved[path] = content
	return nil
}
