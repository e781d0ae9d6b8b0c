package cmake

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/internal/domain/repositories"
)

const (
	listsFileName = "CMakeLists.txt"
	moduleExt     = ".cmake"
	gitDir        = ".git"
)

// CMakeDeclarationRepository implements repositories.DeclarationRepository
// over CMakeLists.txt and *.cmake files on the local filesystem.
type CMakeDeclarationRepository struct{}

// NewCMakeDeclarationRepository creates a new CMake declaration repository.
func NewCMakeDeclarationRepository() repositories.DeclarationRepository {
	return &CMakeDeclarationRepository{}
}

// IsConfigFile reports whether name follows the CMake file naming convention.
func IsConfigFile(name string) bool {
	return name == listsFileName || strings.EqualFold(filepath.Ext(name), moduleExt)
}

func (r *CMakeDeclarationRepository) ConfigFiles(
	root string,
	excludeDirs []string,
) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				// unreadable subtrees are skipped, not fatal
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && (d.Name() == gitDir || slices.Contains(excludeDirs, d.Name())) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !IsConfigFile(d.Name()) {
				return nil
			}
			if !yield(path, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if walkErr != nil {
			yield("", fmt.Errorf("failed to walk %q: %w", root, walkErr))
		}
	}
}

func (r *CMakeDeclarationRepository) Load(path string) (entities.ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.ConfigFile{}, fmt.Errorf("failed to read %q: %w", path, err)
	}

	content := string(data)
	return entities.ConfigFile{
		Path:         path,
		Content:      content,
		Declarations: ExtractDeclarations(content, path),
	}, nil
}

func (r *CMakeDeclarationRepository) Save(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if writeErr := os.WriteFile(path, []byte(content), info.Mode().Perm()); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return nil
}
