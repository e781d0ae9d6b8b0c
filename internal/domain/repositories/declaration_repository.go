package repositories

import (
	"iter"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

// DeclarationRepository gives access to the build files of a working copy.
type DeclarationRepository interface {
	// ConfigFiles yields every build file under root in lexical path order,
	// skipping directories named in excludeDirs. The sequence walks the tree
	// again each time it is ranged over.
	ConfigFiles(root string, excludeDirs []string) iter.Seq2[string, error]

	// Load reads a build file and extracts its dependency declarations.
	Load(path string) (entities.ConfigFile, error)

	// Save writes content back to path, keeping the file mode.
	Save(path, content string) error
}
