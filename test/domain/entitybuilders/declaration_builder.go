//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

const (
	defaultName     = "zlib"
	defaultVersion  = "v1.2.11"
	defaultURL      = "https://github.com/madler/zlib/archive/refs/tags/v1.2.11.tar.gz"
	defaultFilePath = "/src/CMakeLists.txt"
)

// DeclarationBuilder helps create test declarations with a fluent interface.
type DeclarationBuilder struct {
	*testkit.BaseBuilder
	name     string
	version  string
	url      string
	hash     string
	filePath string
	line     int
}

// NewDeclarationBuilder creates a builder defaulting to the zlib 1.2.11 declaration.
func NewDeclarationBuilder() *DeclarationBuilder {
	return &DeclarationBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        defaultName,
		version:     defaultVersion,
		url:         defaultURL,
		filePath:    defaultFilePath,
		line:        1,
	}
}

// WithName sets the dependency name.
func (b *DeclarationBuilder) WithName(name string) *DeclarationBuilder {
	b.name = name
	return b
}

// WithURL sets the archive URL together with the version found in it.
func (b *DeclarationBuilder) WithURL(url, version string) *DeclarationBuilder {
	b.url = url
	b.version = version
	return b
}

// WithHash sets the URL_HASH argument.
func (b *DeclarationBuilder) WithHash(hash string) *DeclarationBuilder {
	b.hash = hash
	return b
}

// WithFilePath sets the file the declaration lives in.
func (b *DeclarationBuilder) WithFilePath(path string) *DeclarationBuilder {
	b.filePath = path
	return b
}

// WithLine sets the line number.
func (b *DeclarationBuilder) WithLine(line int) *DeclarationBuilder {
	b.line = line
	return b
}

// Build creates the declaration (satisfies testkit.Builder interface).
func (b *DeclarationBuilder) Build() interface{} {
	return b.BuildDeclaration()
}

// BuildDeclaration creates the declaration with a concrete return type.
func (b *DeclarationBuilder) BuildDeclaration() entities.Declaration {
	return entities.Declaration{
		Name:     b.name,
		Version:  b.version,
		URL:      b.url,
		Hash:     b.hash,
		FilePath: b.filePath,
		Line:     b.line,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DeclarationBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = defaultName
	b.version = defaultVersion
	b.url = defaultURL
	b.hash = ""
	b.filePath = defaultFilePath
	b.line = 1
	return b
}

// Clone creates a deep copy of the DeclarationBuilder.
func (b *DeclarationBuilder) Clone() testkit.Builder {
	return &DeclarationBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		version:     b.version,
		url:         b.url,
		hash:        b.hash,
		filePath:    b.filePath,
		line:        b.line,
	}
}
