//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
	"github.com/rios0rios0/fetchbump/test/domain/entitybuilders"
)

func TestNewBump(t *testing.T) {
	t.Parallel()

	t.Run("should replace the version token in a GitHub archive URL", func(t *testing.T) {
		t.Parallel()

		// given
		decl := entitybuilders.NewDeclarationBuilder().BuildDeclaration()

		// when
		bump, err := entities.NewBump(decl, "1.3.1")

		// then
		require.NoError(t, err)
		assert.Equal(t, "zlib", bump.Name)
		assert.Equal(t, "v1.2.11", bump.OldVersion)
		assert.Equal(t, "v1.3.1", bump.NewVersion)
		assert.Equal(t, "1.3.1", bump.LatestTag)
		assert.Equal(t, "https://github.com/madler/zlib/archive/refs/tags/v1.3.1.tar.gz", bump.NewURL)
	})

	t.Run("should replace every clean occurrence in a GitLab archive URL", func(t *testing.T) {
		t.Parallel()

		// given
		decl := entitybuilders.NewDeclarationBuilder().
			WithName("proj").
			WithURL("https://gitlab.com/org/proj/-/archive/2.0.0/proj-2.0.0.tar.gz", "2.0.0").
			BuildDeclaration()

		// when
		bump, err := entities.NewBump(decl, "2.1.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", bump.NewVersion)
		assert.Equal(t, "https://gitlab.com/org/proj/-/archive/2.1.0/proj-2.1.0.tar.gz", bump.NewURL)
	})

	t.Run("should not add a v the URL does not use", func(t *testing.T) {
		t.Parallel()

		// given
		decl := entitybuilders.NewDeclarationBuilder().
			WithName("fmt").
			WithURL("https://github.com/fmtlib/fmt/archive/10.1.0.tar.gz", "10.1.0").
			BuildDeclaration()

		// when
		bump, err := entities.NewBump(decl, "v10.2.1")

		// then
		require.NoError(t, err)
		assert.Equal(t, "10.2.1", bump.NewVersion)
		assert.Equal(t, "https://github.com/fmtlib/fmt/archive/10.2.1.tar.gz", bump.NewURL)
	})

	t.Run("should reject a URL without a clean occurrence", func(t *testing.T) {
		t.Parallel()

		// given
		decl := entitybuilders.NewDeclarationBuilder().
			WithURL("https://github.com/o/r/archive/1.2.10.tar.gz", "1.2.1").
			BuildDeclaration()

		// when
		_, err := entities.NewBump(decl, "1.3.0")

		// then
		require.ErrorIs(t, err, entities.ErrUnsafeReplacement)
	})
}

func TestReplaceVersionInURL(t *testing.T) {
	t.Parallel()

	t.Run("should leave the host and port alone", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://mirror.example.com:8080/pkg/8080/pkg-1.0.tar.gz"

		// when
		result, err := entities.ReplaceVersionInURL(rawURL, "1.0", "1.1")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://mirror.example.com:8080/pkg/8080/pkg-1.1.tar.gz", result)
	})

	t.Run("should not touch a longer version containing the token", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://example.com/v1.2.1/extra-11.2.1-1.2.10.tar.gz"

		// when
		result, err := entities.ReplaceVersionInURL(rawURL, "v1.2.1", "v1.3.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/v1.3.0/extra-11.2.1-1.2.10.tar.gz", result)
	})

	t.Run("should report a replacement that changes nothing", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://example.com/pkg-1.0.tar.gz"

		// when
		_, err := entities.ReplaceVersionInURL(rawURL, "1.0", "v1.0")

		// then
		require.ErrorIs(t, err, entities.ErrNoChange)
	})

	t.Run("should reject a token that only appears in the host", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://10.1.2.3/archive.tar.gz"

		// when
		_, err := entities.ReplaceVersionInURL(rawURL, "1.2", "1.3")

		// then
		require.ErrorIs(t, err, entities.ErrUnsafeReplacement)
	})

	t.Run("should only rewrite the tag of a known archive layout", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://github.com/acme/lib-1.2/archive/refs/tags/1.2.tar.gz"

		// when
		result, err := entities.ReplaceVersionInURL(rawURL, "1.2", "1.3")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/acme/lib-1.2/archive/refs/tags/1.3.tar.gz", result)
	})

	t.Run("should reject a token that only appears before the tag", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://github.com/lua/lua5.4/archive/refs/tags/v5.4.6.tar.gz"

		// when
		_, err := entities.ReplaceVersionInURL(rawURL, "5.4", "5.5")

		// then
		require.ErrorIs(t, err, entities.ErrUnsafeReplacement)
	})

	t.Run("should accept a token after a dot that follows a word", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://example.com/dl/pkg.1.2.tar.gz"

		// when
		result, err := entities.ReplaceVersionInURL(rawURL, "1.2", "1.3")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/dl/pkg.1.3.tar.gz", result)
	})
}

func TestReleaseOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "should start after refs/tags", path: "/lua/lua5.4/archive/refs/tags/v5.4.6.tar.gz", expected: "v5.4.6.tar.gz"},
		{name: "should start after a short archive path", path: "/fmtlib/fmt/archive/10.1.0.tar.gz", expected: "10.1.0.tar.gz"},
		{name: "should start after a GitLab archive path", path: "/org/proj/-/archive/2.0.0/proj-2.0.0.tar.gz", expected: "2.0.0/proj-2.0.0.tar.gz"},
		{name: "should start after a release download path", path: "/o/r/releases/download/v1.0/r-1.0.tar.gz", expected: "v1.0/r-1.0.tar.gz"},
		{name: "should keep the whole path of an unknown layout", path: "/pkg/pkg-1.0.tar.gz", expected: "/pkg/pkg-1.0.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			path := tt.path

			// when
			offset := entities.ReleaseOffset(path)

			// then
			assert.Equal(t, tt.expected, path[offset:])
		})
	}
}

func TestIsCleanVersionToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		s          string
		start, end int
		expected   bool
	}{
		{name: "should accept a token between separators", s: "/pkg-1.2.tar.gz", start: 5, end: 8, expected: true},
		{name: "should accept a token after a word and a dot", s: "pkg.1.2.tar.gz", start: 4, end: 7, expected: true},
		{name: "should reject a token after a digit and a dot", s: "11.2.1", start: 3, end: 6, expected: false},
		{name: "should reject a token after a digit", s: "11.2.1", start: 1, end: 6, expected: false},
		{name: "should reject a token before more digits", s: "1.2.10", start: 0, end: 5, expected: false},
		{name: "should reject a token before a dot and a digit", s: "1.2.1.4", start: 0, end: 5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			s := tt.s

			// when
			clean := entities.IsCleanVersionToken(s, tt.start, tt.end)

			// then
			assert.Equal(t, tt.expected, clean)
		})
	}
}

func TestBumpKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from     string
		to       string
		expected string
	}{
		{name: "should classify a major bump", from: "v1.2.11", to: "v2.0.0", expected: entities.BumpMajor},
		{name: "should classify a minor bump", from: "v1.2.11", to: "v1.3.1", expected: entities.BumpMinor},
		{name: "should classify a patch bump", from: "1.2.11", to: "1.2.13", expected: entities.BumpPatch},
		{name: "should classify anything else as other", from: "1.2.3.4", to: "1.2.3.5", expected: entities.BumpOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			bump := entities.Bump{OldVersion: tt.from, NewVersion: tt.to}

			// when
			kind := bump.Kind()

			// then
			assert.Equal(t, tt.expected, kind)
		})
	}
}
