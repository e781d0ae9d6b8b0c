package entities

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	BumpMajor = "major"
	BumpMinor = "minor"
	BumpPatch = "patch"
	BumpOther = "other"
)

var (
	// ErrUnsafeReplacement means the version token has no clean occurrence in
	// the URL path, so rewriting it could corrupt the URL.
	ErrUnsafeReplacement = errors.New("version token is not a clean segment of the URL path")

	// ErrNoChange means the replacement would leave the URL untouched.
	ErrNoChange = errors.New("replacement leaves the URL unchanged")
)

// Bump is a ready-to-apply change of one declaration to a newer release.
type Bump struct {
	Name       string
	OldVersion string
	NewVersion string // Token written into the URL, keeps the URL's "v" convention
	LatestTag  string // Tag name as reported by the provider
	OldURL     string
	NewURL     string
	FilePath   string
	Line       int
}

// NewBump derives the Bump that moves decl to latestTag.
func NewBump(decl Declaration, latestTag string) (Bump, error) {
	newToken := versionPrefix(decl.Version) + strings.TrimPrefix(latestTag, "v")

	newURL, err := ReplaceVersionInURL(decl.URL, decl.Version, newToken)
	if err != nil {
		return Bump{}, fmt.Errorf("cannot bump %s in %q: %w", decl.Name, decl.URL, err)
	}

	return Bump{
		Name:       decl.Name,
		OldVersion: decl.Version,
		NewVersion: newToken,
		LatestTag:  latestTag,
		OldURL:     decl.URL,
		NewURL:     newURL,
		FilePath:   decl.FilePath,
		Line:       decl.Line,
	}, nil
}

// Kind classifies the bump by the first semantic component that changed.
func (b Bump) Kind() string {
	from := "v" + strings.TrimPrefix(b.OldVersion, "v")
	to := "v" + strings.TrimPrefix(b.NewVersion, "v")
	if !semver.IsValid(from) || !semver.IsValid(to) {
		return BumpOther
	}
	if semver.Major(from) != semver.Major(to) {
		return BumpMajor
	}
	if semver.MajorMinor(from) != semver.MajorMinor(to) {
		return BumpMinor
	}
	return BumpPatch
}

// archiveMarkers introduce the release-specific tail of the archive layouts
// the providers serve. Longer markers come first.
var archiveMarkers = []string{ //nolint:gochecknoglobals // constant-like lookup table
	"/archive/refs/tags/",
	"/releases/download/",
	"/-/archive/",
	"/-/releases/",
	"/archive/",
}

// ReleaseOffset returns the index in path where its release-specific part
// starts, e.g. the tag after "/archive/refs/tags/". It is 0 for layouts
// without a known marker, meaning the whole path.
func ReleaseOffset(path string) int {
	for _, marker := range archiveMarkers {
		if idx := strings.Index(path, marker); idx >= 0 {
			return idx + len(marker)
		}
	}
	return 0
}

// ReplaceVersionInURL swaps every clean occurrence of oldVersion inside the
// release part of the path of rawURL for newVersion. Scheme, host, port and
// the owner/repository segments of known layouts are never touched.
// The leading "v" is not part of the match, so "v1.2" and "1.2" both hit
// ".../v1.2.tar.gz" and the URL keeps its own prefix.
func ReplaceVersionInURL(rawURL, oldVersion, newVersion string) (string, error) {
	oldCore := strings.TrimPrefix(oldVersion, "v")
	newCore := strings.TrimPrefix(newVersion, "v")
	if oldCore == "" || newCore == "" {
		return "", ErrUnsafeReplacement
	}

	head, path := SplitURLPath(rawURL)
	offset := ReleaseOffset(path)

	var sb strings.Builder
	sb.WriteString(path[:offset])
	replaced := 0
	for i := offset; i < len(path); {
		if strings.HasPrefix(path[i:], oldCore) && IsCleanVersionToken(path, i, i+len(oldCore)) {
			sb.WriteString(newCore)
			i += len(oldCore)
			replaced++
			continue
		}
		sb.WriteByte(path[i])
		i++
	}

	if replaced == 0 {
		return "", ErrUnsafeReplacement
	}

	newURL := head + sb.String()
	if newURL == rawURL {
		return "", ErrNoChange
	}
	return newURL, nil
}

// SplitURLPath splits rawURL into scheme plus authority, and the rest
// (path, query and fragment), without re-encoding anything.
func SplitURLPath(rawURL string) (string, string) {
	offset := 0
	if idx := strings.Index(rawURL, "://"); idx >= 0 {
		offset = idx + len("://")
	}
	slash := strings.IndexByte(rawURL[offset:], '/')
	if slash < 0 {
		return rawURL, ""
	}
	return rawURL[:offset+slash], rawURL[offset+slash:]
}

// IsCleanVersionToken reports whether the numeric token s[start:end] is not
// glued to surrounding version digits, e.g. "1.2.1" inside "1.2.10" or
// "11.2.1". A dot only glues when a digit sits on its other side, so
// "pkg.1.2" holds the clean token "1.2".
func IsCleanVersionToken(s string, start, end int) bool {
	if start > 0 {
		prev := s[start-1]
		if isDigit(prev) {
			return false
		}
		if prev == '.' && start > 1 && isDigit(s[start-2]) {
			return false
		}
	}
	if end < len(s) {
		next := s[end]
		if isDigit(next) {
			return false
		}
		if next == '.' && end+1 < len(s) && isDigit(s[end+1]) {
			return false
		}
	}
	return true
}

func versionPrefix(version string) string {
	if strings.HasPrefix(version, "v") {
		return "v"
	}
	return ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
