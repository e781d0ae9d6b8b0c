package entities

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const maxNumericGroups = 4

// Version is a version string together with its numeric interpretation.
// A Version that failed to parse is opaque: it only compares by identity.
type Version struct {
	raw    string
	parsed *semver.Version
	// segments is the numeric core, also set for cores semver cannot hold
	// such as "1.2.3.4".
	segments []uint64
	// qualified is set when a trailing qualifier had to be dropped to parse.
	qualified bool
}

// ParseVersion strips a single leading "v" and parses the rest as a semantic
// version. When that fails, the qualifier after the first "-" is dropped and
// parsing is retried, first as a semantic version and then as up to four
// dot-separated numeric groups. If nothing parses the version is opaque.
func ParseVersion(raw string) Version {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")

	if parsed, err := semver.NewVersion(trimmed); err == nil {
		return newSemanticVersion(raw, parsed, false)
	}

	base, _, qualified := strings.Cut(trimmed, "-")
	if base == "" {
		return Version{raw: raw}
	}
	if qualified {
		if parsed, err := semver.NewVersion(base); err == nil {
			return newSemanticVersion(raw, parsed, true)
		}
	}
	if segments, ok := numericSegments(base); ok {
		return Version{raw: raw, segments: segments, qualified: qualified}
	}

	return Version{raw: raw}
}

func newSemanticVersion(raw string, parsed *semver.Version, qualified bool) Version {
	return Version{
		raw:       raw,
		parsed:    parsed,
		segments:  []uint64{parsed.Major(), parsed.Minor(), parsed.Patch()},
		qualified: qualified,
	}
}

func numericSegments(core string) ([]uint64, bool) {
	parts := strings.Split(core, ".")
	if len(parts) > maxNumericGroups {
		return nil, false
	}
	segments := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, false
		}
		segments = append(segments, n)
	}
	return segments, true
}

// Raw returns the string the version was parsed from.
func (v Version) Raw() string { return v.raw }

// Valid reports whether the version has a numeric interpretation.
func (v Version) Valid() bool { return len(v.segments) > 0 }

// IsPrerelease reports whether the version carries a pre-release component.
// A qualifier dropped during parsing counts as one.
func (v Version) IsPrerelease() bool {
	return v.qualified || (v.parsed != nil && v.parsed.Prerelease() != "")
}

// Compare returns -1, 0 or +1. Both versions must be valid.
// Missing numeric components count as zero, and at equal numbers a
// pre-release orders before the release.
func (v Version) Compare(other Version) int {
	if v.parsed != nil && other.parsed != nil && !v.qualified && !other.qualified {
		return v.parsed.Compare(other.parsed)
	}
	if c := compareSegments(v.segments, other.segments); c != 0 {
		return c
	}
	switch pre, otherPre := v.IsPrerelease(), other.IsPrerelease(); {
	case pre && !otherPre:
		return -1
	case !pre && otherPre:
		return 1
	}
	return 0
}

func compareSegments(a, b []uint64) int {
	for i := range max(len(a), len(b)) {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// IsNewerVersion reports whether candidate should replace current.
// When either side is opaque any difference counts as newer, leaving the
// judgement to whoever reviews the change.
func IsNewerVersion(current, candidate string) bool {
	cur := ParseVersion(current)
	next := ParseVersion(candidate)
	if cur.Valid() && next.Valid() {
		return next.Compare(cur) > 0
	}
	return candidate != current
}

// NewestVersion picks the highest version out of names. Opaque names are left
// out. With skipPrereleases set, pre-release names are left out too. The
// chosen name is returned exactly as given.
func NewestVersion(names []string, skipPrereleases bool) (string, bool) {
	var newest Version
	for _, name := range names {
		if name == "" {
			continue
		}
		candidate := ParseVersion(name)
		if !candidate.Valid() {
			continue
		}
		if skipPrereleases && candidate.IsPrerelease() {
			continue
		}
		if !newest.Valid() || candidate.Compare(newest) > 0 {
			newest = candidate
		}
	}

	if !newest.Valid() {
		return "", false
	}
	return newest.raw, true
}
