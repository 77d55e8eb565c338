// Package semver holds the version value type relver resolves and advances.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is the qualifier every development version carries.
const Snapshot = "SNAPSHOT"

// ErrMalformedVersion reports a version string outside the M.m.p[-qualifier] shape.
var ErrMalformedVersion = errors.New("malformed version")

// Version is a semantic version triple with an optional qualifier.
// The zero value is 0.0.0.
type Version struct {
	Major     int
	Minor     int
	Patch     int
	Qualifier string
}

// Parse parses a version of the form "1.2.3" or "1.2.3-SNAPSHOT".
// Exactly three dot-separated non-negative integer components are required;
// everything after the first hyphen is the qualifier.
func Parse(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, fmt.Errorf("parse version: empty input: %w", ErrMalformedVersion)
	}

	core := trimmed
	qualifier := ""
	if idx := strings.Index(trimmed, "-"); idx >= 0 {
		core = trimmed[:idx]
		qualifier = trimmed[idx+1:]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("parse version %q: want 3 components, got %d: %w", raw, len(parts), ErrMalformedVersion)
	}

	var nums [3]int
	for i, part := range parts {
		if !isDigits(part) {
			return Version{}, fmt.Errorf("parse version %q: component %q is not a non-negative integer: %w", raw, part, ErrMalformedVersion)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("parse version %q: component %q: %w", raw, part, ErrMalformedVersion)
		}
		nums[i] = n
	}

	return Version{
		Major:     nums[0],
		Minor:     nums[1],
		Patch:     nums[2],
		Qualifier: qualifier,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String returns the bare triple, e.g. "1.2.3". The qualifier is omitted.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// StringFull returns the triple with its qualifier when one is present.
func (v Version) StringFull() string {
	if v.Qualifier == "" {
		return v.String()
	}
	return v.String() + "-" + v.Qualifier
}

// Development returns the development iteration of this triple, "M.m.p-SNAPSHOT".
func (v Version) Development() string {
	return v.String() + "-" + Snapshot
}

// WithQualifier returns a copy of v carrying the given qualifier.
func (v Version) WithQualifier(q string) Version {
	v.Qualifier = q
	return v
}

// Bump selects which component of a version to increment.
type Bump int

const (
	BumpPatch Bump = iota
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return fmt.Sprintf("bump(%d)", int(b))
	}
}

// Next returns the version after applying the bump. The selected component is
// incremented, every lower-significance component resets to zero and the
// qualifier is dropped.
func (v Version) Next(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare orders versions by their numeric triple. On an equal triple a
// version without qualifier sorts after any qualified one, so 1.2.3-SNAPSHOT
// precedes 1.2.3. Two qualifiers order lexically.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	if v.Qualifier == other.Qualifier {
		return 0
	}
	if v.Qualifier == "" {
		return 1
	}
	if other.Qualifier == "" {
		return -1
	}
	return strings.Compare(v.Qualifier, other.Qualifier)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
