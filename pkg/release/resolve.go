package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/odvcencio/relver/pkg/branch"
	"github.com/odvcencio/relver/pkg/semver"
)

// Resolve derives the version bundle for one pass. It is pure: the same
// inputs always yield the same bundle, and nothing outside the return value
// is touched.
func Resolve(mode RunMode, current semver.Version, bump semver.Bump, frag branch.Fragment, metaData string) (Bundle, error) {
	next := current.Next(bump)

	var scmTag string
	switch {
	case mode == ModeRelease || mode == ModeNative:
		scmTag = next.String()
	case mode.UsesBranch():
		fragment := strings.TrimSpace(frag.Value)
		if fragment == "" {
			return Bundle{}, fmt.Errorf("resolve %s: branch fragment is required", mode)
		}
		scmTag = fragment + "-" + next.String()
	default:
		return Bundle{}, fmt.Errorf("resolve: mode %s: %w", mode, ErrUnsupportedRunMode)
	}

	// metaData rides on the tag exactly as configured; "-solr" keeps its
	// hyphen, nothing is inserted between tag and metadata.
	metadata := metaData
	if mode.IsRPM() {
		metadata += "+" + rpmReleaseNumber(frag.Value, next)
	}

	return Bundle{
		Development: next.Development(),
		Release:     next.String(),
		SCMTag:      scmTag + metadata,
		Metadata:    metadata,
		Major:       next.Major,
		Minor:       next.Minor,
		Patch:       next.Patch,
	}, nil
}

var digitGroupPattern = regexp.MustCompile(`\d+`)

// rpmReleaseNumber flattens the fragment's digit groups into an RPM release
// number. The first group stays as-is and later groups are zero-padded to two
// digits, so fragment 6.4.0 yields 60400. A fragment without digits falls
// back to the bumped triple.
func rpmReleaseNumber(fragment string, next semver.Version) string {
	groups := digitGroupPattern.FindAllString(fragment, -1)
	if len(groups) == 0 {
		groups = []string{
			strconv.Itoa(next.Major),
			strconv.Itoa(next.Minor),
			strconv.Itoa(next.Patch),
		}
	}

	var b strings.Builder
	b.WriteString(groups[0])
	for _, g := range groups[1:] {
		if len(g) < 2 {
			b.WriteString("0")
		}
		b.WriteString(g)
	}
	return b.String()
}
