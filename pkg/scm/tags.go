package scm

import (
	"strings"

	"golang.org/x/mod/semver"
)

// VersionKey maps a tag name to its canonical comparison key, a
// "vM.m.p[-pre][+build]" string ordered by golang.org/x/mod/semver.
//
// With a non-empty prefix only tags of the form "prefix-<triple>" qualify.
// With an empty prefix bare triples qualify, optionally "v"-prefixed. Tags
// outside the requested shape report ok=false.
func VersionKey(tag, prefix string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}

	var rest string
	if prefix != "" {
		if !strings.HasPrefix(tag, prefix+"-") {
			return "", false
		}
		rest = tag[len(prefix)+1:]
	} else {
		rest = strings.TrimPrefix(tag, "v")
	}

	key := "v" + rest
	if !semver.IsValid(key) {
		return "", false
	}
	return key, true
}

// HighestTag returns the highest-versioned tag under the given fragment
// prefix. Equal versions tie-break on the lexically larger tag name.
func HighestTag(tags []string, prefix string) (string, bool) {
	var best, bestKey string
	for _, tag := range tags {
		key, ok := VersionKey(tag, prefix)
		if !ok {
			continue
		}
		if best == "" {
			best, bestKey = tag, key
			continue
		}
		switch semver.Compare(key, bestKey) {
		case 1:
			best, bestKey = tag, key
		case 0:
			if tag > best {
				best, bestKey = tag, key
			}
		}
	}
	return best, best != ""
}
