package release

import (
	"context"
	"errors"
	"testing"

	"github.com/odvcencio/relver/pkg/semver"
)

func TestCheckRemote(t *testing.T) {
	current := semver.Version{Major: 1, Minor: 2, Patch: 3, Qualifier: semver.Snapshot}

	tests := []struct {
		name    string
		tags    []string
		prefix  string
		corrupt bool
	}{
		{name: "no tags"},
		{name: "remote behind", tags: []string{"1.2.1", "1.2.2"}},
		{name: "remote at current triple", tags: []string{"1.2.3"}},
		{name: "v-prefixed remote at current triple", tags: []string{"v1.2.3"}},
		{name: "remote ahead", tags: []string{"1.2.4"}, corrupt: true},
		{name: "remote far ahead", tags: []string{"1.2.3", "2.0.0"}, corrupt: true},
		{name: "junk tags ignored", tags: []string{"backup-2020", "tmp"}},
		{name: "ahead tag outside prefix scope", tags: []string{"6.5.0-2.0.0"}, prefix: "6.4.0"},
		{name: "ahead tag inside prefix scope", tags: []string{"6.4.0-1.2.4"}, prefix: "6.4.0", corrupt: true},
		{name: "prefixed remote at current triple", tags: []string{"6.4.0-1.2.3"}, prefix: "6.4.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checker := NewChecker(&fakeRepo{remoteTags: tc.tags}, nil)
			verdict, err := checker.CheckRemote(context.Background(), current, tc.prefix)
			if err != nil {
				t.Fatalf("CheckRemote: %v", err)
			}
			if verdict.Corrupt != tc.corrupt {
				t.Fatalf("Corrupt = %v (reason %q), want %v", verdict.Corrupt, verdict.Reason, tc.corrupt)
			}
		})
	}
}

func TestCheckLocal(t *testing.T) {
	next := semver.Version{Major: 1, Minor: 2, Patch: 4}

	tests := []struct {
		name      string
		tags      []string
		candidate string
		prefix    string
		corrupt   bool
	}{
		{name: "no tags", candidate: "1.2.4"},
		{name: "history behind", tags: []string{"1.2.2", "1.2.3"}, candidate: "1.2.4"},
		{name: "candidate collides", tags: []string{"1.2.4"}, candidate: "1.2.4", corrupt: true},
		{name: "prefixed candidate collides", tags: []string{"6.4.0-1.2.4"}, candidate: "6.4.0-1.2.4", prefix: "6.4.0", corrupt: true},
		{name: "history at candidate triple", tags: []string{"1.2.4"}, candidate: "1.2.4-solr", corrupt: true},
		{name: "history ahead", tags: []string{"1.2.5"}, candidate: "1.2.4", corrupt: true},
		{name: "junk tags ignored", tags: []string{"oddball", "release-notes"}, candidate: "1.2.4"},
		{name: "other prefix does not interfere", tags: []string{"7.0.0-9.9.9"}, candidate: "6.4.0-1.2.4", prefix: "6.4.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checker := NewChecker(&fakeRepo{localTags: tc.tags}, nil)
			verdict, err := checker.CheckLocal(context.Background(), next, tc.candidate, tc.prefix)
			if err != nil {
				t.Fatalf("CheckLocal: %v", err)
			}
			if verdict.Corrupt != tc.corrupt {
				t.Fatalf("Corrupt = %v (reason %q), want %v", verdict.Corrupt, verdict.Reason, tc.corrupt)
			}
		})
	}
}

func TestChecksSurfaceListingErrors(t *testing.T) {
	boom := errors.New("ls-remote refused")
	checker := NewChecker(&fakeRepo{remoteErr: boom, localErr: boom}, nil)
	current := semver.Version{Major: 1, Minor: 2, Patch: 3}

	if _, err := checker.CheckRemote(context.Background(), current, ""); !errors.Is(err, boom) {
		t.Fatalf("CheckRemote err = %v, want wrapped %v", err, boom)
	}
	if _, err := checker.CheckLocal(context.Background(), current, "1.2.3", ""); !errors.Is(err, boom) {
		t.Fatalf("CheckLocal err = %v, want wrapped %v", err, boom)
	}
}
