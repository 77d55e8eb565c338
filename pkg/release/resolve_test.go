package release

import (
	"errors"
	"testing"

	"github.com/odvcencio/relver/pkg/branch"
	"github.com/odvcencio/relver/pkg/semver"
)

func TestResolvePerMode(t *testing.T) {
	current := semver.Version{Major: 1, Minor: 2, Patch: 3, Qualifier: semver.Snapshot}
	frag := branch.Fragment{Kind: branch.KindDelegated, Value: "6.4.0"}

	tests := []struct {
		name     string
		mode     RunMode
		metaData string
		wantTag  string
		wantMeta string
	}{
		{name: "release", mode: ModeRelease, wantTag: "1.2.4"},
		{name: "native", mode: ModeNative, wantTag: "1.2.4"},
		{name: "release branch", mode: ModeReleaseBranch, wantTag: "6.4.0-1.2.4"},
		{name: "native branch", mode: ModeNativeBranch, wantTag: "6.4.0-1.2.4"},
		{name: "release branch rpm", mode: ModeReleaseBranchRPM, wantTag: "6.4.0-1.2.4+60400", wantMeta: "+60400"},
		{name: "native branch rpm", mode: ModeNativeBranchRPM, wantTag: "6.4.0-1.2.4+60400", wantMeta: "+60400"},
		{name: "release with metadata", mode: ModeRelease, metaData: "-solr", wantTag: "1.2.4-solr", wantMeta: "-solr"},
		{name: "branch rpm with metadata", mode: ModeNativeBranchRPM, metaData: ".el9", wantTag: "6.4.0-1.2.4.el9+60400", wantMeta: ".el9+60400"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Resolve(tc.mode, current, semver.BumpPatch, frag, tc.metaData)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if b.SCMTag != tc.wantTag {
				t.Fatalf("SCMTag = %q, want %q", b.SCMTag, tc.wantTag)
			}
			if b.Metadata != tc.wantMeta {
				t.Fatalf("Metadata = %q, want %q", b.Metadata, tc.wantMeta)
			}
			if b.Release != "1.2.4" {
				t.Fatalf("Release = %q, want %q", b.Release, "1.2.4")
			}
			if b.Development != "1.2.5-SNAPSHOT" {
				t.Fatalf("Development = %q, want %q", b.Development, "1.2.5-SNAPSHOT")
			}
			if b.Major != 1 || b.Minor != 2 || b.Patch != 4 {
				t.Fatalf("triple = %d.%d.%d, want 1.2.4", b.Major, b.Minor, b.Patch)
			}
		})
	}
}

func TestResolveBumpKinds(t *testing.T) {
	current := semver.Version{Major: 1, Minor: 2, Patch: 3, Qualifier: semver.Snapshot}
	frag := branch.Fragment{Kind: branch.KindExplicit, Value: "2.0.0"}

	tests := []struct {
		bump    semver.Bump
		wantRel string
		wantDev string
	}{
		{bump: semver.BumpPatch, wantRel: "1.2.4", wantDev: "1.2.5-SNAPSHOT"},
		{bump: semver.BumpMinor, wantRel: "1.3.0", wantDev: "1.3.1-SNAPSHOT"},
		{bump: semver.BumpMajor, wantRel: "2.0.0", wantDev: "2.0.1-SNAPSHOT"},
	}

	for _, tc := range tests {
		t.Run(tc.bump.String(), func(t *testing.T) {
			b, err := Resolve(ModeRelease, current, tc.bump, frag, "")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if b.Release != tc.wantRel {
				t.Fatalf("Release = %q, want %q", b.Release, tc.wantRel)
			}
			if b.Development != tc.wantDev {
				t.Fatalf("Development = %q, want %q", b.Development, tc.wantDev)
			}
		})
	}
}

func TestResolveBranchTagOrder(t *testing.T) {
	current := semver.Version{Major: 1, Minor: 2, Patch: 3, Qualifier: semver.Snapshot}
	frag := branch.Fragment{Kind: branch.KindExplicit, Value: "featureX"}

	b, err := Resolve(ModeReleaseBranch, current, semver.BumpMinor, frag, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.SCMTag != "featureX-1.3.0" {
		t.Fatalf("SCMTag = %q, want %q", b.SCMTag, "featureX-1.3.0")
	}
	if b.Release != "1.3.0" {
		t.Fatalf("Release = %q, want %q", b.Release, "1.3.0")
	}
}

func TestResolveRejectsUnusableInput(t *testing.T) {
	current := semver.Version{Major: 1, Minor: 2, Patch: 3}

	if _, err := Resolve(ModeUnspecified, current, semver.BumpPatch, branch.Fragment{}, ""); !errors.Is(err, ErrUnsupportedRunMode) {
		t.Fatalf("unspecified mode err = %v, want ErrUnsupportedRunMode", err)
	}
	if _, err := Resolve(ModeNativeBranch, current, semver.BumpPatch, branch.Fragment{Kind: branch.KindDelegated}, ""); err == nil {
		t.Fatal("branch mode with empty fragment: want error, got nil")
	}
}

func TestRPMReleaseNumber(t *testing.T) {
	next := semver.Version{Major: 1, Minor: 3, Patch: 0}

	tests := []struct {
		fragment string
		want     string
	}{
		{fragment: "6.4.0", want: "60400"},
		{fragment: "2.10.3", want: "21003"},
		{fragment: "0.0.1", want: "00001"},
		{fragment: "release7", want: "7"},
		{fragment: "v2_1", want: "201"},
		{fragment: "featureX", want: "10300"},
		{fragment: "", want: "10300"},
	}

	for _, tc := range tests {
		t.Run(tc.fragment, func(t *testing.T) {
			if got := rpmReleaseNumber(tc.fragment, next); got != tc.want {
				t.Fatalf("rpmReleaseNumber(%q) = %q, want %q", tc.fragment, got, tc.want)
			}
		})
	}
}

func TestBundleMap(t *testing.T) {
	b := Bundle{
		Development: "1.2.5-SNAPSHOT",
		Release:     "1.2.4",
		SCMTag:      "6.4.0-1.2.4",
		Metadata:    "+60400",
		Major:       1,
		Minor:       2,
		Patch:       4,
	}

	m := b.Map()
	want := map[Key]string{
		KeyDevelopment: "1.2.5-SNAPSHOT",
		KeyRelease:     "1.2.4",
		KeySCMTag:      "6.4.0-1.2.4",
		KeyMetadata:    "+60400",
		KeyMajor:       "1",
		KeyMinor:       "2",
		KeyPatch:       "4",
	}
	if len(m) != len(want) {
		t.Fatalf("Map has %d entries, want %d", len(m), len(want))
	}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("Map[%s] = %q, want %q", k, m[k], v)
		}
	}
}
