package semver

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       Version
		shouldFail bool
	}{
		{
			name: "bare triple",
			in:   "1.2.3",
			want: Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name: "snapshot qualifier",
			in:   "0.3.1-SNAPSHOT",
			want: Version{Major: 0, Minor: 3, Patch: 1, Qualifier: "SNAPSHOT"},
		},
		{
			name: "qualifier keeps inner hyphens",
			in:   "1.0.0-rc-1",
			want: Version{Major: 1, Minor: 0, Patch: 0, Qualifier: "rc-1"},
		},
		{
			name: "surrounding whitespace",
			in:   "  2.0.0 ",
			want: Version{Major: 2, Minor: 0, Patch: 0},
		},
		{
			name: "zeros",
			in:   "0.0.0",
			want: Version{},
		},
		{name: "empty", in: "", shouldFail: true},
		{name: "two components", in: "1.2", shouldFail: true},
		{name: "four components", in: "1.2.3.4", shouldFail: true},
		{name: "non-numeric component", in: "1.x.3", shouldFail: true},
		{name: "signed component", in: "1.+2.3", shouldFail: true},
		{name: "missing component", in: "1..3", shouldFail: true},
		{name: "qualifier only", in: "-SNAPSHOT", shouldFail: true},
		{name: "text", in: "not-a-version", shouldFail: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.shouldFail {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				if !errors.Is(err, ErrMalformedVersion) {
					t.Fatalf("error = %v, want ErrMalformedVersion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	base := Version{Major: 1, Minor: 4, Patch: 9, Qualifier: Snapshot}

	tests := []struct {
		name string
		bump Bump
		want Version
	}{
		{name: "patch", bump: BumpPatch, want: Version{Major: 1, Minor: 4, Patch: 10}},
		{name: "minor resets patch", bump: BumpMinor, want: Version{Major: 1, Minor: 5}},
		{name: "major resets minor and patch", bump: BumpMajor, want: Version{Major: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := base.Next(tc.bump)
			if got != tc.want {
				t.Fatalf("Next(%s) = %+v, want %+v", tc.bump, got, tc.want)
			}
			if got.Qualifier != "" {
				t.Fatalf("Next(%s) kept qualifier %q", tc.bump, got.Qualifier)
			}
		})
	}
}

func TestStringForms(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}.WithQualifier(Snapshot)
	if v.String() != "1.2.3" {
		t.Fatalf("String = %q, want %q", v.String(), "1.2.3")
	}
	if v.StringFull() != "1.2.3-SNAPSHOT" {
		t.Fatalf("StringFull = %q, want %q", v.StringFull(), "1.2.3-SNAPSHOT")
	}
	if v.Development() != "1.2.3-SNAPSHOT" {
		t.Fatalf("Development = %q, want %q", v.Development(), "1.2.3-SNAPSHOT")
	}

	bare := Version{Major: 4, Minor: 0, Patch: 1}
	if bare.StringFull() != "4.0.1" {
		t.Fatalf("StringFull = %q, want %q", bare.StringFull(), "4.0.1")
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, in := range []string{"1.2.3", "0.0.1-SNAPSHOT", "10.20.30-beta"} {
		v, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if v.StringFull() != in {
			t.Fatalf("round trip %q -> %q", in, v.StringFull())
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "major order", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "minor order", a: "1.3.0", b: "1.10.0", want: -1},
		{name: "patch order", a: "1.2.4", b: "1.2.3", want: 1},
		{name: "snapshot precedes release", a: "1.2.3-SNAPSHOT", b: "1.2.3", want: -1},
		{name: "release follows snapshot", a: "1.2.3", b: "1.2.3-SNAPSHOT", want: 1},
		{name: "qualifiers order lexically", a: "1.2.3-alpha", b: "1.2.3-beta", want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Parse(tc.a)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.a, err)
			}
			b, err := Parse(tc.b)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.b, err)
			}
			if got := a.Compare(b); got != tc.want {
				t.Fatalf("Compare(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
