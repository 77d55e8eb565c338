// Package release derives version bundles from run modes, branch fragments
// and repository state.
package release

import (
	"errors"
	"strings"
)

// ErrUnsupportedRunMode reports a run mode the resolver cannot execute.
var ErrUnsupportedRunMode = errors.New("unsupported run mode")

// RunMode selects how a resolution pass composes its tags and which side
// effects follow.
type RunMode int

const (
	ModeUnspecified RunMode = iota
	ModeRelease
	ModeReleaseBranch
	ModeReleaseBranchRPM
	ModeNative
	ModeNativeBranch
	ModeNativeBranchRPM
)

// ParseRunMode maps a configuration string to its RunMode, ignoring case.
// Unknown input maps to ModeUnspecified, which the resolver rejects.
func ParseRunMode(raw string) RunMode {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "RELEASE":
		return ModeRelease
	case "RELEASE_BRANCH":
		return ModeReleaseBranch
	case "RELEASE_BRANCH_RPM":
		return ModeReleaseBranchRPM
	case "NATIVE":
		return ModeNative
	case "NATIVE_BRANCH":
		return ModeNativeBranch
	case "NATIVE_BRANCH_RPM":
		return ModeNativeBranchRPM
	default:
		return ModeUnspecified
	}
}

func (m RunMode) String() string {
	switch m {
	case ModeRelease:
		return "RELEASE"
	case ModeReleaseBranch:
		return "RELEASE_BRANCH"
	case ModeReleaseBranchRPM:
		return "RELEASE_BRANCH_RPM"
	case ModeNative:
		return "NATIVE"
	case ModeNativeBranch:
		return "NATIVE_BRANCH"
	case ModeNativeBranchRPM:
		return "NATIVE_BRANCH_RPM"
	default:
		return "UNSPECIFIED"
	}
}

// Valid reports whether the mode names one of the six executable modes.
func (m RunMode) Valid() bool {
	switch m {
	case ModeRelease, ModeReleaseBranch, ModeReleaseBranchRPM,
		ModeNative, ModeNativeBranch, ModeNativeBranchRPM:
		return true
	default:
		return false
	}
}

// UsesBranch reports whether the mode namespaces its SCM tag with the branch
// fragment.
func (m RunMode) UsesBranch() bool {
	switch m {
	case ModeReleaseBranch, ModeReleaseBranchRPM, ModeNativeBranch, ModeNativeBranchRPM:
		return true
	default:
		return false
	}
}

// IsNative reports whether the mode applies the release itself by tagging,
// rather than handing versions to a follow-on release tool.
func (m RunMode) IsNative() bool {
	switch m {
	case ModeNative, ModeNativeBranch, ModeNativeBranchRPM:
		return true
	default:
		return false
	}
}

// IsRPM reports whether the mode derives an RPM release number from the
// branch fragment.
func (m RunMode) IsRPM() bool {
	return m == ModeReleaseBranchRPM || m == ModeNativeBranchRPM
}
