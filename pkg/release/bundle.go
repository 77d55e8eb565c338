package release

import (
	"strconv"

	"github.com/odvcencio/relver/pkg/scm"
)

// Key names one field of a resolved version bundle. The key set is fixed;
// manifest writers address bundle values through it.
type Key string

const (
	KeyDevelopment Key = "DEVELOPMENT"
	KeyRelease     Key = "RELEASE"
	KeySCMTag      Key = "SCM_TAG"
	KeyMetadata    Key = "METADATA"
	KeyMajor       Key = "MAJOR"
	KeyMinor       Key = "MINOR"
	KeyPatch       Key = "PATCH"
)

// Bundle is the complete outcome of one resolution pass. It is built once
// and never mutated afterwards.
type Bundle struct {
	// Development is the next development iteration, always M.m.p-SNAPSHOT.
	Development string
	// Release is the artifact version being released, the bare triple.
	Release string
	// SCMTag is the tag name to apply, fragment-prefixed in branch modes and
	// carrying any build metadata verbatim.
	SCMTag string
	// Metadata is the build metadata appended to the SCM tag, empty when the
	// pass carries none.
	Metadata string
	Major    int
	Minor    int
	Patch    int
}

// Map exposes the bundle under its fixed keys for manifest-writing
// collaborators.
func (b Bundle) Map() map[Key]string {
	return map[Key]string{
		KeyDevelopment: b.Development,
		KeyRelease:     b.Release,
		KeySCMTag:      b.SCMTag,
		KeyMetadata:    b.Metadata,
		KeyMajor:       strconv.Itoa(b.Major),
		KeyMinor:       strconv.Itoa(b.Minor),
		KeyPatch:       strconv.Itoa(b.Patch),
	}
}

// Config carries the settings of one resolution pass. It is assembled by the
// caller before the pass starts and treated as immutable afterwards.
type Config struct {
	Mode RunMode
	// BranchOverride short-circuits branch classification when set.
	BranchOverride string
	// MetaData is appended verbatim to the SCM tag.
	MetaData string
	// ConversionURL locates the branch conversion service. Empty disables
	// delegation.
	ConversionURL string
	// Mainline is the branch that delegates to the conversion service.
	Mainline string
	// Remote names the git remote consulted for remote tag checks and pushes.
	Remote string
	// CheckRemote enables the remote consistency check.
	CheckRemote bool
	Credentials scm.Credentials
}
