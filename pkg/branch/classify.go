// Package branch classifies git branch names into version fragments.
package branch

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrUnrecognizedBranch reports a branch name no classification rule accepts.
var ErrUnrecognizedBranch = errors.New("unrecognized branch")

// DefaultMainline is the branch name that delegates to the conversion service.
const DefaultMainline = "master"

// FragmentKind tells how a branch name was classified.
type FragmentKind int

const (
	KindUnrecognized FragmentKind = iota
	KindExplicit
	KindLegacy
	KindDelegated
	KindIgnored
)

func (k FragmentKind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindLegacy:
		return "legacy"
	case KindDelegated:
		return "delegated"
	case KindIgnored:
		return "ignored"
	default:
		return "unrecognized"
	}
}

// Fragment is the classification outcome for one branch name. Value carries
// the version fragment for explicit, legacy and delegated kinds.
type Fragment struct {
	Kind  FragmentKind
	Value string
}

// Undetermined reports a delegated fragment the conversion service could not
// fill in.
func (f Fragment) Undetermined() bool {
	return f.Kind == KindDelegated && strings.TrimSpace(f.Value) == ""
}

// Converter resolves a mainline branch name to its version fragment.
// pkg/convert provides the HTTP implementation.
type Converter interface {
	BranchVersion(ctx context.Context, branch string) (string, error)
}

var (
	releaseBranchPattern = regexp.MustCompile(`^\d+\.\d+\.\d+`)
	legacyBranchPattern  = regexp.MustCompile(`^v\d+_\d+_\d+`)
	opaqueBranchPattern  = regexp.MustCompile(`^[a-z0-9]*$`)
)

// Classifier maps branch names to version fragments.
type Classifier struct {
	conv     Converter
	mainline string
	log      *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMainline overrides the branch name treated as mainline.
func WithMainline(name string) Option {
	return func(c *Classifier) {
		if strings.TrimSpace(name) != "" {
			c.mainline = strings.TrimSpace(name)
		}
	}
}

// NewClassifier builds a Classifier. conv may be nil when no conversion
// service is configured; mainline branches then classify as undetermined.
func NewClassifier(conv Converter, log *zap.Logger, opts ...Option) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Classifier{conv: conv, mainline: DefaultMainline, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves the version fragment for branchName. A non-empty override
// wins outright. The remaining rules apply in order and the first match
// decides, so the mainline name never reaches the opaque rule even though it
// matches it.
func (c *Classifier) Classify(ctx context.Context, branchName, override string) Fragment {
	if v := strings.TrimSpace(override); v != "" {
		c.log.Debug("branch version overridden", zap.String("value", v))
		return Fragment{Kind: KindExplicit, Value: v}
	}

	name := strings.TrimSpace(branchName)
	switch {
	case name == "":
		c.log.Error("current branch is empty")
		return Fragment{Kind: KindUnrecognized}
	case releaseBranchPattern.MatchString(name):
		c.log.Debug("branch carries a release triple", zap.String("branch", name))
		return Fragment{Kind: KindExplicit, Value: name}
	case legacyBranchPattern.MatchString(name):
		value := legacyFragment(name)
		c.log.Debug("branch uses legacy version encoding",
			zap.String("branch", name),
			zap.String("fragment", value))
		return Fragment{Kind: KindLegacy, Value: value}
	case name == c.mainline:
		return c.delegate(ctx, name)
	case opaqueBranchPattern.MatchString(name):
		c.log.Warn("branch looks like a generated checkout name, skipping version resolution",
			zap.String("branch", name))
		return Fragment{Kind: KindIgnored}
	default:
		c.log.Error("branch matches no classification rule", zap.String("branch", name))
		return Fragment{Kind: KindUnrecognized, Value: name}
	}
}

func (c *Classifier) delegate(ctx context.Context, name string) Fragment {
	if c.conv == nil {
		c.log.Error("no conversion service configured for mainline branch", zap.String("branch", name))
		return Fragment{Kind: KindDelegated}
	}
	value, err := c.conv.BranchVersion(ctx, name)
	if err != nil {
		// Conversion failures are reported by the caller once it sees the
		// undetermined fragment.
		c.log.Error("conversion service request failed", zap.String("branch", name), zap.Error(err))
		return Fragment{Kind: KindDelegated}
	}
	c.log.Info("conversion service resolved fragment",
		zap.String("branch", name),
		zap.String("fragment", value))
	return Fragment{Kind: KindDelegated, Value: strings.TrimSpace(value)}
}

// legacyFragment rewrites a v1_4_0-style name to its dotted triple. Extra
// segments after the triple are dropped.
func legacyFragment(name string) string {
	dotted := strings.ReplaceAll(strings.ReplaceAll(name, "v", ""), "_", ".")
	parts := strings.Split(dotted, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}
