package release

import (
	"context"
	"errors"
	"fmt"

	modsemver "golang.org/x/mod/semver"

	"github.com/odvcencio/relver/pkg/scm"
	"github.com/odvcencio/relver/pkg/semver"
	"go.uber.org/zap"
)

// ErrRemoteVersionCorrupt reports remote tags ahead of the version being
// worked on, usually a stale checkout or a release that raced this one.
var ErrRemoteVersionCorrupt = errors.New("remote version corrupt")

// ErrLocalVersionCorrupt reports local tags the resolved candidate does not
// strictly advance.
var ErrLocalVersionCorrupt = errors.New("local version corrupt")

// Verdict is the outcome of one consistency check.
type Verdict struct {
	Corrupt bool
	Reason  string
}

// Checker verifies tag consistency against a repository. All checks run
// before any tag or manifest mutation.
type Checker struct {
	repo scm.Repository
	log  *zap.Logger
}

// NewChecker builds a Checker over the given repository.
func NewChecker(repo scm.Repository, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{repo: repo, log: log}
}

// CheckRemote flags remote tag history strictly ahead of the current version
// within the given prefix scope. The comparison uses bare triples: the tag of
// the latest release equals the current snapshot's triple in a healthy
// checkout and must not trip the check. Listing failures surface as errors,
// not verdicts.
func (c *Checker) CheckRemote(ctx context.Context, current semver.Version, prefix string) (Verdict, error) {
	tags, err := c.repo.RemoteTags(ctx)
	if err != nil {
		return Verdict{}, fmt.Errorf("remote consistency: %w", err)
	}

	highest, ok := scm.HighestTag(tags, prefix)
	if !ok {
		return Verdict{}, nil
	}
	highKey, _ := scm.VersionKey(highest, prefix)
	if modsemver.Compare(highKey, "v"+current.String()) > 0 {
		reason := fmt.Sprintf("remote tag %s is ahead of current version %s", highest, current.StringFull())
		c.log.Warn("remote version check failed", zap.String("reason", reason))
		return Verdict{Corrupt: true, Reason: reason}, nil
	}
	return Verdict{}, nil
}

// CheckLocal flags local tag history the candidate tag does not strictly
// advance.
func (c *Checker) CheckLocal(ctx context.Context, next semver.Version, candidateTag, prefix string) (Verdict, error) {
	tags, err := c.repo.LocalTags(ctx)
	if err != nil {
		return Verdict{}, fmt.Errorf("local consistency: %w", err)
	}

	for _, tag := range tags {
		if tag == candidateTag {
			reason := fmt.Sprintf("tag %s already exists locally", candidateTag)
			c.log.Warn("local version check failed", zap.String("reason", reason))
			return Verdict{Corrupt: true, Reason: reason}, nil
		}
	}

	highest, ok := scm.HighestTag(tags, prefix)
	if !ok {
		return Verdict{}, nil
	}
	highKey, _ := scm.VersionKey(highest, prefix)
	if modsemver.Compare(highKey, "v"+next.String()) >= 0 {
		reason := fmt.Sprintf("local tag %s is at or above candidate %s", highest, next.String())
		c.log.Warn("local version check failed", zap.String("reason", reason))
		return Verdict{Corrupt: true, Reason: reason}, nil
	}
	return Verdict{}, nil
}
