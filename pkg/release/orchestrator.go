package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/odvcencio/relver/pkg/branch"
	"github.com/odvcencio/relver/pkg/scm"
	"github.com/odvcencio/relver/pkg/semver"
)

// ErrDirtyWorkingTree reports uncommitted changes blocking a release pass.
var ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

// ErrDelegationUnavailable reports a mainline branch whose fragment the
// conversion service could not provide.
var ErrDelegationUnavailable = errors.New("branch conversion unavailable")

// Outcome is the result of one resolution pass. Skipped passes carry no
// bundle.
type Outcome struct {
	Bundle   Bundle
	Fragment branch.Fragment
	RunID    string
	Skipped  bool
}

// Resolver drives a complete resolution pass. Repository checks, branch
// classification, version derivation and consistency verification run in
// that order, and any failure aborts the pass before tags or manifests
// change.
type Resolver struct {
	repo       scm.Repository
	classifier *branch.Classifier
	checker    *Checker
	cfg        Config
	log        *zap.Logger
}

// NewResolver wires a Resolver from its collaborators.
func NewResolver(repo scm.Repository, classifier *branch.Classifier, cfg Config, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		repo:       repo,
		classifier: classifier,
		checker:    NewChecker(repo, log),
		cfg:        cfg,
		log:        log,
	}
}

// Run executes one pass over the repository. currentVersion is the project's
// version as found in its manifest; bump selects the component to advance.
//
// Rerunning against unchanged repository state yields an identical bundle.
func (r *Resolver) Run(ctx context.Context, currentVersion string, bump semver.Bump) (Outcome, error) {
	runID := uuid.New().String()[:8]
	log := r.log.With(zap.String("run", runID))
	out := Outcome{RunID: runID}

	changed, err := r.repo.IsWorkingTreeChanged(ctx)
	if err != nil {
		return out, err
	}
	if changed {
		return out, ErrDirtyWorkingTree
	}

	current, err := semver.Parse(currentVersion)
	if err != nil {
		return out, err
	}

	branchName, err := r.repo.CurrentBranch(ctx)
	if err != nil {
		return out, err
	}
	frag := r.classifier.Classify(ctx, branchName, r.cfg.BranchOverride)
	out.Fragment = frag
	log.Info("branch classified",
		zap.String("branch", branchName),
		zap.String("kind", frag.Kind.String()),
		zap.String("fragment", frag.Value))

	switch frag.Kind {
	case branch.KindIgnored:
		log.Info("branch is outside release scope, nothing to resolve")
		out.Skipped = true
		return out, nil
	case branch.KindUnrecognized:
		return out, fmt.Errorf("branch %q: %w", branchName, branch.ErrUnrecognizedBranch)
	}

	if !r.cfg.Mode.Valid() {
		return out, fmt.Errorf("run mode %s: %w", r.cfg.Mode, ErrUnsupportedRunMode)
	}
	if r.cfg.Mode.UsesBranch() && frag.Undetermined() {
		return out, fmt.Errorf("mainline branch %q: %w", branchName, ErrDelegationUnavailable)
	}

	prefix := ""
	if r.cfg.Mode.UsesBranch() {
		prefix = frag.Value
	}

	if r.cfg.CheckRemote {
		verdict, err := r.checker.CheckRemote(ctx, current, prefix)
		if err != nil {
			return out, err
		}
		if verdict.Corrupt {
			return out, fmt.Errorf("%s: %w", verdict.Reason, ErrRemoteVersionCorrupt)
		}
	}

	bundle, err := Resolve(r.cfg.Mode, current, bump, frag, r.cfg.MetaData)
	if err != nil {
		return out, err
	}

	verdict, err := r.checker.CheckLocal(ctx, current.Next(bump), bundle.SCMTag, prefix)
	if err != nil {
		return out, err
	}
	if verdict.Corrupt {
		return out, fmt.Errorf("%s: %w", verdict.Reason, ErrLocalVersionCorrupt)
	}

	log.Info("version bundle resolved",
		zap.String("development", bundle.Development),
		zap.String("release", bundle.Release),
		zap.String("tag", bundle.SCMTag))

	out.Bundle = bundle
	return out, nil
}
