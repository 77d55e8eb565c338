package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/relver/pkg/artifact"
	"github.com/odvcencio/relver/pkg/branch"
	"github.com/odvcencio/relver/pkg/convert"
	"github.com/odvcencio/relver/pkg/release"
	"github.com/odvcencio/relver/pkg/scm"
	"github.com/odvcencio/relver/pkg/semver"
)

const propertiesFileName = "release.properties"

// runGoal is the shared body of the patch, minor and major goals. It merges
// configuration, wires the collaborators, runs the resolver and emits the
// mode's artifacts.
func runGoal(cmd *cobra.Command, opts *goalOptions, bump semver.Bump) error {
	ctx := cmd.Context()

	fc, err := loadFileConfig(chdir)
	if err != nil {
		return err
	}
	opts.applyFileConfig(cmd.Flags(), fc)
	opts.fillCredentialsFromEnv()

	if strings.TrimSpace(opts.runMode) == "" {
		return fmt.Errorf("run mode is required: set --run-mode or run_mode in %s", configFileName)
	}
	mode := release.ParseRunMode(opts.runMode)
	if !mode.Valid() {
		return fmt.Errorf("run mode %q is not recognized", opts.runMode)
	}

	current := strings.TrimSpace(opts.current)
	if current == "" {
		current, err = readCurrentVersion(filepath.Join(chdir, opts.versionFile))
		if err != nil {
			return err
		}
	}

	cfg := release.Config{
		Mode:           mode,
		BranchOverride: opts.branchVersion,
		MetaData:       opts.metaData,
		ConversionURL:  opts.conversionURL,
		Mainline:       opts.mainline,
		Remote:         opts.remote,
		CheckRemote:    opts.checkRemote,
		Credentials: scm.Credentials{
			Username: opts.username,
			Password: opts.password,
		},
	}

	repo, err := scm.OpenGit(ctx, chdir, scm.GitOptions{
		Remote:      cfg.Remote,
		Credentials: cfg.Credentials,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	var conv branch.Converter
	if strings.TrimSpace(cfg.ConversionURL) != "" {
		client, err := convert.New(cfg.ConversionURL, convert.Options{
			Timeout:     opts.convertTimeout,
			MaxAttempts: opts.convertRetries,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		conv = client
	}

	classifier := branch.NewClassifier(conv, logger, branch.WithMainline(cfg.Mainline))
	resolver := release.NewResolver(repo, classifier, cfg, logger)

	out, err := resolver.Run(ctx, current, bump)
	if err != nil {
		return err
	}
	if out.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to do: branch is outside release scope")
		return nil
	}

	printBundle(cmd.OutOrStdout(), out.Bundle)

	if mode.IsNative() {
		return emitTag(cmd, opts, repo, out.Bundle)
	}
	return emitProperties(cmd, opts, out.Bundle)
}

// emitTag creates the annotated release tag for the NATIVE modes, with an
// SSH attestation in the message when signing is enabled.
func emitTag(cmd *cobra.Command, opts *goalOptions, repo *scm.Git, b release.Bundle) error {
	ctx := cmd.Context()

	a := artifact.Attestation{
		Tag:         b.SCMTag,
		Release:     b.Release,
		Development: b.Development,
	}
	message := a.Message()
	if opts.sign || strings.TrimSpace(opts.signingKey) != "" {
		signer, keyPath, err := newSSHSigner(opts.signingKey)
		if err != nil {
			return err
		}
		message, err = artifact.Sign(a, signer)
		if err != nil {
			return err
		}
		logger.Debug("attestation signed", zap.String("key", keyPath))
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry-run: would tag %s\n", b.SCMTag)
		return nil
	}

	if err := repo.CreateTag(ctx, b.SCMTag, message); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tagged %s\n", b.SCMTag)

	if opts.push {
		if err := repo.PushTag(ctx, b.SCMTag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pushed %s\n", b.SCMTag)
	}
	return nil
}

// emitProperties writes the bundle manifest for the RELEASE modes, leaving
// tagging to the follow-on release tooling.
func emitProperties(cmd *cobra.Command, opts *goalOptions, b release.Bundle) error {
	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry-run: would write %s\n", propertiesFileName)
		return nil
	}
	if err := artifact.WriteReleaseProperties(filepath.Join(chdir, propertiesFileName), b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", propertiesFileName)
	return nil
}

var bundleKeyOrder = []release.Key{
	release.KeyDevelopment,
	release.KeyRelease,
	release.KeySCMTag,
	release.KeyMetadata,
	release.KeyMajor,
	release.KeyMinor,
	release.KeyPatch,
}

func printBundle(w io.Writer, b release.Bundle) {
	values := b.Map()
	for _, k := range bundleKeyOrder {
		fmt.Fprintf(w, "%-11s : %s\n", k, values[k])
	}
}

// readCurrentVersion reads the project version from the version file. Only
// the first line counts, so the file can carry trailing commentary.
func readCurrentVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("version file %s not found: pass --current or create the file", path)
		}
		return "", fmt.Errorf("read version file: %w", err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	version := strings.TrimSpace(line)
	if version == "" {
		return "", fmt.Errorf("version file %s is empty", path)
	}
	return version, nil
}
