package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/odvcencio/relver/pkg/branch"
	"github.com/odvcencio/relver/pkg/scm"
)

const configFileName = ".relver.toml"

// fileConfig mirrors .relver.toml. Every key is optional and an explicitly
// set flag wins over its file value.
type fileConfig struct {
	RunMode             string `toml:"run_mode"`
	MetaData            string `toml:"meta_data"`
	BranchConversionURL string `toml:"branch_conversion_url"`
	Mainline            string `toml:"mainline"`
	Remote              string `toml:"remote"`
	CheckRemote         *bool  `toml:"check_remote"`
	VersionFile         string `toml:"version_file"`
	SigningKey          string `toml:"signing_key"`
}

// loadFileConfig reads .relver.toml from dir. A missing file is not an
// error, just an empty config.
func loadFileConfig(dir string) (fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(filepath.Join(dir, configFileName), &fc); err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read %s: %w", configFileName, err)
	}
	return fc, nil
}

// goalOptions carries the flag values shared by the patch, minor and major
// goals.
type goalOptions struct {
	runMode        string
	current        string
	versionFile    string
	branchVersion  string
	metaData       string
	conversionURL  string
	mainline       string
	remote         string
	checkRemote    bool
	username       string
	password       string
	convertTimeout time.Duration
	convertRetries int
	sign           bool
	signingKey     string
	dryRun         bool
	push           bool
}

func bindGoalFlags(cmd *cobra.Command, o *goalOptions) {
	f := cmd.Flags()
	f.StringVar(&o.runMode, "run-mode", "", "release strategy: RELEASE, RELEASE_BRANCH, RELEASE_BRANCH_RPM, NATIVE, NATIVE_BRANCH or NATIVE_BRANCH_RPM")
	f.StringVar(&o.current, "current", "", "current project version (overrides the version file)")
	f.StringVar(&o.versionFile, "version-file", "VERSION", "file holding the current project version")
	f.StringVar(&o.branchVersion, "branch-version", "", "branch fragment override, skips branch classification")
	f.StringVar(&o.metaData, "meta-data", "", "build metadata appended to the tag")
	f.StringVar(&o.conversionURL, "branch-conversion-url", "", "base URL of the branch conversion service")
	f.StringVar(&o.mainline, "mainline", branch.DefaultMainline, "branch whose fragment comes from the conversion service")
	f.StringVar(&o.remote, "remote", scm.DefaultRemote, "git remote for tag checks and pushes")
	f.BoolVar(&o.checkRemote, "check-remote", true, "verify the remote is not ahead before resolving")
	f.StringVar(&o.username, "username", "", "remote username (or RELVER_USERNAME)")
	f.StringVar(&o.password, "password", "", "remote password (or RELVER_PASSWORD)")
	f.DurationVar(&o.convertTimeout, "convert-timeout", 10*time.Second, "conversion service request timeout")
	f.IntVar(&o.convertRetries, "convert-retries", 1, "conversion service attempts per lookup")
	f.BoolVar(&o.sign, "sign", false, "attest the created tag with an SSH key")
	f.StringVar(&o.signingKey, "signing-key", "", "SSH private key for attestation (default: first key in ~/.ssh)")
	f.BoolVar(&o.dryRun, "dry-run", false, "resolve and print without writing artifacts")
	f.BoolVar(&o.push, "push", false, "push the created tag (NATIVE modes)")
}

// applyFileConfig folds file values into options the user did not set on the
// command line.
func (o *goalOptions) applyFileConfig(flags *pflag.FlagSet, fc fileConfig) {
	if !flags.Changed("run-mode") && fc.RunMode != "" {
		o.runMode = fc.RunMode
	}
	if !flags.Changed("meta-data") && fc.MetaData != "" {
		o.metaData = fc.MetaData
	}
	if !flags.Changed("branch-conversion-url") && fc.BranchConversionURL != "" {
		o.conversionURL = fc.BranchConversionURL
	}
	if !flags.Changed("mainline") && fc.Mainline != "" {
		o.mainline = fc.Mainline
	}
	if !flags.Changed("remote") && fc.Remote != "" {
		o.remote = fc.Remote
	}
	if !flags.Changed("check-remote") && fc.CheckRemote != nil {
		o.checkRemote = *fc.CheckRemote
	}
	if !flags.Changed("version-file") && fc.VersionFile != "" {
		o.versionFile = fc.VersionFile
	}
	if !flags.Changed("signing-key") && fc.SigningKey != "" {
		o.signingKey = fc.SigningKey
	}
}

// fillCredentialsFromEnv falls back to the environment for credentials kept
// out of shell history and config files.
func (o *goalOptions) fillCredentialsFromEnv() {
	if o.username == "" {
		o.username = os.Getenv("RELVER_USERNAME")
	}
	if o.password == "" {
		o.password = os.Getenv("RELVER_PASSWORD")
	}
}
