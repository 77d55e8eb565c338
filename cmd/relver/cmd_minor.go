package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/relver/pkg/semver"
)

func newMinorCmd() *cobra.Command {
	opts := &goalOptions{}
	cmd := &cobra.Command{
		Use:   "minor",
		Short: "Resolve the next minor release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoal(cmd, opts, semver.BumpMinor)
		},
	}
	bindGoalFlags(cmd, opts)
	return cmd
}
