package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/relver/pkg/semver"
)

func newMajorCmd() *cobra.Command {
	opts := &goalOptions{}
	cmd := &cobra.Command{
		Use:   "major",
		Short: "Resolve the next major release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoal(cmd, opts, semver.BumpMajor)
		},
	}
	bindGoalFlags(cmd, opts)
	return cmd
}
