package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/relver/pkg/semver"
)

func newPatchCmd() *cobra.Command {
	opts := &goalOptions{}
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Resolve the next patch release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoal(cmd, opts, semver.BumpPatch)
		},
	}
	bindGoalFlags(cmd, opts)
	return cmd
}
