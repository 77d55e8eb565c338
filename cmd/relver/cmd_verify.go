package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relver/pkg/artifact"
	"github.com/odvcencio/relver/pkg/scm"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <tag>",
		Short: "Verify the attestation embedded in a release tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := scm.OpenGit(cmd.Context(), chdir, scm.GitOptions{Logger: logger})
			if err != nil {
				return err
			}
			message, err := repo.TagMessage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			v, err := artifact.Verify([]byte(message))
			if err != nil {
				return fmt.Errorf("tag %s: %w", args[0], err)
			}
			if v.Attestation.Tag != args[0] {
				return fmt.Errorf("attestation names tag %s, not %s", v.Attestation.Tag, args[0])
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"ok: tag %s attests release %s (development %s)\n",
				v.Attestation.Tag,
				v.Attestation.Release,
				v.Attestation.Development,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "key: %s (%s)\n", v.Fingerprint, v.Format)
			return nil
		},
	}
}
