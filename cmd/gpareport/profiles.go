package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/gpareport/internal/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in column profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := profile.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				p, err := profile.LoadBuiltin(name)
				if err != nil {
					return exitError(3, "failed to load profile: %v", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), profile.Describe(p))
			}
			return nil
		},
	}
}
