package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the default chart of accounts for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.resolver.EnsureDefaultAccounts(cmd.Context(), rt.userID); err != nil {
				return err
			}

			fmt.Printf("Initialized chart of accounts for user %s at %s\n", rt.userID, rt.cfg.Database.Path)
			return nil
		},
	}
}
