package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrialBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Show whether debit-normal and credit-normal balances agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			tb, err := rt.engine.ComputeTrialBalance(cmd.Context(), rt.userID)
			if err != nil {
				return err
			}

			fmt.Printf("Total debit:  %s\n", tb.TotalDebit.StringFixed(2))
			fmt.Printf("Total credit: %s\n", tb.TotalCredit.StringFixed(2))
			fmt.Printf("Difference:   %s\n", tb.Difference.StringFixed(2))
			if tb.Balanced {
				fmt.Println("Ledger is balanced")
				return nil
			}
			return fmt.Errorf("ledger is out of balance by %s", tb.Difference.StringFixed(2))
		},
	}
}
