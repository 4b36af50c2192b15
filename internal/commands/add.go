package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/model"
)

func newAddCommand() *cobra.Command {
	var (
		direction  string
		amountStr  string
		dateStr    string
		reference  string
		manualCode string
		noPost     bool
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction, letting the classifier pick the accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}
			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entry, err := rt.addTransaction(cmd.Context(), addParams{
				Description: args[0],
				Direction:   dir,
				Amount:      amount,
				Date:        date,
				Reference:   reference,
				ManualCode:  manualCode,
				NoPost:      noPost,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Entry %s %s (%s %s", entry.ID, entry.Status, direction, amount.StringFixed(2))
			if entry.PredictedCategory != "" {
				fmt.Printf(", category %s @ %s", entry.PredictedCategory, entry.Confidence.StringFixed(2))
			}
			fmt.Println(")")
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "", "income or expense (required)")
	_ = cmd.MarkFlagRequired("direction")
	cmd.Flags().StringVar(&amountStr, "amount", "", "transaction amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&reference, "reference", "", "external reference")
	cmd.Flags().StringVar(&manualCode, "account", "", "skip prediction and use this account code")
	cmd.Flags().BoolVar(&noPost, "no-post", false, "create the entry as a draft without posting")

	return cmd
}
