package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/model"
)

func newPredictCommand() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "predict <description>",
		Short: "Show the category the classifier would pick, without recording anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.ensureTrained(cmd.Context()); err != nil {
				return err
			}

			prediction, err := rt.classifier.Predict(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}

			fmt.Printf("Category:   %s\n", prediction.Category)
			fmt.Printf("Confidence: %.2f\n", prediction.Confidence)
			switch {
			case prediction.Confidence >= rt.cfg.Thresholds.AutoConfirm:
				fmt.Println("Would auto-confirm")
			case prediction.Confidence < rt.cfg.Thresholds.ReviewFlag:
				fmt.Println("Would flag for review")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "", "income or expense (required)")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}
