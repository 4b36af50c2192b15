package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/classify"
)

func newTrainCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the classifier from the built-in sample set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			clf := rt.classifier
			if reset {
				clf = classify.NewBayes()
			}

			samples := classify.DefaultTrainingSet()
			if err := clf.Train(cmd.Context(), samples); err != nil {
				return err
			}
			if err := clf.Save(rt.cfg.Classifier.ModelPath); err != nil {
				return err
			}

			fmt.Printf("Trained on %d samples across %d categories, model saved to %s\n",
				len(samples), len(clf.Categories()), rt.cfg.Classifier.ModelPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "discard the existing model before training")
	return cmd
}
