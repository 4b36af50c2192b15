package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "post <entry-id>",
		Short: "Post a draft journal entry, applying its balance deltas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entry, err := rt.engine.Post(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rt.logOp("post", entry.ID, entry.Description)

			fmt.Printf("Entry %s is now %s\n", entry.ID, entry.Status)
			return nil
		},
	}
}

func newReverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <entry-id>",
		Short: "Reverse a posted journal entry, undoing its balance deltas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entry, err := rt.engine.Reverse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rt.logOp("reverse", entry.ID, entry.Description)

			fmt.Printf("Entry %s is now %s\n", entry.ID, entry.Status)
			return nil
		},
	}
}

func newCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <entry-id>",
		Short: "Cancel a draft journal entry without balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entry, err := rt.engine.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rt.logOp("cancel", entry.ID, entry.Description)

			fmt.Printf("Entry %s is now %s\n", entry.ID, entry.Status)
			return nil
		},
	}
}

func newCorrectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <entry-id> <category>",
		Short: "Record the correct category for an entry and train the classifier on it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entry, err := rt.engine.SetActualCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			dir, err := rt.entryDirection(cmd.Context(), entry)
			if err == nil {
				if err := rt.classifier.Learn(cmd.Context(), entry.Description, dir, args[1]); err != nil {
					return err
				}
				if err := rt.classifier.Save(rt.cfg.Classifier.ModelPath); err != nil {
					return err
				}
			}

			fmt.Printf("Entry %s corrected to %s\n", entry.ID, args[1])
			return nil
		},
	}
}
