package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "minibooks",
		Short:   "Classifier-assisted double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("user", "", "ledger owner (defaults to config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newReverseCommand())
	rootCmd.AddCommand(newCancelCommand())
	rootCmd.AddCommand(newCorrectCommand())
	rootCmd.AddCommand(newTrialBalanceCommand())
	rootCmd.AddCommand(newTrainCommand())
	rootCmd.AddCommand(newPredictCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}
