package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minibooks-dev/minibooks/internal/importer"
	"github.com/minibooks-dev/minibooks/internal/model"
	"github.com/minibooks-dev/minibooks/internal/store"
)

func newImportCommand() *cobra.Command {
	var (
		dir    string
		format string
		noPost bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import bank CSV transactions as journal entries",
		Long: `Import bank CSV transactions as journal entries.

Pass a single file, or use --dir to process every CSV in a directory.
Processed directory files are moved into a processed/ subdirectory.
Rows whose reference already exists in the ledger are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (dir == "") {
				return fmt.Errorf("pass exactly one of a file argument or --dir")
			}

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			if len(args) == 1 {
				created, skipped, err := importFile(cmd.Context(), rt, parser, args[0], noPost)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %d imported, %d skipped\n", args[0], created, skipped)
				return nil
			}

			files, err := importer.Scan(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Printf("No CSV files found in %s\n", dir)
				return nil
			}
			for _, f := range files {
				created, skipped, err := importFile(cmd.Context(), rt, parser, f.Path, noPost)
				if err != nil {
					return fmt.Errorf("importing %s: %w", f.Name, err)
				}
				if err := importer.MarkProcessed(dir, f.Name); err != nil {
					return err
				}
				fmt.Printf("%s: %d imported, %d skipped\n", f.Name, created, skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "import every CSV in this directory")
	cmd.Flags().StringVar(&format, "format", "generic", "CSV format name")
	cmd.Flags().BoolVar(&noPost, "no-post", false, "create entries as drafts without posting")

	return cmd
}

func importFile(ctx context.Context, rt *runtime, parser importer.Parser, path string, noPost bool) (created, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return 0, 0, err
	}

	for _, txn := range txns {
		dup, err := referenceExists(ctx, rt, txn.Reference)
		if err != nil {
			return created, skipped, err
		}
		if dup {
			skipped++
			continue
		}

		_, err = rt.addTransaction(ctx, addParams{
			Description: txn.Description,
			Direction:   txn.Direction(),
			Amount:      txn.Amount.Abs(),
			Date:        txn.Date,
			Reference:   txn.Reference,
			NoPost:      noPost,
		})
		if err != nil {
			return created, skipped, fmt.Errorf("importing %q: %w", txn.Description, err)
		}
		created++
	}
	return created, skipped, nil
}

func referenceExists(ctx context.Context, rt *runtime, reference string) (bool, error) {
	if reference == "" {
		return false, nil
	}
	entries, err := rt.store.FindJournalEntries(ctx, rt.userID, store.EntryFilter{Reference: reference})
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Status != model.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}
