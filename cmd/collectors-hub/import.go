package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/csvio"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import accounts from a CSV file",
		Long: `Import merchant accounts from a CSV export. Header names are matched
loosely (e.g. "Business Name" and "Merchant" both map to the merchant
field); rows without a merchant are skipped. Statuses found in the file
are added to the status board.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = file.Close() }()

			result, err := csvio.ParseImport(file, now)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d accounts with %d statuses\n",
					len(result.Accounts), len(result.Statuses.Ordered()))
				for _, a := range result.Accounts {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", a.Merchant, a.Status)
				}
				return nil
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.SaveAccounts(ctx, result.Accounts); err != nil {
				return err
			}

			// Merge imported statuses into the stored board instead of
			// clobbering it.
			board, err := store.ListStatuses(ctx)
			if err != nil {
				return err
			}
			for _, name := range result.Statuses.Ordered() {
				board.Add(name)
			}
			if err := store.SaveStatuses(ctx, board); err != nil {
				return err
			}

			logger.Info("imported accounts",
				zap.String("op", "import"),
				zap.String("file", args[0]),
				zap.Int("accounts", len(result.Accounts)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts\n", len(result.Accounts))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	return cmd
}
