package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/csvio"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

func exportCmd() *cobra.Command {
	var (
		monthKey string
		output   string
		template bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export accounts to CSV",
		Long: `Export every account with derived columns (age, priority, next follow-up,
next payment, follow-up status, and the month's recorded payments).
With --template, write an empty import template instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = file.Close() }()
				out = file
			}

			if template {
				return csvio.WriteTemplate(out)
			}

			if monthKey == "" {
				monthKey = dates.MonthKey(now)
			}
			if _, ok := dates.ParseMonthKey(monthKey); !ok {
				return fmt.Errorf("invalid month %q, expected YYYY-MM", monthKey)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			return csvio.WriteAccounts(out, accounts, monthKey, now)
		},
	}

	cmd.Flags().StringVarP(&monthKey, "month", "m", "", "month for the payments column (YYYY-MM, default current)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&template, "template", false, "write an empty import template")
	return cmd
}
