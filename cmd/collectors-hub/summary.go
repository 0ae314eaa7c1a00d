package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/cadence"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/projection"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/schedule"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/money"
)

var tierColors = map[cadence.Tier]lipgloss.Color{
	cadence.TierHealthy:  lipgloss.Color("78"),
	cadence.TierMild:     lipgloss.Color("186"),
	cadence.TierModerate: lipgloss.Color("214"),
	cadence.TierElevated: lipgloss.Color("208"),
	cadence.TierWarning:  lipgloss.Color("203"),
	cadence.TierCritical: lipgloss.Color("196"),
}

func renderBadge(b cadence.Badge) string {
	color, ok := tierColors[b.Tier]
	if !ok {
		return b.Label
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.Label)
}

func summaryCmd() *cobra.Command {
	var monthKey string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month's projection and follow-up workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
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

			totals := projection.MonthTotals(accounts, monthKey, now)
			received := projection.MonthPaymentsTotal(accounts, monthKey)

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Printf("%s\n\n", headerStyle.Render("Projection for "+monthKey))
			fmt.Printf("  Expected:   %s (%d active)\n", money.Format(totals.Expected), totals.ActiveCount)
			fmt.Printf("  At risk:    %s (%d defaulted)\n", money.Format(totals.AtRisk), totals.DefaultedCount)
			fmt.Printf("  Settled:    %s written off (%d settled)\n", money.Format(totals.SettledLoss), totals.SettledCount)
			fmt.Printf("  Received:   %s recorded so far\n", money.Format(received))
			fmt.Printf("  Today:      %s collected, %d accounts touched\n\n",
				money.Format(projection.PaymentsOn(accounts, now)),
				projection.TouchedOn(accounts, now))

			var overdue, dueThisWeek int
			for _, a := range accounts {
				if cadence.IsFollowUpOverdue(a, now) {
					overdue++
				}
				if schedule.DueThisWeek(a.Frequency, a.StartDate, now) {
					dueThisWeek++
				}
			}
			fmt.Printf("%s\n\n", headerStyle.Render(
				fmt.Sprintf("Follow-ups: %d overdue, %d payments due this week", overdue, dueThisWeek)))

			if overdue == 0 {
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Merchant"),
				headerStyle.Render("Status"),
				headerStyle.Render("Priority"),
				headerStyle.Render("Last touch"),
				headerStyle.Render("Follow-up"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 12),
				strings.Repeat("-", 16),
				strings.Repeat("-", 12),
				strings.Repeat("-", 14))

			for _, a := range accounts {
				if !cadence.IsFollowUpOverdue(a, now) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					a.Merchant,
					a.Status,
					cadence.PriorityLabel(cadence.AgeDays(a, now)),
					renderBadge(cadence.TouchBadge(a, now)),
					renderBadge(cadence.FollowUpStatus(a, now)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&monthKey, "month", "m", "", "month to project (YYYY-MM, default current)")
	return cmd
}
