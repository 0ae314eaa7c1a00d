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
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/schedule"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

func accountsCmd() *cobra.Command {
	var (
		statusFilter string
		overdueOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts with derived follow-up columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Merchant"),
				headerStyle.Render("Status"),
				headerStyle.Render("Priority"),
				headerStyle.Render("Next due"),
				headerStyle.Render("Last touch"),
				headerStyle.Render("Follow-up"))

			shown := 0
			for _, a := range accounts {
				if statusFilter != "" && !strings.EqualFold(a.Status, statusFilter) {
					continue
				}
				if overdueOnly && !cadence.IsFollowUpOverdue(a, now) {
					continue
				}
				nextDue := "-"
				if due, ok := schedule.NextDueDate(a.Frequency, a.StartDate, now); ok {
					nextDue = dates.Display(due)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					a.ID,
					a.Merchant,
					a.Status,
					cadence.PriorityLabel(cadence.AgeDays(a, now)),
					nextDue,
					renderBadge(cadence.TouchBadge(a, now)),
					renderBadge(cadence.FollowUpStatus(a, now)),
				)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts match.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "only show accounts with this status")
	cmd.Flags().BoolVar(&overdueOnly, "overdue", false, "only show accounts with overdue follow-ups")
	return cmd
}

func touchCmd() *cobra.Command {
	var details string

	cmd := &cobra.Command{
		Use:   "touch <account-id>",
		Short: "Mark an account worked today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.TouchAccount(cmd.Context(), args[0], "touched", details, now); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Touched %s on %s\n", args[0], dates.Display(now))
			return nil
		},
	}

	cmd.Flags().StringVarP(&details, "details", "d", "", "note recorded with the touch")
	return cmd
}
