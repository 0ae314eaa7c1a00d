package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/pipeline"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/money"
)

func pipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Work the opportunity pipeline",
	}
	cmd.AddCommand(pipelineListCmd())
	cmd.AddCommand(pipelineAddCmd())
	cmd.AddCommand(pipelineAdvanceCmd())
	cmd.AddCommand(pipelineSweepCmd())
	return cmd
}

func pipelineListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List opportunities and the confidence-weighted forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opportunities, err := store.ListOpportunities(cmd.Context())
			if err != nil {
				return err
			}
			if len(opportunities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No opportunities.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Merchant"),
				headerStyle.Render("Stage"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Weighted"))

			for _, opp := range opportunities {
				amount := money.Parse(opp.Amount)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					opp.ID,
					opp.Merchant,
					opp.Stage,
					money.Format(amount),
					money.Format(amount*pipeline.Confidence(opp.Stage)),
				)
			}
			fmt.Fprintf(w, "\nForecast total:\t%s\n", money.Format(pipeline.ForecastTotal(opportunities)))
			return nil
		},
	}
}

func pipelineAddCmd() *cobra.Command {
	var opp model.Opportunity

	cmd := &cobra.Command{
		Use:   "add <merchant>",
		Short: "Add an opportunity at the Lead stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opp.ID = model.NewID()
			opp.Merchant = args[0]
			opp.Stage = pipeline.StageLead
			opp.Frequency = model.NormalizeFrequency(opp.Frequency)
			if err := store.SaveOpportunity(cmd.Context(), opp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", opp.Merchant, opp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opp.Client, "client", "", "client name")
	cmd.Flags().StringVar(&opp.Amount, "amount", "", "payment amount")
	cmd.Flags().StringVar(&opp.Frequency, "frequency", "", "payment frequency")
	cmd.Flags().StringVar(&opp.StartDate, "start-date", "", "payment start date")
	cmd.Flags().StringVar(&opp.PaymentStatus, "payment-status", "", "status for the converted account")
	cmd.Flags().StringVar(&opp.Notes, "notes", "", "free-form notes")
	return cmd
}

func pipelineAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <opportunity-id> <stage>",
		Short: "Move an opportunity to a pipeline stage",
		Long: `Move an opportunity to one of: ` + strings.Join(pipeline.Stages, ", ") + `.

Reaching Payment Plan Made converts the opportunity into an account,
provided it carries an amount, frequency, start date, and payment status.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			opportunities, err := store.ListOpportunities(ctx)
			if err != nil {
				return err
			}
			var target *model.Opportunity
			for i := range opportunities {
				if opportunities[i].ID == args[0] {
					target = &opportunities[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("opportunity %s not found", args[0])
			}

			orchestrator := pipeline.NewOrchestrator(store, logger)
			moved, err := orchestrator.AdvanceStage(ctx, *target, args[1], now)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now at %s\n", moved.Merchant, moved.Stage)
			if moved.ConvertedAccountID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Converted to account %s\n", moved.ConvertedAccountID)
			}
			return nil
		},
	}
}

func pipelineSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove converted opportunities past their retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			opportunities, err := store.ListOpportunities(ctx)
			if err != nil {
				return err
			}

			orchestrator := pipeline.NewOrchestrator(store, logger)
			expired, err := orchestrator.SweepConverted(ctx, opportunities, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Swept %d converted opportunities\n", len(expired))
			return nil
		},
	}
}
