package main

import (
	"fmt"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/ledger"
	"github.com/Veraticus/payday/internal/model"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			budget := a.ledger.Budget()
			content := fmt.Sprintf("Initial capital  %s\nBalance          %s",
				cli.FormatMoney(budget.InitialCapital),
				cli.BoldStyle.Render(cli.FormatMoney(a.ledger.Balance())))
			fmt.Fprintln(a.out, cli.RenderBox(cli.MoneyIcon+" Balance", content))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-capital <amount>",
		Short: "Set the starting balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			return a.ledger.SetInitialCapital(cmd.Context(), amount)
		},
	})
	return cmd
}

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show budget usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			status := a.ledger.CheckMonthlyBudget(ctx)
			// A month over the limit is over it all-time too, and has already been reported.
			var progress model.BudgetProgress
			if status.Exceeded {
				progress = a.ledger.Progress()
			} else {
				progress = a.ledger.CheckBudgetProgress(ctx)
			}

			content := fmt.Sprintf("This month  %s of %s (%s left)\nAll time    %s",
				cli.FormatMoney(status.MonthlyExpenses),
				cli.FormatMoney(status.Limit),
				cli.FormatMoney(status.Remaining),
				cli.RenderBudget(progress))
			fmt.Fprintln(a.out, cli.RenderBox(cli.ChartIcon+" Budget", content))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-limit <amount>",
		Short: "Set the budget limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			return a.ledger.SetBudgetLimit(cmd.Context(), limit)
		},
	})
	return cmd
}

func summaryCmd() *cobra.Command {
	var chart bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income and expenses per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			transactions := a.ledger.Transactions()
			fmt.Fprintln(a.out, cli.FormatTitle("Monthly summary"))
			fmt.Fprintln(a.out, cli.RenderMonthSummary(ledger.MonthlySummary(transactions)))
			if chart {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, cli.RenderChart(ledger.MonthlyTotals(transactions)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&chart, "chart", false, "draw income and expense bars")
	return cmd
}
