package main

import (
	"fmt"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/spf13/cobra"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Inspect monthly recurring transactions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recurring templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(a.out, cli.RenderTransactions(a.ledger.Templates()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "process",
		Short: "Materialize the templates due today",
		Long: `Every command processes recurring transactions once when it opens the
database; this command shows what that produced. Templates run at most once
per day and missed days are not back-filled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if len(a.processed) == 0 {
				last, ok := a.ledger.LastProcessed()
				msg := "No recurring transactions due"
				if ok {
					msg = fmt.Sprintf("%s (last processed %s)", msg, last.String())
				}
				fmt.Fprintln(a.out, cli.SubtleStyle.Render(msg))
				return nil
			}
			fmt.Fprintln(a.out, cli.RenderTransactions(a.processed))
			return nil
		},
	})
	return cmd
}
