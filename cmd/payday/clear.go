package main

import (
	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	var financeOnly, hoursOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all finance and hours data",
		Long: `Delete every transaction, recurring template, finance setting and hours
entry. An automatic checkpoint is taken first unless checkpoint.auto is off.
The password and the id counters are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			a.checkpoint(ctx, "clear")

			if !hoursOnly {
				if _, err := a.ledger.ClearAll(ctx); err != nil {
					return err
				}
			}
			if !financeOnly {
				if _, err := a.tracker.ClearAll(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&financeOnly, "finance", false, "only clear finance data")
	cmd.Flags().BoolVar(&hoursOnly, "hours", false, "only clear hours entries")
	cmd.MarkFlagsMutuallyExclusive("finance", "hours")
	return cmd
}
