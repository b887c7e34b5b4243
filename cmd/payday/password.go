package main

import (
	"github.com/Veraticus/payday/internal/cli"
	"github.com/spf13/cobra"
)

func passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the access password",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Set the password on a database that has none",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{skipUnlock: true})
			if err != nil {
				return err
			}
			defer a.Close()

			password, err := cli.Prompt(cmd.Context(), a.reader, a.out, "New password: ")
			if err != nil {
				return err
			}
			return a.gate.SetPassword(cmd.Context(), password)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "change",
		Short: "Change the password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, openOptions{skipUnlock: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			current, err := cli.Prompt(ctx, a.reader, a.out, "Current password: ")
			if err != nil {
				return err
			}
			next, err := cli.Prompt(ctx, a.reader, a.out, "New password: ")
			if err != nil {
				return err
			}
			return a.gate.ChangePassword(ctx, current, next)
		},
	})
	return cmd
}
