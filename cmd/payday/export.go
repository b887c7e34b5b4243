package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/config"
	"github.com/Veraticus/payday/internal/export"
	"github.com/Veraticus/payday/internal/ledger"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and reports",
	}
	cmd.AddCommand(exportCSVCmd(), exportSheetsCmd())
	return cmd
}

// buildReport gathers everything the report writers need.
func buildReport(a *app, transactions []model.Transaction) *service.Report {
	all := a.ledger.Transactions()
	budget := a.ledger.Budget()
	return &service.Report{
		GeneratedAt:    time.Now(),
		Budget:         budget,
		Balance:        a.ledger.Balance(),
		Finance:        ledger.MonthlySummary(all),
		Chart:          ledger.MonthlyTotals(all),
		Hours:          a.tracker.MonthlySummary(),
		Transactions:   transactions,
		BudgetProgress: ledger.BudgetProgress(all, budget.BudgetLimit),
	}
}

func exportCSVCmd() *cobra.Command {
	var output, hoursOutput, from, to, categoryName, typeName string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write transactions to a CSV file",
		Example: `  payday export csv
  payday export csv --from 2024-01-01 --to 2024-03-31 -o q1.csv
  payday export csv --hours hours.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := buildCriteria(from, to, categoryName, typeName)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if output == "" {
				output = a.cfg.CSVPath
			}
			writer := export.NewFileWriter(config.ExpandPath(output))
			report := buildReport(a, ledger.Filter(a.ledger.Transactions(), criteria))
			if err := writer.Write(cmd.Context(), report); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(report.Transactions), writer.Path())))

			if hoursOutput != "" {
				if err := writeHoursCSV(config.ExpandPath(hoursOutput), a.tracker.Entries()); err != nil {
					return err
				}
				fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Exported hours to %s", hoursOutput)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: export.csv_path)")
	cmd.Flags().StringVar(&hoursOutput, "hours", "", "also write hours entries to this file")
	addFilterFlags(cmd, &from, &to, &categoryName, &typeName)
	return cmd
}

func writeHoursCSV(path string, entries []model.HoursEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteHours(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the finance and hours report to Google Sheets",
		Long: `Writes Summary, Monthly, Hours and Transactions tabs to a spreadsheet.

Configure either a service account (sheets.service_account_path) or OAuth2
credentials (sheets.client_id, sheets.client_secret, sheets.refresh_token).
Run "payday export sheets auth" once to obtain a refresh token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets is not configured", err)
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			writer, err := sheets.NewWriter(cmd.Context(), *sheetsConfig, slog.Default())
			if err != nil {
				return err
			}
			if err := writer.Write(cmd.Context(), buildReport(a, a.ledger.Transactions())); err != nil {
				return err
			}
			fmt.Fprintln(a.out, cli.FormatSuccess("Report exported to Google Sheets"))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "auth",
		Short: "Authorize payday to write spreadsheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientID := viper.GetString("sheets.client_id")
			clientSecret := viper.GetString("sheets.client_secret")
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return common.NewUserError("set sheets.client_id and sheets.client_secret first", common.ErrMissingConfig)
			}

			token, err := sheets.GetOrCreateToken(cmd.Context(), sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    config.ExpandPath("$HOME/.config/payday/sheets-token.json"),
			}, slog.Default())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Authorized. Add this to your config:"))
			fmt.Fprintf(cmd.OutOrStdout(), "sheets:\n  refresh_token: %s\n", token.RefreshToken)
			return nil
		},
	})
	return cmd
}
