package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/payday/internal/classification"
	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/ofx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Debits become expenses and credits become income. Transactions already in the
ledger (same date, amount, description and type) are skipped.

Categories come from the statement's transaction type, then from keyword
rules on the description. Extra rules can be listed under ofx.rules:

  ofx:
    rules:
      - name: gym
        category: health
        regex: '\bGYM\b'
        priority: 200`,
		Example: `  payday import-ofx ~/Downloads/statement.qfx
  payday import-ofx --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			a, err := openApp(cmd, openOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			var rules []classification.Rule
			if err := viper.UnmarshalKey("ofx.rules", &rules); err != nil {
				return fmt.Errorf("%w: ofx.rules: %w", common.ErrInvalidConfig, err)
			}
			detector, err := classification.NewDefaultDetector(rules...)
			if err != nil {
				return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
			}

			parser := ofx.NewParser(slog.Default(), ofx.WithClassifier(detector))
			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Parsing")

			var parsed []model.Transaction
			for _, path := range files {
				transactions, err := parseOFXFile(cmd, parser, path)
				if err != nil {
					common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
				} else {
					parsed = append(parsed, transactions...)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if len(parsed) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No transactions found"))
				return nil
			}

			if dryRun {
				fmt.Fprintln(a.out, cli.RenderTransactions(parsed))
				fmt.Fprintln(a.out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(parsed))))
				return nil
			}

			added, err := a.ledger.ImportTransactions(cmd.Context(), parsed)
			if err != nil {
				return err
			}
			common.LogInfo("Imported OFX transactions", common.Fields{
				"files":      len(files),
				"parsed":     len(parsed),
				"added":      len(added),
				"duplicates": len(parsed) - len(added),
			})
			fmt.Fprintln(a.out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d duplicates skipped)",
				len(added), len(parsed)-len(added))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	return cmd
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return parser.ParseFile(cmd.Context(), f)
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}
