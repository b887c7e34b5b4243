package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/payday/internal/auth"
	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/config"
	"github.com/Veraticus/payday/internal/hours"
	"github.com/Veraticus/payday/internal/ledger"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is everything a data command needs, opened from the configured database.
type app struct {
	cfg       *config.AppConfig
	store     *storage.SQLiteStorage
	ledger    *ledger.Engine
	tracker   *hours.Tracker
	gate      *auth.Gate
	notifier  *cli.Notifier
	confirmer *cli.Confirmer
	reader    *cli.LineReader
	out       io.Writer
	// processed holds the recurring transactions materialized on open.
	processed []model.Transaction
}

type openOptions struct {
	// skipUnlock opens the store without asking for the password.
	skipUnlock bool
}

// openApp opens storage, unlocks it, loads both engines and materializes
// today's recurring transactions.
func openApp(cmd *cobra.Command, opts openOptions) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	force, _ := cmd.Flags().GetBool("yes")
	out := cmd.OutOrStdout()
	reader := cli.NewLineReader(cmd.InOrStdin())

	a := &app{
		cfg:       cfg,
		store:     store,
		notifier:  cli.NewNotifier(out, quiet),
		confirmer: cli.NewLineConfirmer(reader, out, force),
		reader:    reader,
		out:       out,
	}
	a.gate = auth.NewGate(store, a.notifier, slog.Default())

	if !opts.skipUnlock {
		if err := a.unlock(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.ledger = ledger.NewEngine(store,
		ledger.WithNotifier(a.notifier),
		ledger.WithConfirmer(a.confirmer),
		ledger.WithDefaultBudgetLimit(cfg.BudgetLimit),
		ledger.WithWarningHeadroom(cfg.WarningHeadroom))
	a.tracker = hours.NewTracker(store,
		hours.WithNotifier(a.notifier),
		hours.WithConfirmer(a.confirmer),
		hours.WithRate(cfg.Rate))

	if err := a.ledger.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.tracker.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if a.processed, err = a.ledger.ProcessRecurringTransactions(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// unlock checks the password from config or the terminal. The first
// password entered on a fresh database becomes the password.
func (a *app) unlock(ctx context.Context) error {
	password := viper.GetString("password")
	if password == "" {
		isSet, err := a.gate.IsSet(ctx)
		if err != nil {
			return err
		}
		prompt := "Password: "
		if !isSet {
			prompt = fmt.Sprintf("Choose a %d-character password: ", auth.PasswordLength)
		}
		if password, err = cli.Prompt(ctx, a.reader, a.out, prompt); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := a.gate.Unlock(ctx, password); err != nil {
		if errors.Is(err, auth.ErrIncorrectPassword) || errors.Is(err, auth.ErrPasswordLength) {
			return common.NewUserError("access denied", err)
		}
		return err
	}
	return nil
}

// checkpoint snapshots the database before a destructive operation when
// automatic checkpoints are enabled.
func (a *app) checkpoint(ctx context.Context, operation string) {
	if !a.cfg.AutoCheckpoint {
		return
	}
	manager, err := a.store.NewCheckpointManager()
	if err != nil {
		slog.Warn("failed to open checkpoints", "error", err)
		return
	}
	info, err := manager.AutoCheckpoint(ctx, operation)
	if err != nil {
		slog.Warn("failed to create checkpoint", "error", err)
		return
	}
	a.notifier.Notify(service.LevelInfo, fmt.Sprintf("Checkpoint %s created", info.ID))
}

// initStorage opens the database and applies migrations.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}
