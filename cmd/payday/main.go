package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/payday/internal/cli"
	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "payday",
		Short: cli.MoneyIcon + " Personal finance and work-hours tracker",
		Long: `payday keeps a ledger of income and expenses with monthly recurring
transactions and a budget, and tracks work hours with overtime-aware pay.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/payday/config.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (console, json)")
	flags.String("db", "", "database path (default: $HOME/.local/share/payday/payday.db)")
	flags.String("password", "", "access password (default: $PAYDAY_PASSWORD or prompt)")
	flags.BoolP("yes", "y", false, "answer yes to every confirmation")
	flags.BoolP("quiet", "q", false, "only print warnings and errors")

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("database.path", flags.Lookup("db"))
	_ = viper.BindPFlag("password", flags.Lookup("password"))

	rootCmd.AddCommand(
		txCmd(),
		recurringCmd(),
		balanceCmd(),
		budgetCmd(),
		summaryCmd(),
		hoursCmd(),
		exportCmd(),
		importOFXCmd(),
		passwordCmd(),
		clearCmd(),
		checkpointCmd(),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr, "Interrupted, shutting down...")
	ctx, stop := handler.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			fmt.Fprintln(os.Stderr, cli.FormatError(userErr.UserMessage))
		} else {
			fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/payday", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PAYDAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "payday %s\n", version)
		},
	}
}
