package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"WithdrawBot/config"
	"WithdrawBot/internal/handlers"
	"WithdrawBot/internal/logger"
	"WithdrawBot/internal/metrics"
	"WithdrawBot/internal/repositories"
	"WithdrawBot/internal/services/withdrawal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	FlagConfigFile = "config"
	FlagAddresses  = "addresses"
	FlagEnvFile    = "env"
	FlagDryRun     = "dry-run"
)

type options struct {
	configPath    string
	addressesPath string
	envPath       string
	dryRun        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "withdrawbot",
		Short: "Withdraw random amounts from exchange accounts to a list of wallets",
		Long: `Walks every wallet address across every enabled exchange, withdrawing a
random amount of the configured coin with a random pause between withdrawals.

Credentials are read from <EXCHANGE>_API_KEY, <EXCHANGE>_API_SECRET and,
for exchanges that need one, <EXCHANGE>_PASSPHRASE.

Example:
  withdrawbot -c config.toml -w addresses.txt`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithdrawals(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, FlagConfigFile, "c", "config.toml", "Path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, FlagEnvFile, ".env", "Optional .env file with exchange credentials")
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, FlagDryRun, false, "Log withdrawals instead of sending them")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the withdrawals (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithdrawals(cmd, opts)
		},
	}
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().StringVarP(&opts.addressesPath, FlagAddresses, "w", "", "Address list file, overrides withdrawal.addresses_file")
	}

	feesCmd := &cobra.Command{
		Use:   "fees",
		Short: "Print the withdrawal fee of the configured coin on each enabled exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFees(cmd, opts)
		},
	}

	rootCmd.AddCommand(runCmd, feesCmd)
	return rootCmd
}

func setup(opts *options) (*config.Config, zerolog.Logger, func(), error) {
	if err := config.LoadEnv(opts.envPath); err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, closer, err := logger.Setup(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	return cfg, log, func() { _ = closer.Close() }, nil
}

func runWithdrawals(cmd *cobra.Command, opts *options) error {
	cfg, log, cleanup, err := setup(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	addressesPath := cfg.Withdrawal.AddressesFile
	if opts.addressesPath != "" {
		addressesPath = opts.addressesPath
	}
	addresses, err := config.LoadAddresses(addressesPath)
	if err != nil {
		log.Error().Err(err).Str("path", addressesPath).Msg("failed to load wallet addresses")
		return err
	}

	var recorder withdrawal.Recorder
	if cfg.Database.DSN != "" {
		repo, err := setupDatabase(cfg.Database)
		if err != nil {
			log.Error().Err(err).Msg("failed to set up withdrawal ledger")
			return err
		}
		recorder = repo
	}

	if cfg.Metrics.Addr != "" {
		srv, err := metrics.Serve(cfg.Metrics.Addr)
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Metrics.Addr).Msg("failed to start metrics server")
			return err
		}
		defer srv.Close()
		log.Info().Str("addr", srv.Addr).Msg("serving metrics")
	}

	// Setup context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := handlers.NewWithdrawalHandler(cfg, recorder, log, opts.dryRun)
	err = handler.Start(ctx, addresses)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted by user")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("withdrawal run failed")
	}
	return err
}

func printFees(cmd *cobra.Command, opts *options) error {
	cfg, log, cleanup, err := setup(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := handlers.NewWithdrawalHandler(cfg, nil, log, opts.dryRun)
	return handler.PrintFees(ctx, cmd.OutOrStdout())
}

func setupDatabase(dbConfig config.DatabaseConfig) (*repositories.WithdrawalRepository, error) {
	db, err := gorm.Open(postgres.Open(dbConfig.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := repositories.NewWithdrawalRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}
