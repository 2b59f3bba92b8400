//	@title			Songshare API
//	@version		1.0
//	@description	Backend for sharing songs and the images attached to them.
//
//	@host		localhost:8000
//	@BasePath	/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/songshare/service/internal/config"
	"github.com/songshare/service/internal/db"
	"github.com/songshare/service/internal/logging"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:          "songshare",
		Short:        "songshare backend server",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (defaults to ./.env when present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(envFile)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runServer(cmd.Context(), cfg, logger)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the database schema",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withConfig(envFile, db.Migrate)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "revert all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withConfig(envFile, db.MigrateDown)
			},
		},
	)

	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the global logger.
func setup(envFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	logger.Info("config loaded",
		zap.String("env", cfg.AppEnv),
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("storage_driver", cfg.Storage.Driver),
	)
	return cfg, logger, nil
}

func withConfig(envFile string, fn func(cfg config.DBConfig) error) error {
	cfg, logger, err := setup(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	return fn(cfg.DB)
}
