package main

import (
	"context"
	"fmt"
	"time"

	"dev-match/internal/config"
	"dev-match/internal/database"
	dbpostgres "dev-match/internal/database/postgres"
	"dev-match/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "devmatchctl"

var (
	debugLog bool
	jsonLog  bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "devmatchctl manages the dev-match database and runs offline scoring",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(migrateCmd, seedCmd, scoreCmd)
}

// env is what every subcommand needs: configuration, a logger and a database.
type env struct {
	cfg config.Config
	log *zap.Logger
	db  database.DB
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	lg, err := logger.New(jsonLog || cfg.App.LogJSON, debugLog || cfg.App.LogDebug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &env{cfg: cfg, log: lg, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}
