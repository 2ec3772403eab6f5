package main

import (
	"context"
	"time"

	"dev-match/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		dir := migrateDir
		if dir == "" {
			dir = e.cfg.App.MigrationsDir
		}
		r := migration.Runner{Dir: dir, Logger: e.log.Named("migration")}
		return r.Run(ctx, e.db.SQLDB())
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "migrations directory (default MIGRATIONS_DIR or ./migrations)")
}
