package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/database"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/migrations"
	"github.com/hiteshchouriya/rik/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := cmd.Context()

		switch database.DetectDriver(cfg.DatabaseURL) {
		case database.DriverPostgres:
			pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()
			if err := migrations.RunPostgres(ctx, pool); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		case database.DriverSQLite:
			db, err := database.NewSQLiteDB(ctx, database.SQLitePathFromURL(cfg.DatabaseURL, cfg.SQLitePath))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			if err := migrations.RunSQLite(ctx, db); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		default:
			return fmt.Errorf("unsupported database URL: %s", cfg.DatabaseURL)
		}

		logger.Info("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
