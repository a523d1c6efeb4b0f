package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/employee-management-api/internal/config"
	"github.com/employee-management-api/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Bring the configured database schema up to date.

PostgreSQL is migrated with the embedded goose migrations, SQLite
with the model definitions. Connection settings come from the same
DB_* environment variables the API server reads.

Examples:
  emsctl migrate
  DB_DRIVER=sqlite DB_SQLITE_PATH=ems.db emsctl migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get sql.DB: %w", err)
			}
			defer sqlDB.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Database schema is up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
