package main

import (
	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/store"
)

func getMigrateCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := store.NewDatabase(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return db.RunMigrations(migrationsDir)
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "migrations", "migrations", "directory holding .sql migration files")

	return cmd
}
