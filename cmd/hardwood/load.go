package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest"
	"github.com/fortuna/hardwood/internal/ingest/loader"
	"github.com/fortuna/hardwood/internal/store"
)

func getLoadCmd() *cobra.Command {
	var flags seasonFlags

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Merge combined artifacts into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			conf, season, err := flags.resolve(config.DefaultRegistry())
			if err != nil {
				return err
			}

			db, err := store.NewDatabase(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			runner := ingest.NewRunner(cfg, conf, season)
			defer runner.Close()

			result, err := runner.Load(cmd.Context(), loader.New(db))
			if err != nil {
				return err
			}

			log.Printf("✓ Loaded %d stat rows and %d roster rows (%d players)",
				result.StatRows, result.RosterRows, result.Players)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
