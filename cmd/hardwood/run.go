package main

import (
	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest"
	"github.com/fortuna/hardwood/internal/ingest/loader"
	"github.com/fortuna/hardwood/internal/store"
)

func getRunCmd() *cobra.Command {
	var flags seasonFlags
	var render bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch, parse, load",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if render {
				cfg.RenderPages = true
			}

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

			_, _, err = runner.Run(cmd.Context(), loader.New(db))
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "fetch through a headless browser")

	return cmd
}
