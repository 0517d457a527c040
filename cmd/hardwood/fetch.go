package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest"
)

func getFetchCmd() *cobra.Command {
	var flags seasonFlags
	var render bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Retrieve raw team pages for a conference and season",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if render {
				cfg.RenderPages = true
			}

			conf, season, err := flags.resolve(config.DefaultRegistry())
			if err != nil {
				return err
			}

			runner := ingest.NewRunner(cfg, conf, season)
			defer runner.Close()

			log.Printf("Fetching %s pages for season %d...", conf.Key, season)
			outcomes := runner.Fetch(cmd.Context())
			ingest.Summarize(conf, outcomes, nil)

			if len(outcomes) == len(conf.TeamSlugs) {
				return fmt.Errorf("all %d fetches failed", len(conf.TeamSlugs))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "fetch through a headless browser")

	return cmd
}
