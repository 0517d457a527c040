package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest"
)

func getParseCmd() *cobra.Command {
	var flags seasonFlags

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract and normalize tables from fetched pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			conf, season, err := flags.resolve(config.DefaultRegistry())
			if err != nil {
				return err
			}

			runner := ingest.NewRunner(cfg, conf, season)
			defer runner.Close()

			log.Printf("Parsing %s pages for season %d...", conf.Key, season)
			outcomes := runner.Parse()
			ingest.Summarize(conf, outcomes, nil)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
