package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuna/hardwood/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hardwood",
		Short: "Hardwood ingests college basketball season stats into PostgreSQL",
		Long: `Hardwood scrapes sports-reference team pages for a conference and season,
extracts per-game stat and roster tables, normalizes them into CSV artifacts,
and merges them into a relational store keyed by resolved player identity.

Stages run in sequence and persist their output, so each can be re-run alone:
  fetch    retrieve raw team pages
  parse    extract + normalize tables into CSV artifacts
  load     merge combined artifacts into the store
  run      all three stages in order

Plus:
  migrate  apply the database schema
  serve    start the read-only query API`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		getFetchCmd(),
		getParseCmd(),
		getLoadCmd(),
		getRunCmd(),
		getMigrateCmd(),
		getServeCmd(),
	)

	return rootCmd
}

// seasonFlags holds the flags shared by every pipeline command.
type seasonFlags struct {
	conference string
	season     int
}

func (f *seasonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.conference, "conference", "", "conference key, e.g. sun-belt")
	cmd.Flags().IntVar(&f.season, "season", 0, "season end year, e.g. 2025 for the 2024-25 season")
	cmd.MarkFlagRequired("conference")
	cmd.MarkFlagRequired("season")
}

// resolve validates the flags against the known-conference registry.
func (f *seasonFlags) resolve(registry *config.Registry) (config.Conference, int, error) {
	conf, err := registry.Lookup(f.conference)
	if err != nil {
		return config.Conference{}, 0, err
	}
	if f.season < 1900 || f.season > 2200 {
		return config.Conference{}, 0, fmt.Errorf("implausible season end year %d", f.season)
	}
	return conf, f.season, nil
}
