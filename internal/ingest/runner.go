package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest/fetch"
	"github.com/fortuna/hardwood/internal/ingest/loader"
	"github.com/fortuna/hardwood/internal/ingest/sportsref"
	"github.com/fortuna/hardwood/internal/ingest/table"
)

// Stage names the pipeline stage an outcome belongs to.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
)

// Outcome records one per-team failure. Failures are collected, not thrown:
// the run finishes the remaining teams and reports them all at the end.
type Outcome struct {
	TeamSlug string
	Stage    Stage
	Purpose  table.Purpose
	Err      error
}

func (o Outcome) String() string {
	if o.Purpose != "" {
		return fmt.Sprintf("%s: %s %s: %v", o.TeamSlug, o.Stage, o.Purpose, o.Err)
	}
	return fmt.Sprintf("%s: %s: %v", o.TeamSlug, o.Stage, o.Err)
}

// Runner drives one (conference, season) ingestion: fetch raw pages, extract
// and normalize tables into artifacts, load the combined result. Stages read
// their input from disk artifacts, so each can be re-run on its own.
type Runner struct {
	conf   config.Conference
	season int
	layout table.Layout
	client *fetch.Client
}

// NewRunner builds a runner for one conference and season.
func NewRunner(cfg config.Config, conf config.Conference, seasonEndYear int) *Runner {
	var client *fetch.Client
	if cfg.RenderPages {
		client = fetch.NewRenderingClient(cfg.FetchDelay)
	} else {
		client = fetch.NewClient(cfg.FetchDelay)
	}

	return &Runner{
		conf:   conf,
		season: seasonEndYear,
		layout: table.Layout{DataDir: cfg.DataDir},
		client: client,
	}
}

// Close releases fetcher resources.
func (r *Runner) Close() {
	r.client.Close()
}

// Fetch retrieves every team page for the run and persists the raw HTML.
// Per-team failures become outcomes; the loop always visits every team.
func (r *Runner) Fetch(ctx context.Context) []Outcome {
	var outcomes []Outcome

	for _, slug := range r.conf.TeamSlugs {
		html, url, err := r.client.FetchTeamPage(ctx, slug, r.season)
		if err != nil {
			log.Printf("  ✗ %s: %v", slug, err)
			outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: StageFetch, Err: err})
			continue
		}

		rawPath := r.layout.RawPath(r.conf.DataSubdir, slug, r.season)
		if err := os.MkdirAll(filepath.Dir(rawPath), 0o755); err != nil {
			outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: StageFetch, Err: err})
			continue
		}
		if err := os.WriteFile(rawPath, []byte(html), 0o644); err != nil {
			outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: StageFetch, Err: err})
			continue
		}

		log.Printf("  ✓ %s -> %s", url, rawPath)
	}

	return outcomes
}

// Parse extracts and normalizes both table kinds from every raw page,
// writing per-team artifacts and the two combined conference artifacts.
func (r *Runner) Parse() []Outcome {
	var outcomes []Outcome

	signatures := []table.Signature{
		table.PerGameSignature(),
		table.RosterSignature(),
	}
	combined := make(map[table.Purpose]*table.Table)

	for _, slug := range r.conf.TeamSlugs {
		rawPath := r.layout.RawPath(r.conf.DataSubdir, slug, r.season)
		raw, err := os.ReadFile(rawPath)
		if err != nil {
			log.Printf("  ✗ %s: no raw page (%v)", slug, err)
			outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: StageExtract, Err: err})
			continue
		}

		for _, sig := range signatures {
			tbl, err := r.parseOne(string(raw), rawPath, slug, sig)
			if err != nil {
				var stage Stage = StageExtract
				if _, ok := err.(*sportsref.SchemaError); ok {
					stage = StageNormalize
				}
				log.Printf("  ✗ %s: %v", slug, err)
				outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: stage, Purpose: sig.Purpose, Err: err})
				continue
			}

			if combined[sig.Purpose] == nil {
				combined[sig.Purpose] = &table.Table{Columns: tbl.Columns}
			}
			if err := combined[sig.Purpose].Append(tbl); err != nil {
				outcomes = append(outcomes, Outcome{TeamSlug: slug, Stage: StageNormalize, Purpose: sig.Purpose, Err: err})
				continue
			}

			log.Printf("  ✓ %s: %d %s rows", slug, len(tbl.Rows), sig.Purpose)
		}
	}

	for purpose, tbl := range combined {
		path := r.layout.CombinedCSVPath(r.conf.DataSubdir, r.conf.Key, r.season, purpose)
		if err := tbl.WriteCSV(path); err != nil {
			outcomes = append(outcomes, Outcome{TeamSlug: r.conf.Key, Stage: StageNormalize, Purpose: purpose, Err: err})
			continue
		}
		log.Printf("✓ Wrote combined %s artifact: %s (%d rows)", purpose, path, len(tbl.Rows))
	}

	return outcomes
}

// parseOne runs extract + normalize for one page and purpose and writes the
// per-team artifact.
func (r *Runner) parseOne(raw, source, slug string, sig table.Signature) (*table.Table, error) {
	extracted, err := sportsref.ExtractTable(raw, source, slug, r.season, sig)
	if err != nil {
		return nil, err
	}

	normalized, err := sportsref.Normalize(extracted, sig.Purpose, source)
	if err != nil {
		return nil, err
	}

	teamPath := r.layout.TeamCSVPath(r.conf.DataSubdir, slug, r.season, sig.Purpose)
	if err := normalized.WriteCSV(teamPath); err != nil {
		return nil, err
	}

	return normalized, nil
}

// Load reads the combined artifacts and merges them into the store. A
// missing stats artifact aborts: there is nothing to load. A missing roster
// artifact is legal; roster data is optional.
func (r *Runner) Load(ctx context.Context, ld *loader.Loader) (*loader.Result, error) {
	statsPath := r.layout.CombinedCSVPath(r.conf.DataSubdir, r.conf.Key, r.season, table.PerGame)
	stats, err := table.ReadCSV(statsPath)
	if err != nil {
		return nil, fmt.Errorf("no stats artifact for %s %d: %w", r.conf.Key, r.season, err)
	}

	rosterPath := r.layout.CombinedCSVPath(r.conf.DataSubdir, r.conf.Key, r.season, table.Roster)
	roster, err := table.ReadCSV(rosterPath)
	if err != nil {
		log.Printf("⚠ no roster artifact for %s %d, loading stats only", r.conf.Key, r.season)
		roster = nil
	}

	return ld.Load(ctx, r.conf, r.season, stats, roster)
}

// Run executes all stages in sequence and prints the final summary.
func (r *Runner) Run(ctx context.Context, ld *loader.Loader) (*loader.Result, []Outcome, error) {
	log.Printf("Conference: %s (%s), season end year %d", r.conf.Name, r.conf.Key, r.season)

	log.Println("Fetching team pages...")
	outcomes := r.Fetch(ctx)

	log.Println("Extracting and normalizing tables...")
	outcomes = append(outcomes, r.Parse()...)

	log.Println("Loading into store...")
	result, err := r.Load(ctx, ld)
	if err != nil {
		return nil, outcomes, err
	}

	Summarize(r.conf, outcomes, result)
	return result, outcomes, nil
}

// Summarize prints the end-of-run report: rows written plus every per-team
// failure and its reason.
func Summarize(conf config.Conference, outcomes []Outcome, result *loader.Result) {
	if result != nil {
		log.Printf("✓ Loaded %d stat rows and %d roster rows (%d players) for %s",
			result.StatRows, result.RosterRows, result.Players, conf.Key)
	}

	if len(outcomes) == 0 {
		log.Printf("✓ All %d teams ingested cleanly", len(conf.TeamSlugs))
		return
	}

	failed := make(map[string]bool)
	for _, o := range outcomes {
		failed[o.TeamSlug] = true
	}

	log.Printf("⚠ %d of %d teams had failures:", len(failed), len(conf.TeamSlugs))
	for _, o := range outcomes {
		log.Printf("  - %s", o)
	}
}
