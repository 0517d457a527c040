package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/lib/pq"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest/table"
	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/store/repository"
)

// LoadError reports a failure inside the load transaction. The whole
// conference/season batch rolls back; the store is unchanged from before the
// run.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	var pqErr *pq.Error
	if errors.As(e.Err, &pqErr) && pqErr.Constraint != "" {
		return fmt.Sprintf("load aborted during %s: constraint %s violated: %v", e.Op, pqErr.Constraint, e.Err)
	}
	return fmt.Sprintf("load aborted during %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Result reports how many rows a load wrote.
type Result struct {
	StatRows   int
	RosterRows int
	Players    int
}

// Loader merges normalized stat and roster tables into the store under one
// transaction per conference/season run.
type Loader struct {
	db          *store.Database
	conferences *repository.ConferenceRepository
	teams       *repository.TeamRepository
	players     *repository.PlayerRepository
	stats       *repository.StatsRepository
}

// New creates a loader over the given database.
func New(db *store.Database) *Loader {
	return &Loader{
		db:          db,
		conferences: repository.NewConferenceRepository(db),
		teams:       repository.NewTeamRepository(db),
		players:     repository.NewPlayerRepository(db),
		stats:       repository.NewStatsRepository(db),
	}
}

// Load resolves player identities and upserts conference, team, stat and
// roster rows. Either everything for the run commits or nothing does.
func (l *Loader) Load(ctx context.Context, conf config.Conference, seasonEndYear int, stats, roster *table.Table) (*Result, error) {
	if stats == nil {
		stats = &table.Table{}
	}
	if roster == nil {
		roster = &table.Table{}
	}

	tx, err := l.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, &LoadError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	if err := l.conferences.Upsert(ctx, tx, &store.Conference{
		ConferenceKey: conf.Key,
		Name:          conf.Name,
	}); err != nil {
		return nil, &LoadError{Op: "conference upsert", Err: err}
	}

	// Conference and team rows must exist before any stat/roster row
	// references them.
	for _, slug := range teamSlugs(stats, roster) {
		if err := l.teams.Upsert(ctx, tx, &store.Team{
			TeamSlug:      slug,
			ConferenceKey: conf.Key,
		}); err != nil {
			return nil, &LoadError{Op: "team upsert", Err: err}
		}
	}

	identities, err := l.resolveIdentities(ctx, tx, stats, roster)
	if err != nil {
		return nil, &LoadError{Op: "identity resolution", Err: err}
	}

	result := &Result{Players: len(identities)}

	for _, row := range stats.Rows {
		stat := buildSeasonStat(stats, row, conf.Key, seasonEndYear)
		stat.PlayerID = identities[stats.Cell(row, "player_name")]
		if err := l.stats.ReplaceSeasonStat(ctx, tx, stat); err != nil {
			return nil, &LoadError{Op: "season stats", Err: err}
		}
		result.StatRows++
	}

	for _, row := range roster.Rows {
		name := roster.Cell(row, "player_name")
		playerID, ok := identities[name]
		if !ok {
			// Should not happen: every name was collected in step one.
			log.Printf("  ⚠ skipping roster row for unresolved player %q", name)
			continue
		}
		attrs := buildRosterAttrs(roster, row, conf.Key, seasonEndYear)
		attrs.PlayerID = playerID
		if err := l.stats.ReplaceRosterAttrs(ctx, tx, attrs); err != nil {
			return nil, &LoadError{Op: "roster attrs", Err: err}
		}
		result.RosterRows++
	}

	if err := tx.Commit(); err != nil {
		return nil, &LoadError{Op: "commit", Err: err}
	}

	return result, nil
}

// resolveIdentities maps every distinct player name in either table to a
// player identity, creating unseen names. Names are processed in sorted order
// so re-runs assign identities deterministically.
func (l *Loader) resolveIdentities(ctx context.Context, tx *sql.Tx, stats, roster *table.Table) (map[string]int, error) {
	names := CollectNames(stats, roster)

	identities := make(map[string]int, len(names))
	for _, name := range names {
		id, err := l.players.GetOrCreate(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		identities[name] = id
	}
	return identities, nil
}

// CollectNames returns the sorted set of distinct player names appearing in
// either table.
func CollectNames(tables ...*table.Table) []string {
	set := make(map[string]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			if name := t.Cell(row, "player_name"); name != "" {
				set[name] = true
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// teamSlugs returns the sorted set of distinct team slugs referenced by
// either table.
func teamSlugs(tables ...*table.Table) []string {
	set := make(map[string]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			if slug := t.Cell(row, "team_slug"); slug != "" {
				set[slug] = true
			}
		}
	}

	slugs := make([]string, 0, len(set))
	for slug := range set {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func buildSeasonStat(t *table.Table, row []string, conferenceKey string, seasonEndYear int) *store.PlayerSeasonStat {
	return &store.PlayerSeasonStat{
		TeamSlug:      t.Cell(row, "team_slug"),
		ConferenceKey: conferenceKey,
		SeasonEndYear: seasonEndYear,
		Games:         nullFloat(t.Cell(row, "g")),
		Minutes:       nullFloat(t.Cell(row, "mp")),
		Points:        nullFloat(t.Cell(row, "pts")),
		Rebounds:      nullFloat(t.Cell(row, "reb")),
		Assists:       nullFloat(t.Cell(row, "ast")),
	}
}

func buildRosterAttrs(t *table.Table, row []string, conferenceKey string, seasonEndYear int) *store.PlayerRosterAttrs {
	return &store.PlayerRosterAttrs{
		TeamSlug:      t.Cell(row, "team_slug"),
		ConferenceKey: conferenceKey,
		SeasonEndYear: seasonEndYear,
		ClassYear:     nullString(t.Cell(row, "class_year")),
		Position:      nullString(t.Cell(row, "pos")),
		HeightCM:      nullInt(t.Cell(row, "height_cm")),
		WeightKG:      nullInt(t.Cell(row, "weight_kg")),
	}
}

func nullFloat(raw string) sql.NullFloat64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullInt(raw string) sql.NullInt32 {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
