package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/hardwood/internal/store"
)

type execCall struct {
	query string
	args  []interface{}
}

// fakeQuerier records executed statements so write-path SQL can be checked
// without a database.
type fakeQuerier struct {
	execs []execCall
}

func (f *fakeQuerier) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return nil, nil
}

func (f *fakeQuerier) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeQuerier) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func TestReplaceSeasonStatIsIdempotent(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewStatsRepository(nil)

	stat := &store.PlayerSeasonStat{
		PlayerID:      7,
		TeamSlug:      "troy",
		ConferenceKey: "sun-belt",
		SeasonEndYear: 2025,
		Points:        sql.NullFloat64{Float64: 18.2, Valid: true},
	}

	require.NoError(t, repo.ReplaceSeasonStat(context.Background(), q, stat))
	require.NoError(t, repo.ReplaceSeasonStat(context.Background(), q, stat))

	require.Len(t, q.execs, 2)
	assert.Equal(t, q.execs[0], q.execs[1], "re-running a load issues the identical statement")

	// The statement replaces at the natural key instead of erroring, so the
	// second run converges on the same row.
	assert.Contains(t, q.execs[0].query, "ON CONFLICT (player_id, team_slug, season_end_year) DO UPDATE")
	assert.Equal(t, []interface{}{
		7, "troy", "sun-belt", 2025,
		stat.Games, stat.Minutes, stat.Points, stat.Rebounds, stat.Assists,
	}, q.execs[0].args)
}

func TestReplaceRosterAttrsIsIdempotent(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewStatsRepository(nil)

	attrs := &store.PlayerRosterAttrs{
		PlayerID:      7,
		TeamSlug:      "troy",
		ConferenceKey: "sun-belt",
		SeasonEndYear: 2025,
		HeightCM:      sql.NullInt32{Int32: 196, Valid: true},
	}

	require.NoError(t, repo.ReplaceRosterAttrs(context.Background(), q, attrs))
	require.NoError(t, repo.ReplaceRosterAttrs(context.Background(), q, attrs))

	require.Len(t, q.execs, 2)
	assert.Equal(t, q.execs[0], q.execs[1])
	assert.Contains(t, q.execs[0].query, "ON CONFLICT (player_id, team_slug, season_end_year) DO UPDATE")
}

func TestConferenceAndTeamUpsertsNeverOverwrite(t *testing.T) {
	q := &fakeQuerier{}

	confs := NewConferenceRepository(nil)
	require.NoError(t, confs.Upsert(context.Background(), q, &store.Conference{ConferenceKey: "sun-belt", Name: "Sun Belt Conference"}))

	teams := NewTeamRepository(nil)
	require.NoError(t, teams.Upsert(context.Background(), q, &store.Team{TeamSlug: "troy", ConferenceKey: "sun-belt"}))

	require.Len(t, q.execs, 2)
	assert.Contains(t, q.execs[0].query, "ON CONFLICT (conference_key) DO NOTHING")
	assert.Contains(t, q.execs[1].query, "ON CONFLICT (team_slug) DO NOTHING")
}
