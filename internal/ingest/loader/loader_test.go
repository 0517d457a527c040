package loader

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/hardwood/internal/ingest/table"
)

func statsTable(rows ...[]string) *table.Table {
	return &table.Table{
		Columns: []string{"team_slug", "season_end_year", "player_name", "g", "mp", "pts", "reb", "ast"},
		Rows:    rows,
	}
}

func rosterTable(rows ...[]string) *table.Table {
	return &table.Table{
		Columns: []string{"team_slug", "season_end_year", "player_name", "class_year", "pos", "height_cm", "weight_kg"},
		Rows:    rows,
	}
}

func TestCollectNames(t *testing.T) {
	stats := statsTable(
		[]string{"troy", "2025", "John Smith", "31", "32.1", "18.2", "4.2", "3.8"},
		[]string{"troy", "2025", "Jane Roe", "29", "28.4", "11.0", "7.9", "1.1"},
		[]string{"troy", "2025", "", "1", "", "", "", ""},
	)
	roster := rosterTable(
		[]string{"troy", "2025", "John Smith", "SR", "G", "196", "93"},
		[]string{"troy", "2025", "J. Smith", "FR", "F", "", ""},
	)

	names := CollectNames(stats, roster)

	// Sorted, de-duplicated across tables; names that differ textually stay
	// distinct, empty names never count.
	assert.Equal(t, []string{"J. Smith", "Jane Roe", "John Smith"}, names)
}

func TestCollectNamesNilTables(t *testing.T) {
	assert.Empty(t, CollectNames(nil, nil))
	assert.Equal(t, []string{"A"}, CollectNames(nil, statsTable([]string{"troy", "2025", "A", "", "", "", "", ""})))
}

func TestTeamSlugs(t *testing.T) {
	stats := statsTable(
		[]string{"troy", "2025", "A", "", "", "", "", ""},
		[]string{"south-alabama", "2025", "B", "", "", "", "", ""},
	)
	roster := rosterTable(
		[]string{"marshall", "2025", "C", "", "", "", ""},
		[]string{"troy", "2025", "A", "", "", "", ""},
	)

	assert.Equal(t, []string{"marshall", "south-alabama", "troy"}, teamSlugs(stats, roster))
}

func TestBuildSeasonStat(t *testing.T) {
	tbl := statsTable([]string{"troy", "2025", "John Smith", "31", "32.1", "18.2", "4.2", ""})

	stat := buildSeasonStat(tbl, tbl.Rows[0], "sun-belt", 2025)

	assert.Equal(t, "troy", stat.TeamSlug)
	assert.Equal(t, "sun-belt", stat.ConferenceKey)
	assert.Equal(t, 2025, stat.SeasonEndYear)
	require.True(t, stat.Games.Valid)
	assert.Equal(t, 31.0, stat.Games.Float64)
	assert.Equal(t, 18.2, stat.Points.Float64)
	assert.False(t, stat.Assists.Valid, "blank cell stays NULL")
}

func TestBuildRosterAttrs(t *testing.T) {
	tbl := rosterTable([]string{"troy", "2025", "John Smith", "SR", "G", "196", ""})

	attrs := buildRosterAttrs(tbl, tbl.Rows[0], "sun-belt", 2025)

	assert.Equal(t, "troy", attrs.TeamSlug)
	require.True(t, attrs.ClassYear.Valid)
	assert.Equal(t, "SR", attrs.ClassYear.String)
	assert.Equal(t, "G", attrs.Position.String)
	require.True(t, attrs.HeightCM.Valid)
	assert.Equal(t, int32(196), attrs.HeightCM.Int32)
	assert.False(t, attrs.WeightKG.Valid)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, nullFloat("").Valid)
	assert.False(t, nullFloat("n/a").Valid)
	assert.True(t, nullFloat("3.8").Valid)

	assert.False(t, nullInt("").Valid)
	assert.False(t, nullInt("6-5").Valid)
	assert.True(t, nullInt("196").Valid)

	assert.False(t, nullString("").Valid)
	assert.True(t, nullString("SR").Valid)
}

func TestLoadErrorMessage(t *testing.T) {
	plain := &LoadError{Op: "season stats", Err: errors.New("connection reset")}
	assert.Contains(t, plain.Error(), "load aborted during season stats")

	pqErr := &pq.Error{Code: "23503", Constraint: "player_season_stats_team_slug_fkey"}
	withConstraint := &LoadError{Op: "season stats", Err: pqErr}
	assert.Contains(t, withConstraint.Error(), "player_season_stats_team_slug_fkey")

	assert.ErrorIs(t, withConstraint, pqErr)
}
