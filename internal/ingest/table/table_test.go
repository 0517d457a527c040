package table

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumnLookup(t *testing.T) {
	tbl := &Table{
		Columns: []string{"team_slug", "season_end_year", "Player", "G"},
		Rows:    [][]string{{"troy", "2025", "John Smith", "31"}},
	}

	assert.Equal(t, 2, tbl.ColumnIndex("player"))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
	assert.True(t, tbl.HasColumn("G"))
	assert.Equal(t, "John Smith", tbl.Cell(tbl.Rows[0], "Player"))
	assert.Equal(t, "", tbl.Cell(tbl.Rows[0], "missing"))
}

func TestTableProject(t *testing.T) {
	tbl := &Table{
		Columns: []string{"player_name", "pts", "reb"},
		Rows: [][]string{
			{"John Smith", "18.2", "5.1"},
			{"Jane Roe", "11.0", "7.4"},
		},
	}

	out := tbl.Project([]string{"player_name", "reb", "ast"})

	assert.Equal(t, []string{"player_name", "reb", "ast"}, out.Columns)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, []string{"John Smith", "5.1", ""}, out.Rows[0])
	assert.Equal(t, []string{"Jane Roe", "7.4", ""}, out.Rows[1])
}

func TestTableAppend(t *testing.T) {
	a := &Table{Columns: []string{"player_name", "pts"}, Rows: [][]string{{"A", "1"}}}
	b := &Table{Columns: []string{"player_name", "pts"}, Rows: [][]string{{"B", "2"}}}

	require.NoError(t, a.Append(b))
	assert.Len(t, a.Rows, 2)

	c := &Table{Columns: []string{"player_name", "reb"}}
	assert.Error(t, a.Append(c))
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "artifact.csv")

	tbl := &Table{
		Columns: []string{"team_slug", "season_end_year", "player_name", "pts"},
		Rows: [][]string{
			{"troy", "2025", "John Smith", "18.2"},
			{"troy", "2025", "Jane, The Elder", ""},
		},
	}

	require.NoError(t, tbl.WriteCSV(path))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, got.Columns)
	assert.Equal(t, tbl.Rows, got.Rows)
}

func TestLayoutPaths(t *testing.T) {
	l := Layout{DataDir: "data"}

	assert.Equal(t, "2024-2025", SeasonLabel(2025))
	assert.Equal(t,
		filepath.Join("data", "raw", "sun_belt", "2024-2025", "troy_2025.html"),
		l.RawPath("sun_belt", "troy", 2025))
	assert.Equal(t,
		filepath.Join("data", "intermediate", "sun_belt", "2024-2025", "troy_2025_per_game.csv"),
		l.TeamCSVPath("sun_belt", "troy", 2025, PerGame))
	assert.Equal(t,
		filepath.Join("data", "intermediate", "sun_belt", "2024-2025", "sun-belt_2025_roster_all_teams.csv"),
		l.CombinedCSVPath("sun_belt", "sun-belt", 2025, Roster))
}
