package ingest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/hardwood/internal/config"
	"github.com/fortuna/hardwood/internal/ingest/table"
)

const rawTeamPage = `<!DOCTYPE html>
<html><body>
<table id="roster">
  <thead><tr><th>Player</th><th>Class</th><th>Pos</th><th>Ht</th><th>Wt</th></tr></thead>
  <tbody>
    <tr><td>John Smith</td><td>SR</td><td>G</td><td>6-5</td><td>205</td></tr>
    <tr><td>Jane Roe</td><td>FR</td><td>F</td><td>6-10</td><td>230</td></tr>
  </tbody>
</table>
<div id="all_per_game">
<!--
<table id="per_game">
  <thead><tr><th>Rk</th><th>Player</th><th>G</th><th>MP</th><th>TRB</th><th>AST</th><th>PTS</th></tr></thead>
  <tbody>
    <tr><th>1</th><td>John Smith</td><td>31</td><td>32.1</td><td>4.2</td><td>3.8</td><td>18.2</td></tr>
    <tr><th>2</th><td>Jane Roe</td><td>29</td><td>28.4</td><td>7.9</td><td>1.1</td><td>11.0</td></tr>
    <tr><th></th><td>Team Totals</td><td>31</td><td></td><td>36.5</td><td>13.0</td><td>74.8</td></tr>
  </tbody>
</table>
-->
</div>
</body></html>`

func testRunner(t *testing.T, slugs []string) *Runner {
	t.Helper()

	cfg := config.Config{
		DataDir:    t.TempDir(),
		FetchDelay: time.Second,
	}
	conf := config.Conference{
		Key:        "sun-belt",
		Name:       "Sun Belt",
		DataSubdir: "sun_belt",
		TeamSlugs:  slugs,
	}

	r := NewRunner(cfg, conf, 2025)
	t.Cleanup(r.Close)
	return r
}

func writeRawPage(t *testing.T, r *Runner, slug, content string) {
	t.Helper()
	path := r.layout.RawPath(r.conf.DataSubdir, slug, r.season)
	require.NoError(t, os.MkdirAll(r.layout.RawDir(r.conf.DataSubdir, r.season), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseProducesArtifacts(t *testing.T) {
	r := testRunner(t, []string{"troy"})
	writeRawPage(t, r, "troy", rawTeamPage)

	outcomes := r.Parse()
	assert.Empty(t, outcomes)

	stats, err := table.ReadCSV(r.layout.CombinedCSVPath("sun_belt", "sun-belt", 2025, table.PerGame))
	require.NoError(t, err)
	assert.Len(t, stats.Rows, 2, "summary rows excluded")
	assert.Equal(t, "John Smith", stats.Cell(stats.Rows[0], "player_name"))
	assert.Equal(t, "4.2", stats.Cell(stats.Rows[0], "reb"))

	roster, err := table.ReadCSV(r.layout.CombinedCSVPath("sun_belt", "sun-belt", 2025, table.Roster))
	require.NoError(t, err)
	assert.Len(t, roster.Rows, 2)
	assert.Equal(t, "196", roster.Cell(roster.Rows[0], "height_cm"))

	// Per-team artifacts exist too.
	_, err = table.ReadCSV(r.layout.TeamCSVPath("sun_belt", "troy", 2025, table.PerGame))
	assert.NoError(t, err)
}

func TestParseIsolatesFailingTeams(t *testing.T) {
	r := testRunner(t, []string{"troy", "south-alabama"})
	writeRawPage(t, r, "troy", rawTeamPage)
	// south-alabama has no raw page on disk.

	outcomes := r.Parse()

	require.Len(t, outcomes, 1)
	assert.Equal(t, "south-alabama", outcomes[0].TeamSlug)
	assert.Equal(t, StageExtract, outcomes[0].Stage)

	// The healthy team's rows still reach the combined artifacts.
	stats, err := table.ReadCSV(r.layout.CombinedCSVPath("sun_belt", "sun-belt", 2025, table.PerGame))
	require.NoError(t, err)
	assert.Len(t, stats.Rows, 2)
}

func TestParseReportsMissingTablesPerPurpose(t *testing.T) {
	r := testRunner(t, []string{"troy"})
	// A page with a roster but no per-game table.
	writeRawPage(t, r, "troy", `<html><body>
<table>
  <thead><tr><th>Player</th><th>Class</th></tr></thead>
  <tbody><tr><td>John Smith</td><td>SR</td></tr></tbody>
</table>
</body></html>`)

	outcomes := r.Parse()

	require.Len(t, outcomes, 1)
	assert.Equal(t, table.PerGame, outcomes[0].Purpose)
	assert.Equal(t, StageExtract, outcomes[0].Stage)

	// The roster artifact is still written.
	roster, err := table.ReadCSV(r.layout.CombinedCSVPath("sun_belt", "sun-belt", 2025, table.Roster))
	require.NoError(t, err)
	assert.Len(t, roster.Rows, 1)
}

func TestParseIsRepeatable(t *testing.T) {
	r := testRunner(t, []string{"troy"})
	writeRawPage(t, r, "troy", rawTeamPage)

	require.Empty(t, r.Parse())
	require.Empty(t, r.Parse())

	stats, err := table.ReadCSV(r.layout.CombinedCSVPath("sun_belt", "sun-belt", 2025, table.PerGame))
	require.NoError(t, err)
	assert.Len(t, stats.Rows, 2, "re-running overwrites, never duplicates")
}

func TestLoadRequiresStatsArtifact(t *testing.T) {
	r := testRunner(t, []string{"troy"})

	_, err := r.Load(context.Background(), nil)
	assert.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	o := Outcome{TeamSlug: "troy", Stage: StageExtract, Purpose: table.PerGame, Err: assert.AnError}
	assert.Contains(t, o.String(), "troy")
	assert.Contains(t, o.String(), "extract")
	assert.Contains(t, o.String(), "per_game")

	noPurpose := Outcome{TeamSlug: "troy", Stage: StageFetch, Err: assert.AnError}
	assert.NotContains(t, noPurpose.String(), "  ")
}
