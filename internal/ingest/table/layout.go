package table

import (
	"fmt"
	"path/filepath"
)

// Layout derives deterministic artifact paths under a data directory so every
// stage can find the previous stage's output without re-running it.
//
//	raw pages      data/raw/<subdir>/<label>/<slug>_<year>.html
//	per-team CSVs  data/intermediate/<subdir>/<label>/<slug>_<year>_<purpose>.csv
//	combined CSVs  data/intermediate/<subdir>/<label>/<key>_<year>_<purpose>_all_teams.csv
type Layout struct {
	DataDir string
}

// SeasonLabel renders a season-end year as its span, e.g. 2025 -> "2024-2025".
func SeasonLabel(seasonEndYear int) string {
	return fmt.Sprintf("%d-%d", seasonEndYear-1, seasonEndYear)
}

// RawDir returns the directory holding raw fetched pages.
func (l Layout) RawDir(subdir string, seasonEndYear int) string {
	return filepath.Join(l.DataDir, "raw", subdir, SeasonLabel(seasonEndYear))
}

// RawPath returns the raw page path for one team season.
func (l Layout) RawPath(subdir, slug string, seasonEndYear int) string {
	return filepath.Join(l.RawDir(subdir, seasonEndYear), fmt.Sprintf("%s_%d.html", slug, seasonEndYear))
}

// IntermediateDir returns the directory holding tabular artifacts.
func (l Layout) IntermediateDir(subdir string, seasonEndYear int) string {
	return filepath.Join(l.DataDir, "intermediate", subdir, SeasonLabel(seasonEndYear))
}

// TeamCSVPath returns the per-team artifact path for one purpose.
func (l Layout) TeamCSVPath(subdir, slug string, seasonEndYear int, purpose Purpose) string {
	return filepath.Join(l.IntermediateDir(subdir, seasonEndYear),
		fmt.Sprintf("%s_%d_%s.csv", slug, seasonEndYear, purpose))
}

// CombinedCSVPath returns the conference-wide artifact path for one purpose.
func (l Layout) CombinedCSVPath(subdir, conferenceKey string, seasonEndYear int, purpose Purpose) string {
	return filepath.Join(l.IntermediateDir(subdir, seasonEndYear),
		fmt.Sprintf("%s_%d_%s_all_teams.csv", conferenceKey, seasonEndYear, purpose))
}
