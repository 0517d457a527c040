package sportsref

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fortuna/hardwood/internal/ingest/table"
)

// SchemaError reports that the required join-key columns are missing after
// header mapping. Normalization cannot proceed for that document.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns after normalization: %s", e.Source, strings.Join(e.Missing, ", "))
}

// requiredColumns are the join keys every normalized table must carry.
var requiredColumns = []string{"player_name", "team_slug", "season_end_year"}

// Canonical column orders for normalized artifacts. Every normalized table is
// projected onto these so per-team CSVs combine cleanly even when individual
// pages drift.
var (
	perGameOutputColumns = []string{
		"team_slug", "season_end_year", "player_name",
		"g", "gs", "mp",
		"fg", "fga", "fg_pct", "fg3", "fg3a", "fg3_pct", "fg2", "fg2a", "fg2_pct",
		"efg_pct", "ft", "fta", "ft_pct",
		"orb", "drb", "reb", "ast", "stl", "blk", "tov", "pf", "pts",
	}
	rosterOutputColumns = []string{
		"team_slug", "season_end_year", "player_name",
		"class_year", "pos", "height_cm", "weight_kg",
	}
)

// perGameHeaderMap maps source per-game headers to canonical field names,
// case-insensitively. Unmapped headers are dropped.
var perGameHeaderMap = map[string]string{
	"player":          "player_name",
	"g":               "g",
	"games":           "g",
	"gs":              "gs",
	"mp":              "mp",
	"fg":              "fg",
	"fga":             "fga",
	"fg%":             "fg_pct",
	"3p":              "fg3",
	"3pa":             "fg3a",
	"3p%":             "fg3_pct",
	"2p":              "fg2",
	"2pa":             "fg2a",
	"2p%":             "fg2_pct",
	"efg%":            "efg_pct",
	"ft":              "ft",
	"fta":             "fta",
	"ft%":             "ft_pct",
	"orb":             "orb",
	"drb":             "drb",
	"trb":             "reb",
	"reb":             "reb",
	"ast":             "ast",
	"stl":             "stl",
	"blk":             "blk",
	"tov":             "tov",
	"pf":              "pf",
	"pts":             "pts",
	"team_slug":       "team_slug",
	"season_end_year": "season_end_year",
}

// rosterHeaderMap maps source roster headers to canonical field names.
var rosterHeaderMap = map[string]string{
	"player":          "player_name",
	"class":           "class_year",
	"cl":              "class_year",
	"yr":              "class_year",
	"year":            "class_year",
	"pos":             "pos",
	"position":        "pos",
	"ht":              "height_raw",
	"height":          "height_raw",
	"hgt":             "height_raw",
	"wt":              "weight_lbs",
	"weight":          "weight_lbs",
	"team_slug":       "team_slug",
	"season_end_year": "season_end_year",
}

// Normalize maps an extracted table onto canonical field names and typed
// value encodings: headers renamed many-to-one, unmapped columns dropped,
// player names trimmed (empty names excluded), roster heights and weights
// converted to metric. source names the document for error messages.
func Normalize(t *table.Table, purpose table.Purpose, source string) (*table.Table, error) {
	headerMap := perGameHeaderMap
	if purpose == table.Roster {
		headerMap = rosterHeaderMap
	}

	var cols []string
	var srcIdx []int
	seen := make(map[string]bool)
	for i, col := range t.Columns {
		canonical, ok := headerMap[strings.ToLower(strings.TrimSpace(col))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		cols = append(cols, canonical)
		srcIdx = append(srcIdx, i)
	}

	out := &table.Table{Columns: cols}

	var missing []string
	for _, req := range requiredColumns {
		if !seen[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: source, Missing: missing}
	}

	nameIdx := out.ColumnIndex("player_name")
	for _, row := range t.Rows {
		mapped := make([]string, len(cols))
		for j, i := range srcIdx {
			if i < len(row) {
				mapped[j] = strings.TrimSpace(row[i])
			}
		}
		if mapped[nameIdx] == "" {
			continue
		}
		out.Rows = append(out.Rows, mapped)
	}

	if purpose == table.Roster {
		convertColumn(out, "height_raw", "height_cm", func(raw string) string {
			if cm, ok := ParseHeight(raw); ok {
				return strconv.Itoa(cm)
			}
			return ""
		})
		convertColumn(out, "weight_lbs", "weight_kg", func(raw string) string {
			if kg, ok := ParseWeight(raw); ok {
				return strconv.Itoa(kg)
			}
			return ""
		})
		return out.Project(rosterOutputColumns), nil
	}

	return out.Project(perGameOutputColumns), nil
}

// convertColumn renames a column and rewrites its values in place. Missing
// source columns are left alone; downstream treats absence as unknown.
func convertColumn(t *table.Table, from, to string, convert func(string) string) {
	idx := t.ColumnIndex(from)
	if idx < 0 {
		return
	}
	t.Columns[idx] = to
	for _, row := range t.Rows {
		row[idx] = convert(row[idx])
	}
}

// ParseHeight converts a "feet-inches" string to centimeters. Anything that
// does not parse yields (0, false); it never fabricates a number.
func ParseHeight(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	feetStr, inchesStr, found := strings.Cut(raw, "-")
	if !found {
		return 0, false
	}

	feet, err := strconv.Atoi(strings.TrimSpace(feetStr))
	if err != nil || feet < 0 {
		return 0, false
	}
	inches, err := strconv.Atoi(strings.TrimSpace(inchesStr))
	if err != nil || inches < 0 {
		return 0, false
	}

	totalInches := feet*12 + inches
	return int(math.Round(float64(totalInches) * 2.54)), true
}

// ParseWeight converts a pounds string to kilograms, or (0, false) when the
// value is not a whole number of pounds.
func ParseWeight(raw string) (int, bool) {
	lbs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || lbs < 0 {
		return 0, false
	}
	return int(math.Round(float64(lbs) * 0.45359237)), true
}
