package sportsref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fortuna/hardwood/internal/ingest/table"
)

// NoTableError reports that no table on a page matched the signature. It is
// recoverable per document: the caller logs it and moves on to the next team.
type NoTableError struct {
	Source  string
	Purpose table.Purpose
}

func (e *NoTableError) Error() string {
	return fmt.Sprintf("no %s table found in %s", e.Purpose, e.Source)
}

// nonPlayerLabels are player-column values that mark summary rows, not
// players. Such rows are dropped from per-game tables before normalization.
var nonPlayerLabels = map[string]bool{
	"Team":        true,
	"Team Totals": true,
	"Opponents":   true,
	"Opponent":    true,
}

// ExtractTable scans every table embedded in the page, including ones the
// site ships inside HTML comments, and returns the first that matches the
// signature, tagged with leading team_slug and season_end_year columns.
func ExtractTable(htmlContent, source, teamSlug string, seasonEndYear int, sig table.Signature) (*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	for _, sel := range collectTables(doc) {
		tbl := parseTable(sel)
		if tbl == nil || !sig.Matches(tbl.Columns) {
			continue
		}
		if sig.Purpose == table.PerGame {
			dropNonPlayerRows(tbl)
		}
		injectMetadata(tbl, teamSlug, seasonEndYear)
		return tbl, nil
	}

	return nil, &NoTableError{Source: source, Purpose: sig.Purpose}
}

// collectTables gathers candidate tables from the live DOM and from comment
// nodes. Sports-reference wraps all but the first table of a page in HTML
// comments and reveals them with scripts, so the raw document hides most of
// its tables from a plain DOM query.
func collectTables(doc *goquery.Document) []*goquery.Selection {
	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		tables = append(tables, s)
	})

	for _, node := range commentNodes(doc) {
		if !strings.Contains(node.Data, "<table") {
			continue
		}
		frag, err := goquery.NewDocumentFromReader(strings.NewReader(node.Data))
		if err != nil {
			continue
		}
		frag.Find("table").Each(func(_ int, s *goquery.Selection) {
			tables = append(tables, s)
		})
	}

	return tables
}

func commentNodes(doc *goquery.Document) []*html.Node {
	var comments []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	return comments
}

// parseTable converts a <table> selection into a generic Table. The last
// thead row is the header; over-header grouping rows above it are ignored.
func parseTable(sel *goquery.Selection) *table.Table {
	headerRow := sel.Find("thead tr").Last()
	headless := headerRow.Length() == 0
	if headless {
		headerRow = sel.Find("tr").First()
	}

	var cols []string
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cols = append(cols, strings.TrimSpace(cell.Text()))
	})
	if len(cols) == 0 {
		return nil
	}

	tbl := &table.Table{Columns: cols}

	// Without a thead the header row sits among the body rows, so skip it
	// there even when a tbody is present.
	dataRows := sel.Find("tbody tr")
	if headless || sel.Find("tbody").Length() == 0 {
		dataRows = sel.Find("tr").Slice(1, goquery.ToEnd)
	}

	dataRows.Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) == 0 {
			return
		}
		for len(row) < len(cols) {
			row = append(row, "")
		}
		tbl.Rows = append(tbl.Rows, row[:len(cols)])
	})

	return tbl
}

func dropNonPlayerRows(tbl *table.Table) {
	idx := tbl.ColumnIndex("player")
	if idx < 0 {
		return
	}

	kept := tbl.Rows[:0]
	for _, row := range tbl.Rows {
		if nonPlayerLabels[strings.TrimSpace(row[idx])] {
			continue
		}
		kept = append(kept, row)
	}
	tbl.Rows = kept
}

// injectMetadata prepends team_slug and season_end_year columns so every
// downstream artifact carries its provenance.
func injectMetadata(tbl *table.Table, teamSlug string, seasonEndYear int) {
	year := strconv.Itoa(seasonEndYear)

	tbl.Columns = append([]string{"team_slug", "season_end_year"}, tbl.Columns...)
	for i, row := range tbl.Rows {
		tbl.Rows[i] = append([]string{teamSlug, year}, row...)
	}
}
