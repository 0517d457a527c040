package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fortuna/hardwood/internal/ingest/fetch"
	"github.com/fortuna/hardwood/internal/ingest/sportsref"
	"github.com/fortuna/hardwood/internal/ingest/table"
)

// Manual utility to verify fetch + extraction against one live team page.
// Usage: go run scripts/test-extractor.go [team-slug] [season-end-year]
func main() {
	log.Println("Testing sports-reference extractor")
	log.Println("==================================")

	slug := "troy"
	if len(os.Args) > 1 {
		slug = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := fetch.NewClient(time.Second)
	defer client.Close()

	log.Printf("\n1. Fetching %s...", slug)
	htmlContent, url, err := client.FetchTeamPage(ctx, slug, 2025)
	if err != nil {
		log.Fatalf("Failed to fetch page: %v", err)
	}
	log.Printf("✓ Retrieved %s (%d bytes)", url, len(htmlContent))

	for _, sig := range []table.Signature{table.PerGameSignature(), table.RosterSignature()} {
		log.Printf("\n2. Extracting %s table...", sig.Purpose)
		tbl, err := sportsref.ExtractTable(htmlContent, url, slug, 2025, sig)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
		log.Printf("✓ Extracted %d columns, %d rows", len(tbl.Columns), len(tbl.Rows))

		normalized, err := sportsref.Normalize(tbl, sig.Purpose, url)
		if err != nil {
			log.Fatalf("Normalization failed: %v", err)
		}
		log.Printf("✓ Normalized to %v", normalized.Columns)
		for i, row := range normalized.Rows {
			if i >= 3 {
				log.Printf("  ... %d more rows", len(normalized.Rows)-3)
				break
			}
			log.Printf("  %v", row)
		}
	}

	log.Println("\n✓ Extractor working")
}
