package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"report-sync/core/config"
	"report-sync/core/database"
	"report-sync/feature/reportsync"
)

// Inspects staged files of one report: header, row count and the columns
// the destination table lacks.
//
//	go run ./cmd/debug_staged Participation
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_staged <report table>")
	}

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	var report *reportsync.Report
	for i := range cfg.Reports {
		if cfg.Reports[i].Table == os.Args[1] {
			report = &cfg.Reports[i]
		}
	}
	if report == nil {
		log.Fatalf("report %s is not configured", os.Args[1])
	}

	// Connect to DB
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	dir := cfg.Sync.StagingPath(*report)
	table := cfg.Sync.TableName(*report)
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s (%d staged files in %s) ===\n", table, len(paths), dir)
	for _, path := range paths {
		batch, err := reportsync.ReadCSV(path)
		if err != nil {
			fmt.Printf("%s: %v\n", filepath.Base(path), err)
			continue
		}
		fmt.Printf("%s: %d rows, columns=%v\n", filepath.Base(path), len(batch.Rows), batch.Columns)

		missing, err := database.MissingColumns(db, table, batch.Columns)
		if err != nil {
			fmt.Printf("  schema check failed: %v\n", err)
			continue
		}
		if len(missing) > 0 {
			fmt.Printf("  MISSING in %s: %v\n", table, missing)
		}
	}
}
