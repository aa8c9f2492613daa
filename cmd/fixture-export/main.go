package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to tancalc.db")
	last := flag.Int("last", 20, "number of most recent evaluations to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	tol := flag.Float64("tolerance", replay.DefaultTolerance, "tolerance written into the fixture")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/tancalc.db --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *tol, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath string, last int, tol float64, outPath string) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	recs, err := store.Recent(last)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no evaluations found in %s", dbPath)
	}

	fmt.Printf("Found %d evaluations\n", len(recs))

	f := replay.FromRecords(fmt.Sprintf("History export: %d evaluations from %s", len(recs), dbPath), recs)
	f.Tolerance = tol
	if err := f.Save(outPath); err != nil {
		return err
	}

	fmt.Printf("Wrote fixture to %s (%d cases, method=%q)\n", outPath, len(f.Cases), f.Method)
	return nil
}

// #endregion export
