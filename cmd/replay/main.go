package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/replay"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to tancalc.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	method := flag.String("method", "", "tangent method for every case (default: each case's recorded method, or math)")
	last := flag.Int("last", 100, "DB mode: replay the N most recent evaluations")
	tol := flag.Float64("tolerance", 0, "max deviation for a match (default: fixture tolerance, or 1e-6)")
	record := flag.Bool("record", false, "DB mode: store replayed results with source=replay")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/tancalc.db [--last N] [--method m] [--record]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json [--method m]")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, *method, *tol)
	} else {
		exitCode = runDBMode(*dbPath, *method, *last, *tol, *record)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path, method string, tol float64) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if tol == 0 {
		tol = f.Tolerance
	}
	if _, err := f.Evaluator(); err != nil {
		fmt.Fprintf(os.Stderr, "fixture method: %v\n", err)
		return 2
	}
	ev, err := override(method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "method: %v\n", err)
		return 2
	}
	cases, err := f.ToCases()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixture cases: %v\n", err)
		return 2
	}

	fmt.Printf("%s\n\n", f.Description)
	return printComparison(label(replay.Replay(cases, ev, tol), method))
}

// #endregion fixture-mode

// #region db-mode

func runDBMode(dbPath, method string, last int, tol float64, record bool) int {
	store, err := history.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	recs, err := store.Recent(last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load history: %v\n", err)
		return 2
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no evaluations found")
		return 2
	}

	ev, err := override(method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "method: %v\n", err)
		return 2
	}

	// Recent is newest first; replay in recorded order
	cases := make([]replay.Case, len(recs))
	for i, rec := range recs {
		cases[len(recs)-1-i] = replay.FromRecord(rec)
	}

	results := label(replay.Replay(cases, ev, tol), method)
	if record {
		for i, r := range results {
			if _, err := store.Save(history.NewRecord(cases[i].Angle, r.Method, r.Got, history.SourceReplay)); err != nil {
				fmt.Fprintf(os.Stderr, "record replay: %v\n", err)
				return 2
			}
		}
	}
	return printComparison(results)
}

// override returns the evaluator forced by --method, or nil so every case
// replays with its own recorded method.
func override(method string) (*tangent.Evaluator, error) {
	if method == "" {
		return nil, nil
	}
	fn, err := tangent.LookupFunc(method)
	if err != nil {
		return nil, err
	}
	return tangent.NewEvaluator(fn), nil
}

// label fills the method of results replayed under an override.
func label(results []replay.ReplayResult, method string) []replay.ReplayResult {
	for i := range results {
		if results[i].Method == "" {
			results[i].Method = method
		}
	}
	return results
}

// #endregion db-mode

// #region output

// printComparison outputs a comparison table and returns exit code.
func printComparison(results []replay.ReplayResult) int {
	fmt.Printf("%-12s| %-7s| %-22s| %-22s| %s\n", "Case", "Method", "Expected", "Replayed", "Match")
	fmt.Printf("%-12s+%-8s+%-22s+%-22s+%s\n",
		"------------", "--------", "-----------------------", "-----------------------", "------")

	for _, r := range results {
		match := "OK"
		if r.Action == replay.ActionMismatch {
			match = "DIFF"
		}
		fmt.Printf("%-12s| %-7s| %-22s| %-22s| %s\n", shortID(r.CaseID), r.Method, r.Expected.Format(12), r.Got.Format(12), match)
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge (max deviation %.3g)\n",
		s.Total, s.Matches, s.Mismatches, s.MaxDeviation)

	if s.Mismatches > 0 {
		return 1
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:8]
	}
	return id
}

// #endregion output
