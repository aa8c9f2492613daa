package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/logging"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to tancalc.db")
	last := flag.Int("last", 20, "show N most recent evaluations")
	id := flag.String("id", "", "show single evaluation detail")
	events := flag.Bool("events", false, "list recent evaluation_log events instead of evaluations")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/tancalc.db [--last N] [--id eval_id] [--events] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *id != "":
		err = runDetailMode(store, *id, *jsonOut)
	case *events:
		err = runEventsMode(store, *last, *jsonOut)
	default:
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	EvalID    string   `json:"eval_id"`
	Input     float64  `json:"input"`
	Unit      string   `json:"unit"`
	Method    string   `json:"method"`
	Undefined bool     `json:"undefined"`
	Result    *float64 `json:"result,omitempty"`
	Source    string   `json:"source"`
	CreatedAt string   `json:"created_at"`
}

func toRow(rec history.Record) listRow {
	r := listRow{
		EvalID:    rec.EvalID,
		Input:     rec.Input,
		Unit:      rec.Unit.String(),
		Method:    rec.Method,
		Undefined: rec.Undefined,
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if !rec.Undefined {
		v := rec.Result
		r.Result = &v
	}
	return r
}

func runListMode(store *history.Store, last int, jsonOut bool) error {
	recs, err := store.Recent(last)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no evaluations found")
		return nil
	}

	// Store returns DESC, reverse for chronological
	rows := make([]listRow, len(recs))
	for i, rec := range recs {
		rows[len(recs)-1-i] = toRow(rec)
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %14s  %-4s  %-7s  %18s  %-7s  %s\n",
		"Eval", "Input", "Unit", "Method", "Result", "Source", "Time")
	fmt.Printf("%-10s+-%14s+-%-4s+-%-7s+-%18s+-%-7s+-%s\n",
		"----------", "--------------", "----", "-------", "------------------", "-------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %14g  %-4s  %-7s  %18s  %-7s  %s\n",
			shortID(r.EvalID), r.Input, r.Unit, r.Method, resultText(r.Result), r.Source, r.CreatedAt)
	}

	n, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("\n%d of %d evaluations shown\n", len(rows), n)
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	listRow
	Radians float64      `json:"radians"`
	Events  []eventBrief `json:"events"`
}

type eventBrief struct {
	Event     string          `json:"event"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func runDetailMode(store *history.Store, evalID string, jsonOut bool) error {
	rec, err := store.Get(evalID)
	if err != nil {
		return err
	}
	entries, err := logging.ForEval(store.DB(), evalID)
	if err != nil {
		return err
	}

	out := detailOutput{listRow: toRow(rec), Radians: rec.Angle().Radians(), Events: briefs(entries)}
	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Eval:     %s\n", out.EvalID)
	fmt.Printf("Input:    %s\n", rec.Angle())
	fmt.Printf("Radians:  %.15g\n", out.Radians)
	fmt.Printf("Method:   %s\n", out.Method)
	fmt.Printf("Result:   %s\n", resultText(out.Result))
	fmt.Printf("Source:   %s\n", out.Source)
	fmt.Printf("Created:  %s\n", out.CreatedAt)

	if len(out.Events) > 0 {
		fmt.Printf("\nEvents:\n")
		for _, e := range out.Events {
			fmt.Printf("  %-20s  %-13s  %s\n", e.CreatedAt, e.Event, e.Reason)
		}
	}
	return nil
}

// #endregion detail-mode

// #region events-mode

func runEventsMode(store *history.Store, last int, jsonOut bool) error {
	entries, err := logging.Recent(store.DB(), last)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no events found")
		return nil
	}

	// chronological
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if jsonOut {
		return printJSON(briefs(entries))
	}

	fmt.Printf("%-6s  %-10s  %-13s  %-20s  %s\n", "ID", "Eval", "Event", "Time", "Reason")
	for _, e := range entries {
		eval := "—"
		if e.EvalID != "" {
			eval = shortID(e.EvalID)
		}
		fmt.Printf("%-6d  %-10s  %-13s  %-20s  %s\n",
			e.ID, eval, e.Event, e.CreatedAt.Format("2006-01-02T15:04:05Z"), e.Reason)
	}
	return nil
}

// #endregion events-mode

// #region output

func briefs(entries []logging.Entry) []eventBrief {
	out := make([]eventBrief, len(entries))
	for i, e := range entries {
		out[i] = eventBrief{
			Event:     e.Event,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if e.DetailJSON != "" && json.Valid([]byte(e.DetailJSON)) {
			out[i].Detail = json.RawMessage(e.DetailJSON)
		}
	}
	return out
}

func resultText(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.10g", *v)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
