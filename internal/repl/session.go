// Package repl implements the interactive tan(x) prompt: it parses lines,
// evaluates through a Backend and renders the reply. Terminal handling lives in
// cmd/tancalc.
package repl

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/logging"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region messages
const (
	Welcome      = "Welcome to the tan(x) Calculator!"
	ExitHint     = "Type 'exit' to quit."
	Goodbye      = "Exiting the calculator. Goodbye!"
	InvalidInput = "Invalid input. Please enter a valid real number."
	Cleared      = "Input cleared."
	helpText     = `Enter a real number, optionally followed by a unit: 45 deg, 45°, 1.2 rad.
Commands:
  deg | rad     set the default unit
  reset         restore the default unit
  history [n]   show the last n evaluations
  help          show this text
  exit | quit   leave`
)

// #endregion messages

// #region backend
// Backend evaluates an angle. *remote.Client satisfies it, as does Local.
type Backend interface {
	Evaluate(ctx context.Context, a tangent.Angle) (tangent.Result, error)
}

// Local adapts an in-process evaluator to Backend.
type Local struct {
	Evaluator *tangent.Evaluator
}

func (l Local) Evaluate(_ context.Context, a tangent.Angle) (tangent.Result, error) {
	return l.Evaluator.EvaluateAngle(a), nil
}

// #endregion backend

// #region session
// Options configures a Session. Store is optional; without it history and
// provenance are off.
type Options struct {
	Backend     Backend
	DefaultUnit tangent.Unit
	Precision   int
	Method      string
	Source      string
	Store       *history.Store
}

// Session holds one interactive run. It is not safe for concurrent use.
type Session struct {
	opts Options
	unit tangent.Unit
	err  error // failure of the last handled line
}

// NewSession starts a session and logs session_start when a store is present.
func NewSession(opts Options) *Session {
	if opts.Source == "" {
		opts.Source = history.SourceREPL
	}
	s := &Session{opts: opts, unit: opts.DefaultUnit}
	s.logEvent(logging.Entry{Event: logging.EventSessionStart, Reason: "unit=" + s.unit.String()})
	return s
}

// Err returns why the last handled line failed: invalid input or a backend
// error. It is nil after a successful line or a command.
func (s *Session) Err() error { return s.err }

// Unit returns the unit applied to bare numbers.
func (s *Session) Unit() tangent.Unit { return s.unit }

// Banner is printed before the first prompt.
func (s *Session) Banner() string {
	return fmt.Sprintf("%s\n%s\nDefault unit: %s", Welcome, ExitHint, unitLabel(s.unit))
}

// Prompt is the input prompt for the current unit.
func (s *Session) Prompt() string {
	return fmt.Sprintf("x (%s)> ", s.unit)
}

// Close logs session_end.
func (s *Session) Close() {
	s.logEvent(logging.Entry{Event: logging.EventSessionEnd})
}

// #endregion session

// #region handle
// Handle processes one input line and returns the text to show. done is true
// when the user asked to leave. Blank lines produce no output.
func (s *Session) Handle(ctx context.Context, line string) (out string, done bool) {
	s.err = nil
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	fields := strings.Fields(strings.ToLower(line))
	switch fields[0] {
	case "exit", "quit":
		return Goodbye, true
	case "help", "?":
		return helpText, false
	case "reset":
		s.unit = s.opts.DefaultUnit
		s.logEvent(logging.Entry{Event: logging.EventReset})
		return Cleared, false
	case "history":
		return s.history(fields[1:]), false
	}
	if len(fields) == 1 {
		if u, err := tangent.ParseUnit(fields[0]); err == nil {
			s.unit = u
			return "Unit set to " + unitLabel(u) + ".", false
		}
	}

	return s.evaluate(ctx, line), false
}

func (s *Session) evaluate(ctx context.Context, line string) string {
	a, err := tangent.ParseInput(line, s.unit)
	if err != nil {
		detail, _ := json.Marshal(logging.EvaluationDetail{Raw: line, Unit: s.unit.String(), Method: s.opts.Method})
		s.logEvent(logging.Entry{Event: logging.EventInvalidInput, DetailJSON: string(detail), Reason: err.Error()})
		s.err = err
		return InvalidInput
	}

	r, err := s.opts.Backend.Evaluate(ctx, a)
	if err != nil {
		log.Printf("evaluate %s: %v", a, err)
		s.err = fmt.Errorf("evaluate %s: %w", a, err)
		return "Error: " + err.Error()
	}

	s.record(line, a, r)
	return "tan(x) = " + r.Format(s.opts.Precision)
}

// #endregion handle

// #region history
func (s *Session) history(args []string) string {
	if s.opts.Store == nil {
		return "History is disabled."
	}
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return "Usage: history [n]"
		}
		n = v
	}
	recs, err := s.opts.Store.Recent(n)
	if err != nil {
		log.Printf("history: %v", err)
		s.err = err
		return "Error: " + err.Error()
	}
	if len(recs) == 0 {
		return "No evaluations yet."
	}

	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  tan(%s) = %s  [%s]",
			rec.CreatedAt.Local().Format("15:04:05"), rec.Angle(), rec.Outcome().Format(s.opts.Precision), rec.Method)
	}
	return b.String()
}

// #endregion history

// #region provenance
func (s *Session) record(raw string, a tangent.Angle, r tangent.Result) {
	if s.opts.Store == nil {
		return
	}
	rec, err := s.opts.Store.Save(history.NewRecord(a, s.opts.Method, r, s.opts.Source))
	if err != nil {
		log.Printf("record evaluation: %v", err)
		return
	}

	detail := logging.EvaluationDetail{
		Raw:       raw,
		Input:     a.Value(),
		Unit:      a.Unit().String(),
		Radians:   a.Radians(),
		Method:    s.opts.Method,
		Undefined: r.IsUndefined(),
	}
	event := logging.EventUndefined
	if v, ok := r.Float(); ok {
		detail.Result = &v
		event = logging.EventEvaluate
	}
	detailJSON, _ := json.Marshal(detail)
	s.logEvent(logging.Entry{EvalID: rec.EvalID, Event: event, DetailJSON: string(detailJSON)})
}

func (s *Session) logEvent(e logging.Entry) {
	db := s.db()
	if db == nil {
		return
	}
	if err := logging.LogEvent(db, e); err != nil {
		log.Printf("logging error: %v", err)
	}
}

func (s *Session) db() *sql.DB {
	if s.opts.Store == nil {
		return nil
	}
	return s.opts.Store.DB()
}

// #endregion provenance

func unitLabel(u tangent.Unit) string {
	if u == tangent.Degrees {
		return "degrees"
	}
	return "radians"
}
