package replay

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// DefaultTolerance applies when a fixture or caller leaves tolerance at zero.
const DefaultTolerance = 1e-6

// Actions recorded per case.
const (
	ActionMatch    = "match"
	ActionMismatch = "mismatch"
)

// #region types
// Case is one recorded evaluation to replay.
type Case struct {
	ID       string
	Angle    tangent.Angle
	Method   string // method the expectation was computed with
	Expected tangent.Result
}

// ReplayResult captures the outcome of replaying one case.
type ReplayResult struct {
	CaseID    string
	Method    string // method used for the replay
	Action    string // "match" | "mismatch"
	Reason    string
	Expected  tangent.Result
	Got       tangent.Result
	Deviation float64 // |got - expected| when both are defined
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total        int
	Matches      int
	Mismatches   int
	MaxDeviation float64
}

// #endregion types

// #region replay
// EvaluatorFor resolves a recorded method name. Names that are empty or not
// local ("remote") fall back to math. The returned name is the one in effect.
func EvaluatorFor(method string) (*tangent.Evaluator, string) {
	name := strings.ToLower(strings.TrimSpace(method))
	fn, err := tangent.LookupFunc(name)
	if err != nil || name == "" {
		return tangent.NewEvaluator(tangent.Std), tangent.MethodMath
	}
	return tangent.NewEvaluator(fn), name
}

// Replay runs every case and compares against the expectation. A non-nil ev
// overrides the methods; with a nil ev each case uses its own Method.
func Replay(cases []Case, ev *tangent.Evaluator, tol float64) []ReplayResult {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	results := make([]ReplayResult, 0, len(cases))

	for _, c := range cases {
		caseEv, method := ev, ""
		if caseEv == nil {
			caseEv, method = EvaluatorFor(c.Method)
		}
		got := caseEv.EvaluateAngle(c.Angle)
		r := ReplayResult{
			CaseID:   c.ID,
			Method:   method,
			Action:   ActionMatch,
			Expected: c.Expected,
			Got:      got,
		}

		want, wantOK := c.Expected.Float()
		have, haveOK := got.Float()
		switch {
		case !wantOK && !haveOK:
			r.Reason = "undefined as expected"
		case !wantOK:
			r.Action = ActionMismatch
			r.Reason = fmt.Sprintf("expected undefined, got %g", have)
		case !haveOK:
			r.Action = ActionMismatch
			r.Reason = fmt.Sprintf("expected %g, got undefined", want)
		default:
			r.Deviation = math.Abs(have - want)
			if r.Deviation > tol {
				r.Action = ActionMismatch
				r.Reason = fmt.Sprintf("deviation %.3g exceeds %.3g (expected %g, got %g)", r.Deviation, tol, want, have)
			} else {
				r.Reason = "within tolerance"
			}
		}
		results = append(results, r)
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Action {
		case ActionMatch:
			s.Matches++
		case ActionMismatch:
			s.Mismatches++
		}
		if r.Deviation > s.MaxDeviation {
			s.MaxDeviation = r.Deviation
		}
	}
	return s
}

// #endregion replay
