package replay

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

func std() *tangent.Evaluator { return tangent.NewEvaluator(tangent.Std) }

// 1. Matching value within tolerance.
func TestReplay_ValueMatch(t *testing.T) {
	cases := []Case{{ID: "c1", Angle: tangent.FromDegrees(45), Expected: tangent.Value(1)}}

	results := Replay(cases, std(), 0)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Action != ActionMatch {
		t.Errorf("expected match, got %s (%s)", results[0].Action, results[0].Reason)
	}
}

// 2. Undefined on both sides is a match.
func TestReplay_UndefinedMatch(t *testing.T) {
	cases := []Case{{ID: "c1", Angle: tangent.FromDegrees(-90), Expected: tangent.Undefined}}
	r := Replay(cases, std(), 0)[0]
	if r.Action != ActionMatch {
		t.Errorf("expected match, got %s", r.Reason)
	}
}

// 3. Recorded undefined but evaluator now returns a value.
func TestReplay_ExpectedUndefinedGotValue(t *testing.T) {
	cases := []Case{{ID: "c1", Angle: tangent.FromDegrees(89.999), Expected: tangent.Undefined}}
	r := Replay(cases, std(), 0)[0]
	if r.Action != ActionMismatch {
		t.Fatal("expected mismatch")
	}
}

// 4. Recorded value but evaluator now says undefined.
func TestReplay_ExpectedValueGotUndefined(t *testing.T) {
	cases := []Case{{ID: "c1", Angle: tangent.FromRadians(math.Pi / 2), Expected: tangent.Value(1.6e16)}}
	r := Replay(cases, std(), 0)[0]
	if r.Action != ActionMismatch {
		t.Fatal("expected mismatch")
	}
}

// 5. Deviation beyond tolerance.
func TestReplay_DeviationMismatch(t *testing.T) {
	cases := []Case{{ID: "c1", Angle: tangent.FromDegrees(45), Expected: tangent.Value(1.01)}}
	r := Replay(cases, std(), 1e-3)[0]
	if r.Action != ActionMismatch {
		t.Fatal("expected mismatch")
	}
	if math.Abs(r.Deviation-0.01) > 1e-9 {
		t.Errorf("expected deviation 0.01, got %v", r.Deviation)
	}
}

func TestSummarize(t *testing.T) {
	cases := []Case{
		{ID: "a", Angle: tangent.FromDegrees(45), Expected: tangent.Value(1)},
		{ID: "b", Angle: tangent.FromDegrees(90), Expected: tangent.Undefined},
		{ID: "c", Angle: tangent.FromDegrees(45), Expected: tangent.Value(2)},
	}
	s := Summarize(Replay(cases, std(), 0))
	if s.Total != 3 || s.Matches != 2 || s.Mismatches != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.MaxDeviation-1) > 1e-9 {
		t.Errorf("expected max deviation 1, got %v", s.MaxDeviation)
	}
}

// 6. With no override each case replays with its recorded method.
func TestReplay_PerCaseMethod(t *testing.T) {
	want := tangent.NewEvaluator(tangent.Series).Evaluate(89.99999, true)
	cases := []Case{{ID: "s1", Angle: tangent.FromDegrees(89.99999), Method: tangent.MethodSeries, Expected: want}}

	r := Replay(cases, nil, 0)[0]
	if r.Action != ActionMatch {
		t.Errorf("expected match with recorded series method, got %s", r.Reason)
	}
	if r.Method != tangent.MethodSeries {
		t.Errorf("expected method series, got %q", r.Method)
	}

	// math.Tan differs from the series by far more than the tolerance here.
	if forced := Replay(cases, std(), 0)[0]; forced.Action != ActionMismatch {
		t.Errorf("expected mismatch when forced to math, got %s", forced.Reason)
	}
}

func TestReplay_UnknownMethodFallsBackToMath(t *testing.T) {
	cases := []Case{{ID: "r1", Angle: tangent.FromDegrees(45), Method: "remote", Expected: tangent.Value(1)}}
	r := Replay(cases, nil, 0)[0]
	if r.Action != ActionMatch || r.Method != tangent.MethodMath {
		t.Errorf("expected math match, got %s via %q", r.Reason, r.Method)
	}
}

func TestEvaluatorFor(t *testing.T) {
	for in, want := range map[string]string{
		"":       tangent.MethodMath,
		"remote": tangent.MethodMath,
		"math":   tangent.MethodMath,
		"Series": tangent.MethodSeries,
	} {
		ev, got := EvaluatorFor(in)
		if ev == nil || got != want {
			t.Errorf("EvaluatorFor(%q) = %q, want %q", in, got, want)
		}
	}
}
