// Package verify runs the tangent evaluator's invariants as a live self-check,
// so a configured method can be validated before it serves requests.
package verify

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region harness
// Harness checks an evaluator against the tangent invariants.
type Harness struct {
	config Config
	ev     *tangent.Evaluator
}

// NewHarness creates a harness for ev with the given configuration.
func NewHarness(config Config, ev *tangent.Evaluator) *Harness {
	return &Harness{config: config, ev: ev}
}

// Run evaluates every check and returns pass/fail with metrics.
func (h *Harness) Run() Result {
	tol := h.config.Tolerance
	checks := []struct {
		name  string
		value float64
		pass  func(float64) bool
	}{
		{"zero", h.zero(), within(tol)},
		{"known_values", h.knownValues(), within(tol)},
		{"asymptotes_flagged", h.asymptotesMissed(), isZero},
		{"near_miss_defined", h.nearMissesFlagged(), isZero},
		{"periodicity", h.periodicity(), within(tol)},
		{"odd_symmetry", h.oddSymmetry(), within(tol)},
		{"asymptote_sign_flip", h.signFlip(), func(v float64) bool { return v > h.config.AsymptoteMagnitude }},
		{"large_magnitude", h.largeMagnitude(), within(tol)},
	}

	var metrics []Metric
	var failReasons []string
	for _, c := range checks {
		pass := c.pass(c.value)
		metrics = append(metrics, Metric{Name: c.name, Value: c.value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, fmt.Sprintf("%s = %g", c.name, c.value))
		}
	}

	reason := "all checks passed"
	if len(failReasons) == 1 {
		reason = fmt.Sprintf("check failed: %s", failReasons[0])
	} else if len(failReasons) > 1 {
		reason = fmt.Sprintf("%d checks failed: %s", len(failReasons), strings.Join(failReasons, "; "))
	}

	return Result{
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion harness

// #region checks
func (h *Harness) zero() float64 {
	return math.Max(
		deviation(h.ev.Evaluate(0, false), 0),
		deviation(h.ev.Evaluate(0, true), 0),
	)
}

func (h *Harness) knownValues() float64 {
	worst := 0.0
	for _, c := range []struct {
		v    float64
		deg  bool
		want float64
	}{
		{math.Pi / 4, false, 1},
		{45, true, 1},
		{-math.Pi / 4, false, -1},
		{-45, true, -1},
	} {
		worst = math.Max(worst, deviation(h.ev.Evaluate(c.v, c.deg), c.want))
	}
	return worst
}

func (h *Harness) asymptotesMissed() float64 {
	missed := 0
	for _, a := range []tangent.Angle{
		tangent.FromDegrees(90),
		tangent.FromDegrees(-90),
		tangent.FromDegrees(270),
		tangent.FromDegrees(450),
		tangent.FromRadians(math.Pi / 2),
		tangent.FromRadians(-math.Pi / 2),
	} {
		if !h.ev.EvaluateAngle(a).IsUndefined() {
			missed++
		}
	}
	return float64(missed)
}

func (h *Harness) nearMissesFlagged() float64 {
	flagged := 0
	for _, a := range []tangent.Angle{
		tangent.FromDegrees(89.999),
		tangent.FromRadians(math.Pi/2 - 1e-9),
	} {
		if h.ev.EvaluateAngle(a).IsUndefined() {
			flagged++
		}
	}
	return float64(flagged)
}

func (h *Harness) periodicity() float64 {
	worst := 0.0
	for _, x := range h.config.Samples {
		worst = math.Max(worst, distance(h.ev.Evaluate(x, false), h.ev.Evaluate(x+math.Pi, false)))
		d := x * 50
		worst = math.Max(worst, distance(h.ev.Evaluate(d, true), h.ev.Evaluate(d+180, true)))
	}
	return worst
}

func (h *Harness) oddSymmetry() float64 {
	worst := 0.0
	for _, x := range h.config.Samples {
		pos, neg := h.ev.Evaluate(x, false), h.ev.Evaluate(-x, false)
		worst = math.Max(worst, negDistance(pos, neg))
		pos, neg = h.ev.Evaluate(x*50, true), h.ev.Evaluate(-x*50, true)
		worst = math.Max(worst, negDistance(pos, neg))
	}
	return worst
}

// signFlip returns the smaller magnitude on either side of 90 degrees, or 0
// when the signs are not positive-then-negative.
func (h *Harness) signFlip() float64 {
	below, okB := h.ev.Evaluate(89.999, true).Float()
	above, okA := h.ev.Evaluate(90.001, true).Float()
	if !okB || !okA || below <= 0 || above >= 0 {
		return 0
	}
	return math.Min(below, -above)
}

func (h *Harness) largeMagnitude() float64 {
	x := h.config.LargeInput
	return deviation(h.ev.Evaluate(x, false), math.Tan(x))
}

// #endregion checks

// #region helpers
func deviation(r tangent.Result, want float64) float64 {
	v, ok := r.Float()
	if !ok {
		return math.Inf(1)
	}
	return math.Abs(v - want)
}

func distance(a, b tangent.Result) float64 {
	bv, ok := b.Float()
	if !ok {
		return math.Inf(1)
	}
	return deviation(a, bv)
}

func negDistance(pos, neg tangent.Result) float64 {
	nv, ok := neg.Float()
	if !ok {
		return math.Inf(1)
	}
	return deviation(pos, -nv)
}

func within(tol float64) func(float64) bool {
	return func(v float64) bool { return v <= tol }
}

func isZero(v float64) bool { return v == 0 }

// #endregion helpers
