// Package tangent evaluates tan(x) for angles in radians or degrees and
// reports the asymptotes at odd multiples of pi/2 as undefined.
package tangent

import "math"

// #region constants
// Epsilon is the tolerance used to match an asymptote.
const Epsilon = 1e-12

// #endregion constants

// #region is-undefined
// IsUndefined reports whether tan is undefined at value, i.e. whether |value|
// lies within Epsilon of an odd multiple of 90 degrees (or pi/2 radians).
func IsUndefined(value float64, inDegrees bool) bool {
	period, half := math.Pi, math.Pi/2
	if inDegrees {
		period, half = 180, 90
	}
	mod := math.Mod(math.Abs(value), period)
	return math.Abs(mod-half) < Epsilon
}

// #endregion is-undefined

// #region evaluator
// Evaluator computes tangents with a fixed tangent function. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	tan Func
}

// NewEvaluator returns an Evaluator backed by f. A nil f means Std.
func NewEvaluator(f Func) *Evaluator {
	if f == nil {
		f = Std
	}
	return &Evaluator{tan: f}
}

// Evaluate returns tan(value) or Undefined. The asymptote check runs on the
// value in its own unit; the tangent runs on the radian value.
func (e *Evaluator) Evaluate(value float64, inDegrees bool) Result {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Undefined
	}
	if IsUndefined(value, inDegrees) {
		return Undefined
	}
	x := value
	if inDegrees {
		// tan has period 180 degrees; reducing first keeps huge inputs finite.
		x = math.Mod(value, 180) * math.Pi / 180
	}
	return Value(e.tan(x))
}

// EvaluateAngle is Evaluate for an Angle.
func (e *Evaluator) EvaluateAngle(a Angle) Result {
	return e.Evaluate(a.Value(), a.InDegrees())
}

// #endregion evaluator

// #region package-level
var std = NewEvaluator(Std)

// Evaluate computes tan(value) with math.Tan.
func Evaluate(value float64, inDegrees bool) Result {
	return std.Evaluate(value, inDegrees)
}

// #endregion package-level
