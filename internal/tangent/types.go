package tangent

import (
	"errors"
	"math"
	"strconv"
)

// #region errors
var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrInvalidNumber = errors.New("input is not a real number")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnknownMethod = errors.New("unknown tangent method")
)

// #endregion errors

// #region unit
// Unit tags an angle as radians or degrees.
type Unit int

const (
	Radians Unit = iota
	Degrees
)

func (u Unit) String() string {
	if u == Degrees {
		return "deg"
	}
	return "rad"
}

// #endregion unit

// #region angle
// Angle is a value plus its unit. The zero Angle is 0 radians.
type Angle struct {
	value float64
	unit  Unit
}

// NewAngle builds an Angle from a raw value and unit.
func NewAngle(value float64, unit Unit) Angle {
	return Angle{value: value, unit: unit}
}

func FromRadians(v float64) Angle { return Angle{value: v, unit: Radians} }
func FromDegrees(v float64) Angle { return Angle{value: v, unit: Degrees} }

// Value returns the angle as it was given, in its own unit.
func (a Angle) Value() float64 { return a.value }
func (a Angle) Unit() Unit      { return a.unit }
func (a Angle) InDegrees() bool { return a.unit == Degrees }

// Radians returns the radian-normalized value.
func (a Angle) Radians() float64 {
	if a.unit == Degrees {
		return a.value * (math.Pi / 180)
	}
	return a.value
}

func (a Angle) String() string {
	return strconv.FormatFloat(a.value, 'g', -1, 64) + " " + a.unit.String()
}

// #endregion angle

// #region result
// Result is either a tangent value or Undefined.
type Result struct {
	value   float64
	defined bool
}

// Undefined is the result at an asymptote.
var Undefined = Result{}

// Value wraps a computed tangent.
func Value(v float64) Result {
	return Result{value: v, defined: true}
}

func (r Result) IsUndefined() bool { return !r.defined }

// Float returns the tangent and true, or 0 and false when undefined.
func (r Result) Float() (float64, bool) {
	return r.value, r.defined
}

// Format renders the value with prec fractional digits, or "undefined".
func (r Result) Format(prec int) string {
	if !r.defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.value, 'f', prec, 64)
}

func (r Result) String() string { return r.Format(6) }

// #endregion result
