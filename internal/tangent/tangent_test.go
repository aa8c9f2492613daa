package tangent

import (
	"math"
	"testing"
)

const delta = 1e-6

func mustValue(t *testing.T, r Result) float64 {
	t.Helper()
	v, ok := r.Float()
	if !ok {
		t.Fatalf("expected a value, got undefined")
	}
	return v
}

// #region known-values
func TestEvaluate_Zero(t *testing.T) {
	if v := mustValue(t, Evaluate(0, false)); v != 0 {
		t.Errorf("tan(0 rad) = %v, want 0", v)
	}
	if v := mustValue(t, Evaluate(0, true)); v != 0 {
		t.Errorf("tan(0 deg) = %v, want 0", v)
	}
}

func TestEvaluate_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		inDegrees bool
		want      float64
	}{
		{"pi/4 rad", math.Pi / 4, false, 1},
		{"45 deg", 45, true, 1},
		{"-pi/4 rad", -math.Pi / 4, false, -1},
		{"-45 deg", -45, true, -1},
		{"180 deg", 180, true, 0},
		{"tiny rad", 1e-10, false, math.Tan(1e-10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustValue(t, Evaluate(tt.value, tt.inDegrees))
			if math.Abs(got-tt.want) > delta {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_LargeMagnitude(t *testing.T) {
	got := mustValue(t, Evaluate(1e6, false))
	if math.Abs(got-math.Tan(1e6)) > delta {
		t.Errorf("tan(1e6) = %v, want %v", got, math.Tan(1e6))
	}
}

// #endregion known-values

// #region undefined
func TestIsUndefined_Asymptotes(t *testing.T) {
	tests := []struct {
		value     float64
		inDegrees bool
	}{
		{90, true},
		{-90, true},
		{270, true},
		{450, true},
		{-630, true},
		{math.Pi / 2, false},
		{-math.Pi / 2, false},
	}
	for _, tt := range tests {
		if !IsUndefined(tt.value, tt.inDegrees) {
			t.Errorf("IsUndefined(%v, deg=%v) = false, want true", tt.value, tt.inDegrees)
		}
		if !Evaluate(tt.value, tt.inDegrees).IsUndefined() {
			t.Errorf("Evaluate(%v, deg=%v) should be undefined", tt.value, tt.inDegrees)
		}
	}
}

func TestIsUndefined_NearMisses(t *testing.T) {
	if IsUndefined(89.999, true) {
		t.Error("89.999 deg should not be undefined")
	}
	if IsUndefined(math.Pi/2-1e-9, false) {
		t.Error("pi/2 - 1e-9 rad should not be undefined")
	}
	if IsUndefined(180, true) {
		t.Error("180 deg should not be undefined")
	}
	if IsUndefined(0, false) {
		t.Error("0 rad should not be undefined")
	}
}

func TestIsUndefined_UnitMatters(t *testing.T) {
	// 90 radians is nowhere near an odd multiple of pi/2.
	if IsUndefined(90, false) {
		t.Error("90 rad should not be undefined")
	}
}

func TestEvaluate_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if !Evaluate(v, false).IsUndefined() {
			t.Errorf("Evaluate(%v) should be undefined", v)
		}
	}
}

// #endregion undefined

// #region properties
var samples = []float64{-2.5, -1.2, -0.7, -0.3, 0.1, 0.45, 1.0, 1.3, 2.9}

func TestEvaluate_Periodicity(t *testing.T) {
	for _, x := range samples {
		a := mustValue(t, Evaluate(x, false))
		b := mustValue(t, Evaluate(x+math.Pi, false))
		if math.Abs(a-b) > delta {
			t.Errorf("rad %v: tan(x)=%v tan(x+pi)=%v", x, a, b)
		}

		d := x * 50
		a = mustValue(t, Evaluate(d, true))
		b = mustValue(t, Evaluate(d+180, true))
		if math.Abs(a-b) > delta {
			t.Errorf("deg %v: tan(x)=%v tan(x+180)=%v", d, a, b)
		}
	}
}

func TestEvaluate_OddSymmetry(t *testing.T) {
	for _, x := range samples {
		for _, deg := range []bool{false, true} {
			v := x
			if deg {
				v = x * 50
			}
			pos := mustValue(t, Evaluate(v, deg))
			neg := mustValue(t, Evaluate(-v, deg))
			if math.Abs(neg+pos) > delta {
				t.Errorf("%v (deg=%v): tan(-x)=%v, -tan(x)=%v", v, deg, neg, -pos)
			}
		}
	}
}

func TestEvaluate_SignFlipAcrossAsymptote(t *testing.T) {
	below := mustValue(t, Evaluate(89.999, true))
	above := mustValue(t, Evaluate(90.001, true))
	if below < 1e4 {
		t.Errorf("tan(89.999 deg) = %v, want > 1e4", below)
	}
	if above > -1e4 {
		t.Errorf("tan(90.001 deg) = %v, want < -1e4", above)
	}
}

// #endregion properties

// #region evaluator
func TestEvaluator_NilFuncUsesStd(t *testing.T) {
	e := NewEvaluator(nil)
	got := mustValue(t, e.Evaluate(1, false))
	if got != math.Tan(1) {
		t.Errorf("got %v, want %v", got, math.Tan(1))
	}
}

func TestEvaluator_EvaluateAngle(t *testing.T) {
	e := NewEvaluator(Std)
	got := mustValue(t, e.EvaluateAngle(FromDegrees(45)))
	if math.Abs(got-1) > delta {
		t.Errorf("got %v, want 1", got)
	}
	if !e.EvaluateAngle(FromRadians(math.Pi / 2)).IsUndefined() {
		t.Error("pi/2 should be undefined")
	}
}

func TestEvaluate_HugeDegreesStayFinite(t *testing.T) {
	cases := []struct {
		deg  float64
		want float64
	}{
		{1e308, -2.0503038415792956},
		{-1e308, 2.0503038415792956},
		{math.MaxFloat64, -1.2799416321930788},
		{-math.MaxFloat64, 1.2799416321930788},
		{6e307, -28.636253282915796},
	}
	for _, c := range cases {
		got, ok := Evaluate(c.deg, true).Float()
		if !ok {
			t.Errorf("%g deg: unexpected undefined", c.deg)
			continue
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("%g deg: got non-finite %v", c.deg, got)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%g deg: got %v, want %v", c.deg, got, c.want)
		}
		if r := FromDegrees(c.deg).Radians(); math.IsInf(r, 0) {
			t.Errorf("%g deg: Radians overflowed", c.deg)
		}
	}
}

func TestAngle_Radians(t *testing.T) {
	if got := FromDegrees(180).Radians(); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("180 deg = %v rad, want pi", got)
	}
	if got := FromRadians(2).Radians(); got != 2 {
		t.Errorf("got %v, want 2", got)
	}
	if s := FromDegrees(45).String(); s != "45 deg" {
		t.Errorf("String() = %q", s)
	}
}

func TestResult_Format(t *testing.T) {
	if s := Undefined.Format(6); s != "undefined" {
		t.Errorf("got %q", s)
	}
	if s := Value(1).Format(3); s != "1.000" {
		t.Errorf("got %q", s)
	}
	if s := Value(-0.5).String(); s != "-0.500000" {
		t.Errorf("got %q", s)
	}
}

// #endregion evaluator
