package tangent

import (
	"fmt"
	"math"
	"strings"
)

// #region func
// Func computes the tangent of a radian value.
type Func func(x float64) float64

// Std is the platform tangent.
var Std Func = math.Tan

// seriesTerms is the number of Taylor terms kept for sine and cosine.
const seriesTerms = 14

// Series computes tan(x) as the ratio of truncated Taylor series for sine and
// cosine. x is first reduced into [-pi/2, pi/2], where the series converge fast.
func Series(x float64) float64 {
	r := math.Remainder(x, math.Pi)
	r2 := r * r

	sin, term := r, r
	for n := 1; n < seriesTerms; n++ {
		term *= -r2 / float64((2*n)*(2*n+1))
		sin += term
	}

	cos := 1.0
	term = 1.0
	for n := 1; n < seriesTerms; n++ {
		term *= -r2 / float64((2*n-1)*(2*n))
		cos += term
	}
	return sin / cos
}

// #endregion func

// #region lookup
// Method names accepted by LookupFunc.
const (
	MethodMath   = "math"
	MethodSeries = "series"
)

// LookupFunc maps a method name to its tangent function.
func LookupFunc(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MethodMath:
		return Std, nil
	case MethodSeries, "taylor":
		return Series, nil
	}
	return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownMethod)
}

// #endregion lookup
