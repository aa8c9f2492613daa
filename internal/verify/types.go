package verify

import (
	"encoding/json"
	"math"
	"strconv"
)

// #region config
// Config holds thresholds for the self-check.
type Config struct {
	Tolerance          float64   // max deviation for value checks
	AsymptoteMagnitude float64   // min |tan| one millidegree from 90
	LargeInput         float64   // radian input used for the reduction check
	Samples            []float64 // radian sample points; degree samples are scaled by 50
}

// DefaultConfig returns the thresholds the evaluator is expected to meet.
func DefaultConfig() Config {
	return Config{
		Tolerance:          1e-6,
		AsymptoteMagnitude: 1e4,
		LargeInput:         1e6,
		Samples:            []float64{-2.5, -1.2, -0.7, -0.3, 0.1, 0.45, 1.0, 1.3, 2.9},
	}
}

// #endregion config

// #region metric
// Metric captures a single check result. Value is the worst deviation seen,
// or a count of misclassified points for the asymptote checks.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// MarshalJSON writes a non-finite Value as a string such as "+Inf", which
// encoding/json cannot represent as a number.
func (m Metric) MarshalJSON() ([]byte, error) {
	type metric Metric
	if !math.IsInf(m.Value, 0) && !math.IsNaN(m.Value) {
		return json.Marshal(metric(m))
	}
	return json.Marshal(struct {
		Name  string
		Value string
		Pass  bool
	}{m.Name, strconv.FormatFloat(m.Value, 'g', -1, 64), m.Pass})
}

// #endregion metric

// #region result
// Result is the output of a self-check run.
type Result struct {
	Passed  bool
	Metrics []Metric
	Reason  string
}

// #endregion result
