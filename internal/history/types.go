package history

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// ErrNotFound is returned when an evaluation ID has no row.
var ErrNotFound = errors.New("evaluation not found")

// #region sources
const (
	SourceREPL   = "repl"
	SourceCLI    = "cli"
	SourceRPC    = "rpc"
	SourceReplay = "replay"
)

// #endregion sources

// #region record
// Record is one stored evaluation.
type Record struct {
	EvalID    string
	Input     float64
	Unit      tangent.Unit
	Method    string
	Undefined bool
	Result    float64 // zero when Undefined
	Source    string
	CreatedAt time.Time
}

// NewRecord captures an evaluation of a with the given outcome.
func NewRecord(a tangent.Angle, method string, r tangent.Result, source string) Record {
	v, ok := r.Float()
	return Record{
		Input:     a.Value(),
		Unit:      a.Unit(),
		Method:    method,
		Undefined: !ok,
		Result:    v,
		Source:    source,
	}
}

// Angle rebuilds the evaluated angle.
func (r Record) Angle() tangent.Angle {
	return tangent.NewAngle(r.Input, r.Unit)
}

// Outcome rebuilds the evaluated result.
func (r Record) Outcome() tangent.Result {
	if r.Undefined {
		return tangent.Undefined
	}
	return tangent.Value(r.Result)
}

// #endregion record
