package logging

import "time"

// #region events
// Event names written to evaluation_log.event.
const (
	EventSessionStart = "session_start"
	EventSessionEnd   = "session_end"
	EventEvaluate     = "evaluate"
	EventUndefined    = "undefined"
	EventInvalidInput = "invalid_input"
	EventReset        = "reset"
)

// #endregion events

// #region entry
// Entry is a single row in the evaluation_log table.
type Entry struct {
	ID         int64
	EvalID     string
	Event      string
	DetailJSON string
	Reason     string
	CreatedAt  time.Time
}

// #endregion entry

// #region evaluation-detail
// EvaluationDetail is the JSON payload of evaluate/undefined/invalid_input
// rows. It keeps the raw text and both unit views so a row can be replayed.
type EvaluationDetail struct {
	Raw       string   `json:"raw,omitempty"`
	Input     float64  `json:"input"`
	Unit      string   `json:"unit"`
	Radians   float64  `json:"radians"`
	Method    string   `json:"method"`
	Undefined bool     `json:"undefined"`
	Result    *float64 `json:"result,omitempty"`
}

// #endregion evaluation-detail
