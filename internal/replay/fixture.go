package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Method      string        `json:"method,omitempty"`
	Tolerance   float64       `json:"tolerance,omitempty"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one input with its expected outcome.
type FixtureCase struct {
	ID     string        `json:"id"`
	Input  float64       `json:"input"`
	Unit   string        `json:"unit"`
	Method string        `json:"method,omitempty"` // overrides Fixture.Method
	Expect FixtureExpect `json:"expect"`
}

// FixtureExpect holds either undefined=true or a value.
type FixtureExpect struct {
	Undefined bool     `json:"undefined,omitempty"`
	Value     *float64 `json:"value,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the fixture as indented JSON.
func (f *Fixture) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToCase converts a FixtureCase to a domain Case.
func (fc *FixtureCase) ToCase() (Case, error) {
	unit, err := tangent.ParseUnit(fc.Unit)
	if err != nil {
		return Case{}, fmt.Errorf("case %s: %w", fc.ID, err)
	}
	c := Case{ID: fc.ID, Angle: tangent.NewAngle(fc.Input, unit), Method: fc.Method}
	switch {
	case fc.Expect.Undefined:
		c.Expected = tangent.Undefined
	case fc.Expect.Value != nil:
		c.Expected = tangent.Value(*fc.Expect.Value)
	default:
		return Case{}, fmt.Errorf("case %s: expect needs undefined or value", fc.ID)
	}
	return c, nil
}

// ToCases converts all fixture cases. Cases without a method take the
// fixture's.
func (f *Fixture) ToCases() ([]Case, error) {
	cases := make([]Case, len(f.Cases))
	for i := range f.Cases {
		c, err := f.Cases[i].ToCase()
		if err != nil {
			return nil, err
		}
		if c.Method == "" {
			c.Method = f.Method
		}
		cases[i] = c
	}
	return cases, nil
}

// Evaluator builds the evaluator named by the fixture's method.
func (f *Fixture) Evaluator() (*tangent.Evaluator, error) {
	fn, err := tangent.LookupFunc(f.Method)
	if err != nil {
		return nil, err
	}
	return tangent.NewEvaluator(fn), nil
}

// #endregion fixture-loader

// #region from-records

// FromRecords builds a fixture from stored evaluations. records are expected
// newest first, as history.Store.Recent returns them; cases come out oldest
// first. Each case keeps its record's method when it is a local one; the
// fixture method is set only when every record shares one.
func FromRecords(description string, records []history.Record) *Fixture {
	f := &Fixture{Description: description, Cases: make([]FixtureCase, 0, len(records))}

	method := ""
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if i == len(records)-1 {
			method = rec.Method
		} else if rec.Method != method {
			method = ""
		}

		fc := FixtureCase{ID: rec.EvalID, Input: rec.Input, Unit: rec.Unit.String(), Method: localMethod(rec.Method)}
		if rec.Undefined {
			fc.Expect.Undefined = true
		} else {
			v := rec.Result
			fc.Expect.Value = &v
		}
		f.Cases = append(f.Cases, fc)
	}
	f.Method = localMethod(method)
	return f
}

// localMethod drops method names that cannot be replayed in process.
func localMethod(name string) string {
	if _, err := tangent.LookupFunc(name); err != nil {
		return ""
	}
	return name
}

// FromRecord converts one stored evaluation into a replay case.
func FromRecord(rec history.Record) Case {
	return Case{ID: rec.EvalID, Angle: rec.Angle(), Method: rec.Method, Expected: rec.Outcome()}
}

// #endregion from-records
