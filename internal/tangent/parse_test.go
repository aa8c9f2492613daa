package tangent

import (
	"errors"
	"testing"
)

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{
		"rad":     Radians,
		"Radians": Radians,
		" r ":     Radians,
		"deg":     Degrees,
		"Degrees": Degrees,
		"°":       Degrees,
	}
	for in, want := range tests {
		got, err := ParseUnit(in)
		if err != nil {
			t.Errorf("ParseUnit(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseUnit(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseUnit("grad"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestParseInput_Valid(t *testing.T) {
	tests := []struct {
		in   string
		def  Unit
		val  float64
		unit Unit
	}{
		{"45", Radians, 45, Radians},
		{"45", Degrees, 45, Degrees},
		{"  -90  ", Degrees, -90, Degrees},
		{"45 deg", Radians, 45, Degrees},
		{"45°", Radians, 45, Degrees},
		{"1.2rad", Degrees, 1.2, Radians},
		{"1.2 Radians", Degrees, 1.2, Radians},
		{"3d", Radians, 3, Degrees},
		{"1e6", Radians, 1e6, Radians},
		{"0.5r", Degrees, 0.5, Radians},
	}
	for _, tt := range tests {
		a, err := ParseInput(tt.in, tt.def)
		if err != nil {
			t.Errorf("ParseInput(%q): %v", tt.in, err)
			continue
		}
		if a.Value() != tt.val || a.Unit() != tt.unit {
			t.Errorf("ParseInput(%q) = %v, want %v %v", tt.in, a, tt.val, tt.unit)
		}
	}
}

func TestParseInput_Empty(t *testing.T) {
	if _, err := ParseInput("   ", Radians); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestParseInput_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "deg", "1..2", "NaN", "Inf", "-infinity", "12 apples"} {
		if _, err := ParseInput(in, Radians); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("ParseInput(%q): expected ErrInvalidNumber, got %v", in, err)
		}
	}
}
