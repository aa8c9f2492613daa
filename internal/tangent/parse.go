package tangent

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// #region unit-names
var unitNames = map[string]Unit{
	"r":       Radians,
	"rad":     Radians,
	"radian":  Radians,
	"radians": Radians,
	"d":       Degrees,
	"deg":     Degrees,
	"degree":  Degrees,
	"degrees": Degrees,
	"°":       Degrees,
}

// suffixes are tried longest first so "radians" is not read as "...s" + "rad".
var unitSuffixes = []string{"radians", "degrees", "radian", "degree", "rad", "deg", "°", "r", "d"}

// #endregion unit-names

// #region parse-unit
// ParseUnit reads a unit name such as "rad", "Degrees" or "°".
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return Radians, fmt.Errorf("parse unit %q: %w", s, ErrUnknownUnit)
}

// #endregion parse-unit

// #region parse-input
// ParseInput reads a real number with an optional trailing unit ("45 deg",
// "45°", "1.2rad"). Without a suffix the angle takes def.
func ParseInput(s string, def Unit) (Angle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Angle{}, ErrEmptyInput
	}

	unit := def
	num := s
	lower := strings.ToLower(s)
	for _, suf := range unitSuffixes {
		if !strings.HasSuffix(lower, suf) {
			continue
		}
		head := strings.TrimSpace(s[:len(s)-len(suf)])
		if head == "" {
			break
		}
		// "1e5d" style inputs: only strip single-letter suffixes when the
		// remainder still parses, so "inf" and hex-ish strings are not mangled.
		if len(suf) == 1 {
			if _, err := strconv.ParseFloat(head, 64); err != nil {
				continue
			}
		}
		unit = unitNames[suf]
		num = head
		break
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Angle{}, fmt.Errorf("parse %q: %w", s, ErrInvalidNumber)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Angle{}, fmt.Errorf("parse %q: %w", s, ErrInvalidNumber)
	}
	return NewAngle(v, unit), nil
}

// #endregion parse-input
