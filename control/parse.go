package control

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/starfall/field"
	"github.com/lixenwraith/starfall/parameter"
)

// ErrInvalidNumber rejects non-numeric, NaN and infinite input
var ErrInvalidNumber = errors.New("invalid number")

// Finite reports whether v is neither NaN nor an infinity
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	if !Finite(v) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidNumber)
	}
	return v, nil
}

// ParseDensity accepts a finite number, truncates toward zero and clamps to [0, FieldMaxDensity]
func ParseDensity(s string) (int, error) {
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("density %w", err)
	}
	if v <= 0 {
		return 0, nil
	}
	if v > parameter.FieldMaxDensity {
		return parameter.FieldMaxDensity, nil
	}
	return field.ClampDensity(int(v)), nil
}

// ParseSpeed accepts a finite number, negative clamps to 0
func ParseSpeed(s string) (float64, error) {
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("speed %w", err)
	}
	return max(0, v), nil
}

// ParseSpawnDelay accepts a finite positive number in seconds, clamped to MeteorSpawnDelayMin
func ParseSpawnDelay(s string) (float64, error) {
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("spawn delay %w", err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("spawn delay %q must be positive: %w", strings.TrimSpace(s), ErrInvalidNumber)
	}
	return max(parameter.MeteorSpawnDelayMin, v), nil
}
