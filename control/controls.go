// Package control validates user input into scene control changes
package control

import (
	"github.com/lixenwraith/starfall/field"
	"github.com/lixenwraith/starfall/parameter"
)

// Controls is the user-facing scene state
type Controls struct {
	Speed      float64 // global speed multiplier, >= 0
	Density    int     // star count in [0, FieldMaxDensity]
	Paused     bool
	Focused    bool
	SpawnDelay float64 // base seconds between meteors
}

// Defaults returns the startup controls
func Defaults() Controls {
	return Controls{
		Speed:      parameter.SpeedDefault,
		Density:    parameter.FieldDefaultDensity,
		SpawnDelay: parameter.MeteorSpawnDelay,
	}
}

// Kind selects which control a Change targets
type Kind uint8

const (
	SetSpeed Kind = iota + 1
	SetDensity
	TogglePause
	ToggleFocus
	SetSpawnDelay
	ResetMeteors
)

// Change is one validated control mutation
type Change struct {
	Kind  Kind
	Float float64
	Int   int
}

// Speed builds a SetSpeed change, negative clamps to 0
func Speed(v float64) Change {
	return Change{Kind: SetSpeed, Float: max(0, v)}
}

// Density builds a SetDensity change with the count clamped
func Density(n int) Change {
	return Change{Kind: SetDensity, Int: field.ClampDensity(n)}
}

// SpawnDelay builds a SetSpawnDelay change with the lower clamp applied
func SpawnDelay(v float64) Change {
	return Change{Kind: SetSpawnDelay, Float: max(parameter.MeteorSpawnDelayMin, v)}
}

// Valid reports whether ch carries a usable value
// Speed and spawn delay changes must be finite
func (ch Change) Valid() bool {
	switch ch.Kind {
	case SetSpeed, SetSpawnDelay:
		return Finite(ch.Float)
	}
	return true
}

// Apply folds c into the control values, invalid changes are dropped
// Side effects on the scene are applied by the simulation state
func (c *Controls) Apply(ch Change) {
	if !ch.Valid() {
		return
	}
	switch ch.Kind {
	case SetSpeed:
		c.Speed = max(0, ch.Float)
	case SetDensity:
		c.Density = field.ClampDensity(ch.Int)
	case TogglePause:
		c.Paused = !c.Paused
	case ToggleFocus:
		c.Focused = !c.Focused
	case SetSpawnDelay:
		c.SpawnDelay = max(parameter.MeteorSpawnDelayMin, ch.Float)
	}
}

// Diff returns the changes that move c to target, pause and focus included as toggles
// Non-finite target values produce no change
func (c Controls) Diff(target Controls) []Change {
	var out []Change
	if target.Speed != c.Speed && Finite(target.Speed) {
		out = append(out, Speed(target.Speed))
	}
	if target.Density != c.Density {
		out = append(out, Density(target.Density))
	}
	if target.SpawnDelay != c.SpawnDelay && Finite(target.SpawnDelay) {
		out = append(out, SpawnDelay(target.SpawnDelay))
	}
	if target.Paused != c.Paused {
		out = append(out, Change{Kind: TogglePause})
	}
	if target.Focused != c.Focused {
		out = append(out, Change{Kind: ToggleFocus})
	}
	return out
}
