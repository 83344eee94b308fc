// internal/control/control.go
// Package control defines the slider inputs of a page and the click selections
// the browser reports on charts.
package control

import (
	"fmt"
	"math"
)

// Mark labels one slider position.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Control is a numeric slider with a fixed step lattice anchored at Min.
type Control struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
	Marks []Mark  `json:"marks,omitempty"`
}

// Patch replaces a control's bounds and value. Normalization transforms
// return patches instead of figures.
type Patch struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Value float64 `json:"value"`
}

// Validate reports malformed definitions.
func (c Control) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("control has no id")
	case !(c.Step > 0):
		return fmt.Errorf("control %q: step must be positive, got %g", c.ID, c.Step)
	case c.Max < c.Min:
		return fmt.Errorf("control %q: max %g below min %g", c.ID, c.Max, c.Min)
	case c.Value < c.Min || c.Value > c.Max:
		return fmt.Errorf("control %q: default %g outside [%g, %g]", c.ID, c.Value, c.Min, c.Max)
	}
	return nil
}

// Snap moves v to the nearest point of the step lattice without enforcing
// the bounds. NaN keeps the current value.
func (c Control) Snap(v float64) float64 {
	if math.IsNaN(v) {
		return c.Value
	}
	if c.Step > 0 && !math.IsInf(v, 0) {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		v = math.Round(v*1e9) / 1e9
	}
	return v
}

// Clamp snaps v to the nearest step and forces it into [Min, Max].
func (c Control) Clamp(v float64) float64 {
	return math.Min(math.Max(c.Snap(v), c.Min), c.Max)
}

// Apply returns c with p's bounds and value.
func (c Control) Apply(p Patch) Control {
	c.Min, c.Max, c.Value = p.Min, p.Max, p.Value
	return c
}

// Int returns the control value rounded to the nearest integer, for
// controls that index precomputed tables.
func (c Control) Int() int {
	return int(math.Round(c.Value))
}
