// internal/stats/grid.go
// Package stats evaluates closed-form densities and cumulative distribution
// functions over fixed evaluation grids and derives the diagnostic and effect
// size quantities shown on the pages.
package stats

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Grid is an ordered, immutable sequence of evaluation points. Accessors hand
// out copies so every chart built from the same grid shares one x-domain.
type Grid struct {
	xs []float64
}

// NewGrid returns n evenly spaced points from lo to hi inclusive.
func NewGrid(lo, hi float64, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, fmt.Errorf("grid needs at least 2 points, got %d", n)
	}
	if !(hi > lo) {
		return Grid{}, fmt.Errorf("grid bounds must satisfy lo < hi, got [%g, %g]", lo, hi)
	}
	return Grid{xs: floats.Span(make([]float64, n), lo, hi)}, nil
}

// MustGrid is NewGrid for package-level page definitions with constant bounds.
func MustGrid(lo, hi float64, n int) Grid {
	g, err := NewGrid(lo, hi, n)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of points.
func (g Grid) Len() int { return len(g.xs) }

// At returns the i-th point.
func (g Grid) At(i int) float64 { return g.xs[i] }

// Min returns the first point.
func (g Grid) Min() float64 { return g.xs[0] }

// Max returns the last point.
func (g Grid) Max() float64 { return g.xs[len(g.xs)-1] }

// Values returns a copy of the points.
func (g Grid) Values() []float64 { return slices.Clone(g.xs) }

// Head returns a copy of the points with index 0..i inclusive. i is clamped
// into the grid.
func (g Grid) Head(i int) []float64 {
	return slices.Clone(g.xs[:ClampIndex(i, len(g.xs))+1])
}

// Shifted returns a copy of the points translated by d.
func (g Grid) Shifted(d float64) []float64 {
	out := g.Values()
	floats.AddConst(d, out)
	return out
}

// ClampIndex forces i into [0, n-1].
func ClampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
