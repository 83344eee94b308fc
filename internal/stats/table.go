// internal/stats/table.go
package stats

import (
	"fmt"
	"slices"
)

// Table maps each admissible integer parameter to its curves over a grid.
// Tables are built once at startup and only read afterwards.
type Table struct {
	grid   Grid
	min    int
	max    int
	family func(key int) Distribution
	curves map[int]Curves
}

// NewTable evaluates family(k) over g for every k in [min, max].
func NewTable(g Grid, min, max int, family func(key int) Distribution) (*Table, error) {
	if max < min {
		return nil, fmt.Errorf("table range [%d, %d] is empty", min, max)
	}
	t := &Table{
		grid:   g,
		min:    min,
		max:    max,
		family: family,
		curves: make(map[int]Curves, max-min+1),
	}
	for k := min; k <= max; k++ {
		t.curves[k] = Evaluate(family(k), g)
	}
	return t, nil
}

// Grid returns the grid the table was evaluated on.
func (t *Table) Grid() Grid { return t.grid }

// Range returns the smallest and largest key.
func (t *Table) Range() (int, int) { return t.min, t.max }

// Keys returns the keys in ascending order.
func (t *Table) Keys() []int {
	keys := make([]int, 0, len(t.curves))
	for k := t.min; k <= t.max; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Clamp forces key into the table range.
func (t *Table) Clamp(key int) int {
	return min(max(key, t.min), t.max)
}

// Lookup returns a copy of the curves for key, clamped into range.
func (t *Table) Lookup(key int) Curves {
	c := t.curves[t.Clamp(key)]
	return Curves{PDF: slices.Clone(c.PDF), CDF: slices.Clone(c.CDF)}
}

// Distribution returns the distribution behind key, for values between grid points.
func (t *Table) Distribution(key int) Distribution {
	return t.family(t.Clamp(key))
}
