// internal/engine/transform.go
// Package engine is the reactive update mechanism behind every page. Pages
// register named pure transforms against the control and graph IDs that
// trigger them; sessions hold the current values and decide which transforms
// to run after each change.
package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/figure"
)

// Kind separates dependent-control normalization from chart rendering.
type Kind int

const (
	// KindFigure transforms produce a chart for a graph slot.
	KindFigure Kind = iota
	// KindNormalize transforms rewrite another control's bounds and value.
	// They always run before figure transforms.
	KindNormalize
)

func (k Kind) String() string {
	switch k {
	case KindNormalize:
		return "normalize"
	default:
		return "figure"
	}
}

// Inputs is the read-only view of control values and click selections a
// transform receives.
type Inputs struct {
	values     map[string]float64
	selections map[string]*control.Selection
}

// NewInputs builds an Inputs value, mainly for calling transforms directly.
func NewInputs(values map[string]float64, selections map[string]*control.Selection) Inputs {
	return Inputs{values: values, selections: selections}
}

// Value returns the current value of a control.
func (in Inputs) Value(id string) float64 { return in.values[id] }

// Int returns a control value rounded to an integer.
func (in Inputs) Int(id string) int {
	return int(math.Round(in.values[id]))
}

// Selection returns the last click on a graph, or nil.
func (in Inputs) Selection(graph string) *control.Selection { return in.selections[graph] }

// Update is what a transform writes back into the page.
type Update struct {
	Target    string         `json:"target"`
	Transform string         `json:"transform"`
	Figure    *figure.Figure `json:"figure,omitempty"`
	Control   *control.Patch `json:"control,omitempty"`
}

// Transform is a named pure function over a declared input set.
type Transform struct {
	Name string
	Kind Kind
	// Inputs are the control or graph IDs whose change triggers the transform.
	Inputs []string
	// States are read but never trigger.
	States []string
	// Output is the graph ID (KindFigure) or control ID (KindNormalize) written.
	Output string

	Figure    func(Inputs) figure.Figure
	Normalize func(Inputs) control.Patch
}

// Apply runs the transform.
func (t *Transform) Apply(in Inputs) Update {
	u := Update{Target: t.Output, Transform: t.Name}
	switch t.Kind {
	case KindNormalize:
		p := t.Normalize(in)
		u.Control = &p
	default:
		f := t.Figure(in)
		u.Figure = &f
	}
	return u
}

func (t *Transform) triggeredBy(changed map[string]bool) bool {
	for _, id := range t.Inputs {
		if changed[id] {
			return true
		}
	}
	return false
}

func (t *Transform) validate() error {
	if t.Name == "" {
		return fmt.Errorf("transform has no name")
	}
	if t.Output == "" {
		return fmt.Errorf("transform %q has no output", t.Name)
	}
	if len(t.Inputs) == 0 {
		return fmt.Errorf("transform %q has no inputs", t.Name)
	}
	switch t.Kind {
	case KindFigure:
		if t.Figure == nil {
			return fmt.Errorf("transform %q: figure function missing", t.Name)
		}
	case KindNormalize:
		if t.Normalize == nil {
			return fmt.Errorf("transform %q: normalize function missing", t.Name)
		}
	default:
		return fmt.Errorf("transform %q: unknown kind %d", t.Name, t.Kind)
	}
	return nil
}

// Registry is the static transform table of one page.
type Registry struct {
	page       string
	transforms []*Transform
	byName     map[string]*Transform
}

// NewRegistry builds the table. Duplicate names or malformed transforms panic:
// registries are assembled from literals at startup.
func NewRegistry(page string, transforms ...Transform) *Registry {
	r := &Registry{page: page, byName: make(map[string]*Transform, len(transforms))}
	for i := range transforms {
		t := transforms[i]
		if err := t.validate(); err != nil {
			panic(fmt.Sprintf("engine: page %q: %v", page, err))
		}
		if _, dup := r.byName[t.Name]; dup {
			panic(fmt.Sprintf("engine: page %q: duplicate transform %q", page, t.Name))
		}
		r.byName[t.Name] = &t
		r.transforms = append(r.transforms, &t)
	}
	return r
}

// Page returns the page name the registry belongs to.
func (r *Registry) Page() string { return r.page }

// Len returns the number of transforms.
func (r *Registry) Len() int { return len(r.transforms) }

// Lookup finds a transform by name.
func (r *Registry) Lookup(name string) (*Transform, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Transforms returns the transforms in registration order.
func (r *Registry) Transforms() []*Transform { return slices.Clone(r.transforms) }

// ForOutput returns the transform writing to a target ID.
func (r *Registry) ForOutput(target string) (*Transform, bool) {
	for _, t := range r.transforms {
		if t.Output == target {
			return t, true
		}
	}
	return nil, false
}

func (r *Registry) ofKind(k Kind) []*Transform {
	var out []*Transform
	for _, t := range r.transforms {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}
