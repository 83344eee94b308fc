// internal/engine/session.go
package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/mwiater/biostat/internal/control"
)

var (
	// ErrUnknownControl is returned for a change naming a control the page lacks.
	ErrUnknownControl = errors.New("unknown control")
	// ErrUnknownGraph is returned for a click on a graph the page lacks.
	ErrUnknownGraph = errors.New("unknown graph")
)

// Page is what the engine needs to know about a page.
type Page interface {
	Route() string
	Controls() []control.Control
	Graphs() []string
	Transforms() *Registry
}

// Change is one batch of user interaction: new control values and click
// selections. A nil selection clears the graph's previous click.
type Change struct {
	Values     map[string]float64            `json:"values,omitempty"`
	Selections map[string]*control.Selection `json:"selections,omitempty"`
}

// Session holds the current state of one mounted page. Apply calls are
// serialized per session.
type Session struct {
	id       string
	route    string
	registry *Registry

	mu         sync.Mutex
	controls   map[string]control.Control
	order      []string
	graphs     map[string]bool
	selections map[string]*control.Selection
	lastSeen   time.Time
}

// NewSession mounts a page with its default control values.
func NewSession(id string, page Page) *Session {
	s := &Session{
		id:         id,
		route:      page.Route(),
		registry:   page.Transforms(),
		controls:   make(map[string]control.Control),
		graphs:     make(map[string]bool),
		selections: make(map[string]*control.Selection),
		lastSeen:   time.Now(),
	}
	for _, c := range page.Controls() {
		s.controls[c.ID] = c
		s.order = append(s.order, c.ID)
	}
	for _, g := range page.Graphs() {
		s.graphs[g] = true
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Route returns the page path the session is mounted on.
func (s *Session) Route() string { return s.route }

// Controls returns the current controls in page order.
func (s *Session) Controls() []control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]control.Control, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.controls[id])
	}
	return out
}

// Values returns a snapshot of the current control values.
func (s *Session) Values() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valuesLocked()
}

// Refresh runs every transform against the current state, as on first mount.
func (s *Session) Refresh() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	changed := make(map[string]bool, len(s.controls)+len(s.graphs))
	for id := range s.controls {
		changed[id] = true
	}
	for id := range s.graphs {
		changed[id] = true
	}
	return s.dispatch(changed)
}

// Apply records a change and runs the transforms it triggers. Values are
// clamped to the controls' current domains before any transform sees them.
func (s *Session) Apply(ch Change) ([]Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if err := s.check(ch); err != nil {
		return nil, err
	}

	// A control that a triggered normalization is about to rebound keeps its
	// requested value until the new bounds are known.
	rebound := make(map[string]bool)
	for _, t := range s.registry.ofKind(KindNormalize) {
		for _, in := range t.Inputs {
			if _, ok := ch.Values[in]; ok {
				rebound[t.Output] = true
			}
		}
	}

	changed := make(map[string]bool, len(ch.Values)+len(ch.Selections))
	for id, v := range ch.Values {
		c := s.controls[id]
		if rebound[id] {
			c.Value = c.Snap(v)
		} else {
			c.Value = c.Clamp(v)
		}
		s.controls[id] = c
		changed[id] = true
	}
	for id, sel := range ch.Selections {
		if sel == nil {
			delete(s.selections, id)
		} else {
			s.selections[id] = sel
		}
		changed[id] = true
	}
	return s.dispatch(changed), nil
}

// dispatch runs triggered normalizations until nothing new fires, then the
// triggered figure transforms. Each transform runs at most once per dispatch.
func (s *Session) dispatch(changed map[string]bool) []Update {
	var updates []Update
	done := make(map[string]bool)
	normalizers := s.registry.ofKind(KindNormalize)

	for progressed := true; progressed; {
		progressed = false
		for _, t := range normalizers {
			if done[t.Name] || !t.triggeredBy(changed) {
				continue
			}
			u := s.run(t)
			if c, ok := s.controls[t.Output]; ok && u.Control != nil {
				s.controls[t.Output] = c.Apply(*u.Control)
			}
			changed[t.Output] = true
			done[t.Name] = true
			progressed = true
			updates = append(updates, u)
		}
	}
	for id, c := range s.controls {
		c.Value = c.Clamp(c.Value)
		s.controls[id] = c
	}

	for _, t := range s.registry.ofKind(KindFigure) {
		if t.triggeredBy(changed) {
			updates = append(updates, s.run(t))
		}
	}
	return updates
}

// seed loads a full state without reporting updates. Normalizations run so
// dependent bounds match the seeded values.
func (s *Session) seed(ch Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ch); err != nil {
		return err
	}
	// Normalization outputs keep their requested value until rebounded. Every
	// other control is clamped first so the normalizations read settled inputs.
	rebound := make(map[string]bool)
	for _, t := range s.registry.ofKind(KindNormalize) {
		rebound[t.Output] = true
	}
	for id, v := range ch.Values {
		c := s.controls[id]
		if rebound[id] {
			c.Value = c.Snap(v)
		} else {
			c.Value = c.Clamp(v)
		}
		s.controls[id] = c
	}
	for id, sel := range ch.Selections {
		if sel != nil {
			s.selections[id] = sel
		}
	}
	for _, t := range s.registry.ofKind(KindNormalize) {
		p := t.Normalize(Inputs{values: s.valuesLocked(), selections: s.selections})
		if c, ok := s.controls[t.Output]; ok {
			s.controls[t.Output] = c.Apply(p)
		}
	}
	for id, c := range s.controls {
		c.Value = c.Clamp(c.Value)
		s.controls[id] = c
	}
	return nil
}

func (s *Session) check(ch Change) error {
	for _, id := range slices.Sorted(maps.Keys(ch.Values)) {
		if _, ok := s.controls[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownControl, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(ch.Selections)) {
		if !s.graphs[id] {
			return fmt.Errorf("%w: %q", ErrUnknownGraph, id)
		}
	}
	return nil
}

func (s *Session) run(t *Transform) Update {
	start := time.Now()
	u := t.Apply(Inputs{values: s.valuesLocked(), selections: maps.Clone(s.selections)})
	observe(s.registry.Page(), t, time.Since(start))
	return u
}

func (s *Session) valuesLocked() map[string]float64 {
	out := make(map[string]float64, len(s.controls))
	for id, c := range s.controls {
		out[id] = c.Value
	}
	return out
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
