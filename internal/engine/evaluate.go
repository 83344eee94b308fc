// internal/engine/evaluate.go
package engine

import (
	"fmt"
)

// Request is a stateless update: the caller sends every current value and
// selection plus the IDs that changed, and receives the resulting updates.
// An empty Changed list means a full render.
type Request struct {
	Changed []string
	Change
}

// Evaluate runs one request against a throwaway session of page.
func Evaluate(page Page, req Request) ([]Update, error) {
	s := NewSession("", page)
	if err := s.seed(req.Change); err != nil {
		return nil, err
	}
	if len(req.Changed) == 0 {
		return s.Refresh(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	changed := make(map[string]bool, len(req.Changed))
	for _, id := range req.Changed {
		_, isControl := s.controls[id]
		if !isControl && !s.graphs[id] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownControl, id)
		}
		changed[id] = true
	}
	return s.dispatch(changed), nil
}
