// internal/control/parse.go
package control

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAssignment reads "id=value" as used by command flags and query strings.
func ParseAssignment(s string) (string, float64, error) {
	id, raw, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", 0, fmt.Errorf("assignment %q: want id=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("assignment %q: %w", s, err)
	}
	return id, v, nil
}

// ParseClick reads "graph:curve:index" into the graph ID and a one-point selection.
func ParseClick(s string) (string, *Selection, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
		return "", nil, fmt.Errorf("click %q: want graph:curve:index", s)
	}
	curve, err := strconv.Atoi(parts[1])
	if err != nil || curve < 0 {
		return "", nil, fmt.Errorf("click %q: bad curve number", s)
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return "", nil, fmt.Errorf("click %q: bad point index", s)
	}
	return strings.TrimSpace(parts[0]), &Selection{Points: []Point{{CurveNumber: curve, PointIndex: &index}}}, nil
}
