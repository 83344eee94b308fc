// internal/control/selection.go
package control

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Point is one clicked point as reported by plotly.js.
type Point struct {
	CurveNumber int      `json:"curveNumber"`
	PointIndex  *int     `json:"pointIndex,omitempty"`
	PointNumber *int     `json:"pointNumber,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

// Index returns the grid index of the point.
func (p Point) Index() int {
	if p.PointIndex != nil {
		return *p.PointIndex
	}
	if p.PointNumber != nil {
		return *p.PointNumber
	}
	return 0
}

// Selection is the most recent click on a chart.
type Selection struct {
	Points []Point `json:"points"`
}

// First returns the first clicked point, if any.
func (s *Selection) First() (Point, bool) {
	if s == nil || len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[0], true
}

// Click builds a single-point selection.
func Click(curve, index int, x float64) *Selection {
	return &Selection{Points: []Point{{CurveNumber: curve, PointIndex: &index, X: &x}}}
}

// selectionSchema describes the subset of plotly clickData the pages read.
var selectionSchema = map[string]any{
	"type":     "object",
	"required": []string{"points"},
	"properties": map[string]any{
		"points": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"curveNumber"},
				"anyOf": []any{
					map[string]any{"required": []string{"pointIndex"}},
					map[string]any{"required": []string{"pointNumber"}},
				},
				"properties": map[string]any{
					"curveNumber": map[string]any{"type": "integer", "minimum": 0},
					"pointIndex":  map[string]any{"type": "integer", "minimum": 0},
					"pointNumber": map[string]any{"type": "integer", "minimum": 0},
					"x":           map[string]any{"type": "number"},
					"y":           map[string]any{"type": "number"},
				},
			},
		},
	},
}

// ParseSelection validates raw click data and decodes it. Empty input or JSON
// null clears the selection and returns nil.
func ParseSelection(raw []byte) (*Selection, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(selectionSchema), gojsonschema.NewStringLoader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("click data: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("click data validation failed: %s", strings.Join(errs, ", "))
	}

	var sel Selection
	if err := json.Unmarshal([]byte(trimmed), &sel); err != nil {
		return nil, fmt.Errorf("click data: %w", err)
	}
	return &sel, nil
}
