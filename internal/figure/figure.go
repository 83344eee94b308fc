// internal/figure/figure.go
// Package figure models declarative chart descriptions. A Figure serializes to
// the plotly.js figure format, so the browser can draw it without further
// translation, and internal/render can rasterize the same value on the server.
package figure

import "encoding/json"

// Figure is an ordered set of traces plus a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace modes and fills used by the pages.
const (
	ModeLines   = "lines"
	ModeMarkers = "markers"
	ModeNone    = "none"

	FillToZeroY = "tozeroy"

	TypeScatter = "scatter"
	TypeBar     = "bar"
)

// Trace is a single data series.
type Trace struct {
	Type       string         `json:"type"`
	Name       string         `json:"name,omitempty"`
	X          []float64      `json:"x,omitempty"`
	Y          []float64      `json:"y"`
	Categories []string       `json:"-"`
	Mode       string         `json:"mode,omitempty"`
	ShowLegend bool           `json:"showlegend"`
	Line       *Line          `json:"line,omitempty"`
	Marker     *Marker        `json:"marker,omitempty"`
	Fill       string         `json:"fill,omitempty"`
	FillColor  string         `json:"fillcolor,omitempty"`
	HoverOn    string         `json:"hoveron,omitempty"`
	HoverInfo  string         `json:"hoverinfo,omitempty"`
	Text       string         `json:"text,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// Line styles a trace's stroke.
type Line struct {
	Dash  string  `json:"dash,omitempty"`
	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Marker styles a trace's points or bars.
type Marker struct {
	Symbol  string  `json:"symbol,omitempty"`
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Size    float64 `json:"size,omitempty"`
}

// Scatter returns a scatter trace over x and y.
func Scatter(name string, x, y []float64) Trace {
	return Trace{Type: TypeScatter, Name: name, X: x, Y: y}
}

// Bar returns a bar trace with categorical x values.
func Bar(name string, categories []string, y []float64) Trace {
	return Trace{Type: TypeBar, Name: name, Categories: categories, Y: y}
}

// MarshalJSON emits categorical bar labels as the x array.
func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	if len(t.Categories) == 0 {
		return json.Marshal(plain(t))
	}
	return json.Marshal(struct {
		plain
		X []string `json:"x"`
	}{plain(t), t.Categories})
}

// UnmarshalJSON accepts numeric x arrays and categorical ones.
func (t *Trace) UnmarshalJSON(data []byte) error {
	type plain Trace
	var aux struct {
		plain
		X json.RawMessage `json:"x"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Trace(aux.plain)
	if len(aux.X) == 0 || string(aux.X) == "null" {
		return nil
	}
	if err := json.Unmarshal(aux.X, &t.X); err == nil {
		return nil
	}
	t.X = nil
	return json.Unmarshal(aux.X, &t.Categories)
}

// Lines sets mode "lines" with the given stroke.
func (t Trace) Lines(l Line) Trace {
	t.Mode = ModeLines
	t.Line = &l
	return t
}

// Filled sets mode "none" and fills down to y=0 with color.
func (t Trace) Filled(color string) Trace {
	t.Mode = ModeNone
	t.Fill = FillToZeroY
	t.FillColor = color
	return t
}

// Legend sets whether the trace appears in the legend.
func (t Trace) Legend(show bool) Trace {
	t.ShowLegend = show
	return t
}

// Hover attaches fill hover text.
func (t Trace) Hover(text string) Trace {
	t.HoverOn = "fills"
	t.HoverInfo = "text"
	t.Text = text
	return t
}
