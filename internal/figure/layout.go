// internal/figure/layout.go
package figure

// Layout describes axes, legend, title and decorations of a figure.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Template    *Template    `json:"template,omitempty"`
	Colorway    []string     `json:"colorway,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Title is a figure title anchored to the paper.
type Title struct {
	Text string  `json:"text"`
	XRef string  `json:"xref,omitempty"`
	X    float64 `json:"x"`
}

// AxisTitle is the label of an axis.
type AxisTitle struct {
	Text string `json:"text"`
}

// Axis configures one axis.
type Axis struct {
	Title          *AxisTitle `json:"title,omitempty"`
	Ticks          *string    `json:"ticks,omitempty"`
	ShowTickLabels *bool      `json:"showticklabels,omitempty"`
	TickVals       []float64  `json:"tickvals,omitempty"`
	TickText       []string   `json:"ticktext,omitempty"`
	ScaleAnchor    string     `json:"scaleanchor,omitempty"`
	ScaleRatio     float64    `json:"scaleratio,omitempty"`
	Range          []float64  `json:"range,omitempty"`
}

// Legend positions the legend box.
type Legend struct {
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	T int `json:"t"`
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
}

// Shape is a line drawn over the plot.
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Font sets annotation text size.
type Font struct {
	Size float64 `json:"size"`
}

// Annotation is a text box anchored in paper coordinates.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
	Font      Font    `json:"font"`
	XAnchor   string  `json:"xanchor"`
	YAnchor   string  `json:"yanchor"`
	Align     string  `json:"align"`
	BgColor   string  `json:"bgcolor,omitempty"`
	BorderPad int     `json:"borderpad,omitempty"`
}

// Template carries the background styling plotly.js applies to every figure.
type Template struct {
	Layout TemplateLayout `json:"layout"`
}

// TemplateLayout is the subset of layout attributes the template sets.
type TemplateLayout struct {
	PaperBgColor string       `json:"paper_bgcolor"`
	PlotBgColor  string       `json:"plot_bgcolor"`
	XAxis        TemplateAxis `json:"xaxis"`
	YAxis        TemplateAxis `json:"yaxis"`
	Font         TemplateFont `json:"font"`
}

// TemplateAxis styles grid lines and ticks.
type TemplateAxis struct {
	GridColor string `json:"gridcolor"`
	LineColor string `json:"linecolor"`
	Ticks     string `json:"ticks"`
	TickColor string `json:"tickcolor"`
	ZeroLine  bool   `json:"zeroline"`
}

// TemplateFont is the default font color.
type TemplateFont struct {
	Color string `json:"color"`
}
