// internal/render/render.go
// Package render rasterizes figures on the server with go-chart, for image
// endpoints and the render command. The browser draws the same figures with
// plotly.js; this is a close approximation, not a pixel match.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/util"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ErrEmptyFigure is returned for figures without drawable data.
var ErrEmptyFigure = errors.New("figure has no data")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, SVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported image format %q (want png or svg)", s)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options sizes the output image.
type Options struct {
	Width  int
	Height int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 800
	}
	return o.Width
}

func (o Options) height() int {
	if o.Height <= 0 {
		return 500
	}
	return o.Height
}

// Render writes f to w. Figures made only of bar traces become bar charts;
// everything else is drawn as continuous series.
func Render(w io.Writer, f figure.Figure, format Format, opts Options) error {
	if len(f.Data) == 0 {
		return ErrEmptyFigure
	}
	if allBars(f.Data) {
		return renderBars(w, f, format, opts)
	}

	series, bounds := continuousSeries(f)
	if len(series) == 0 {
		return ErrEmptyFigure
	}
	series = append(series, shapeSeries(f.Layout.Shapes, bounds)...)
	if ann, ok := annotationSeries(f.Layout.Annotations, bounds); ok {
		series = append(series, ann)
	}

	ch := chart.Chart{
		Title:      title(f.Layout),
		Width:      opts.width(),
		Height:     opts.height(),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: plotBackground(f.Layout)},
		XAxis:      xAxis(f.Layout.XAxis),
		YAxis:      yAxis(f.Layout.YAxis),
		Series:     series,
	}
	if showsLegend(f.Data) {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func allBars(traces []figure.Trace) bool {
	for _, t := range traces {
		if t.Type != figure.TypeBar {
			return false
		}
	}
	return true
}

func showsLegend(traces []figure.Trace) bool {
	for _, t := range traces {
		if t.ShowLegend {
			return true
		}
	}
	return false
}

// bounds is the data extent of the drawn traces.
type bounds struct {
	xMin, xMax, yMin, yMax float64
}

func (b *bounds) include(xs, ys []float64) {
	for _, x := range xs {
		b.xMin, b.xMax = math.Min(b.xMin, x), math.Max(b.xMax, x)
	}
	for _, y := range ys {
		b.yMin, b.yMax = math.Min(b.yMin, y), math.Max(b.yMax, y)
	}
}

func (b bounds) valid() bool {
	return b.xMax > b.xMin && b.yMax >= b.yMin
}

func continuousSeries(f figure.Figure) ([]chart.Series, bounds) {
	palette := f.Layout.Colorway
	if len(palette) == 0 {
		palette = figure.Colorway()
	}
	b := bounds{xMin: math.Inf(1), xMax: math.Inf(-1), yMin: 0, yMax: math.Inf(-1)}

	var out []chart.Series
	for i, t := range f.Data {
		n := min(len(t.X), len(t.Y))
		if n == 0 {
			continue
		}
		xs, ys := t.X[:n], t.Y[:n]
		b.include(xs, ys)
		base := parseColor(palette[i%len(palette)], drawing.ColorBlack)
		out = append(out, chart.ContinuousSeries{
			Name:    util.StripTags(t.Name, " "),
			XValues: xs,
			YValues: ys,
			Style:   traceStyle(t, base),
		})
	}
	return out, b
}

func traceStyle(t figure.Trace, base drawing.Color) chart.Style {
	st := chart.Style{StrokeColor: base, StrokeWidth: 2}
	if t.Line != nil {
		st.StrokeColor = parseColor(t.Line.Color, base)
		if t.Line.Width > 0 {
			st.StrokeWidth = t.Line.Width
		}
		st.StrokeDashArray = dashArray(t.Line.Dash)
	}
	switch t.Mode {
	case figure.ModeNone:
		st.StrokeColor = drawing.ColorTransparent
	case figure.ModeMarkers:
		st.StrokeColor = drawing.ColorTransparent
		st.DotWidth = 4
		st.DotColor = base
		if t.Marker != nil {
			if t.Marker.Size > 0 {
				st.DotWidth = t.Marker.Size / 2
			}
			st.DotColor = withOpacity(parseColor(t.Marker.Color, base), t.Marker.Opacity)
		}
	}
	if t.Fill == figure.FillToZeroY {
		st.FillColor = parseColor(t.FillColor, withOpacity(base, 0.5))
	}
	return st
}

// shapeSeries draws paper-referenced vertical lines across the data height.
func shapeSeries(shapes []figure.Shape, b bounds) []chart.Series {
	if !b.valid() {
		return nil
	}
	var out []chart.Series
	for _, s := range shapes {
		if s.Type != "line" {
			continue
		}
		y0, y1 := s.Y0, s.Y1
		if s.YRef == "paper" {
			y0 = b.yMin + s.Y0*(b.yMax-b.yMin)
			y1 = b.yMin + s.Y1*(b.yMax-b.yMin)
		}
		out = append(out, chart.ContinuousSeries{
			XValues: []float64{s.X0, s.X1},
			YValues: []float64{y0, y1},
			Style: chart.Style{
				StrokeColor:     parseColor(s.Line.Color, drawing.ColorBlack),
				StrokeWidth:     max(s.Line.Width, 1),
				StrokeDashArray: dashArray(s.Line.Dash),
			},
		})
	}
	return out
}

// annotationSeries places paper-anchored text boxes at the matching data point.
func annotationSeries(anns []figure.Annotation, b bounds) (chart.AnnotationSeries, bool) {
	if len(anns) == 0 || !b.valid() {
		return chart.AnnotationSeries{}, false
	}
	as := chart.AnnotationSeries{Style: chart.Style{FontSize: 9}}
	for _, a := range anns {
		x, y := a.X, a.Y
		if a.XRef == "paper" {
			x = b.xMin + a.X*(b.xMax-b.xMin)
		}
		if a.YRef == "paper" {
			y = b.yMin + a.Y*(b.yMax-b.yMin)
		}
		as.Annotations = append(as.Annotations, chart.Value2{
			XValue: x,
			YValue: y,
			Label:  util.StripTags(a.Text, ", "),
		})
	}
	return as, true
}

func title(l figure.Layout) string {
	if l.Title == nil {
		return ""
	}
	return util.StripTags(l.Title.Text, " ")
}

func plotBackground(l figure.Layout) drawing.Color {
	if l.Template == nil {
		return drawing.ColorWhite
	}
	return parseColor(l.Template.Layout.PlotBgColor, drawing.ColorWhite)
}

func axisName(a *figure.Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return util.StripTags(a.Title.Text, " ")
}

func axisHidden(a *figure.Axis) bool {
	return a != nil && a.ShowTickLabels != nil && !*a.ShowTickLabels
}

func axisTicks(a *figure.Axis) []chart.Tick {
	if a == nil || len(a.TickVals) == 0 {
		return nil
	}
	ticks := make([]chart.Tick, len(a.TickVals))
	for i, v := range a.TickVals {
		label := fmt.Sprintf("%g", v)
		if i < len(a.TickText) {
			label = a.TickText[i]
		}
		ticks[i] = chart.Tick{Value: v, Label: label}
	}
	return ticks
}

func axisRange(a *figure.Axis) *chart.ContinuousRange {
	if a == nil || len(a.Range) != 2 {
		return nil
	}
	return &chart.ContinuousRange{Min: a.Range[0], Max: a.Range[1]}
}

func xAxis(a *figure.Axis) chart.XAxis {
	xa := chart.XAxis{Name: axisName(a), Ticks: axisTicks(a), Style: chart.Style{Hidden: axisHidden(a)}}
	if r := axisRange(a); r != nil {
		xa.Range = r
	}
	return xa
}

func yAxis(a *figure.Axis) chart.YAxis {
	ya := chart.YAxis{Name: axisName(a), Ticks: axisTicks(a), Style: chart.Style{Hidden: axisHidden(a)}}
	if r := axisRange(a); r != nil {
		ya.Range = r
	}
	return ya
}

// renderBars flattens grouped bar traces into one bar per (trace, category).
func renderBars(w io.Writer, f figure.Figure, format Format, opts Options) error {
	palette := f.Layout.Colorway
	if len(palette) == 0 {
		palette = figure.Colorway()
	}
	var bars []chart.Value
	for i, t := range f.Data {
		fill := parseColor(palette[i%len(palette)], drawing.ColorBlack)
		if t.Marker != nil {
			fill = parseColor(t.Marker.Color, fill)
		}
		for j, y := range t.Y {
			label := util.StripTags(t.Name, " ")
			if j < len(t.Categories) {
				label += ": " + t.Categories[j]
			}
			bars = append(bars, chart.Value{
				Value: y,
				Label: label,
				Style: chart.Style{FillColor: fill, StrokeColor: fill},
			})
		}
	}
	if len(bars) == 0 {
		return ErrEmptyFigure
	}

	bc := chart.BarChart{
		Title:      title(f.Layout),
		Width:      opts.width(),
		Height:     opts.height(),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   60,
		Bars:       bars,
		YAxis:      yAxis(f.Layout.YAxis),
	}
	if err := bc.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}
