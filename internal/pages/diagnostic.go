// internal/pages/diagnostic.go
package pages

import (
	"fmt"

	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/logging"
	"github.com/mwiater/biostat/internal/stats"
)

const (
	diagXMax    = 5.0
	diagNPoints = 200

	cutoffMin  = -4.0
	cutoffBase = 4.0

	population = 10000.0
)

type diagnostic struct {
	grid    stats.Grid
	density []float64
}

// CutoffRange keeps cutoff ≤ 4 + separation whenever the separation moves.
func (d diagnostic) CutoffRange(in engine.Inputs) control.Patch {
	hi := cutoffBase + in.Value("difference")
	return control.Patch{Min: cutoffMin, Max: hi, Value: min(in.Value("cutoff"), hi)}
}

// selectWhere returns the x and density values of grid points passing keep,
// with x translated by shift.
func (d diagnostic) selectWhere(shift float64, keep func(x float64) bool) ([]float64, []float64) {
	var xs, ys []float64
	for i := 0; i < d.grid.Len(); i++ {
		x := d.grid.At(i) + shift
		if keep(x) {
			xs = append(xs, x)
			ys = append(ys, d.density[i])
		}
	}
	return xs, ys
}

// Distributions draws the healthy and sick marker densities, shades the
// misclassified regions and reports the rates at the cutoff.
func (d diagnostic) Distributions(in engine.Inputs) figure.Figure {
	sep := in.Value("difference")
	cutoff := in.Value("cutoff")
	c := stats.Classify(sep, cutoff)

	healthy := figure.Scatter("healthy", d.grid.Values(), d.density).
		Lines(figure.Line{Dash: "solid", Width: 3, Color: figure.Blue}).
		Legend(true)
	sick := figure.Scatter("sick", d.grid.Shifted(sep), d.density).
		Lines(figure.Line{Dash: "solid", Width: 3, Color: figure.Red}).
		Legend(true)

	fnX, fnY := d.selectWhere(sep, func(x float64) bool { return x <= cutoff })
	falseNegatives := figure.Scatter("false negatives", fnX, fnY).
		Filled("rgba(228,26,28, 0.3)").
		Legend(false).
		Hover(fmt.Sprintf("false negative<br>rate: %.1f%%", c.FalseNegativeRate*100))

	fpX, fpY := d.selectWhere(0, func(x float64) bool { return x >= cutoff })
	falsePositives := figure.Scatter("false positives", fpX, fpY).
		Filled("rgba(55, 126, 184, 0.3)").
		Legend(false).
		Hover(fmt.Sprintf("false positive<br>rate: %.1f%%", c.FalsePositiveRate*100))

	layout := figure.Layout{
		XAxis:    figure.Hidden("diagnostic marker"),
		YAxis:    figure.Hidden(""),
		Legend:   &figure.Legend{XAnchor: "right", YAnchor: "top", X: 1, Y: 1},
		Margin:   &figure.Margin{L: 25, R: 25, T: 25, B: 50},
		Template: figure.GGPlot2(),
		Shapes: []figure.Shape{{
			Type: "line", XRef: "x", YRef: "paper",
			X0: cutoff, X1: cutoff, Y0: 0, Y1: 1,
			Line: figure.Line{Color: figure.Green, Width: 3, Dash: "dash"},
		}},
		Annotations: []figure.Annotation{figure.InfoBox(
			fmt.Sprintf("sensitivity: %.3f<br>specificity: %.3f<br>fp-rate: %.3f<br>fn-rate: %.3f",
				c.Sensitivity, c.Specificity, c.FalsePositiveRate, c.FalseNegativeRate),
			0.01, 0.99, "left", "top", "left")},
	}

	return figure.Figure{
		Data:   []figure.Trace{falseNegatives, falsePositives, healthy, sick},
		Layout: layout,
	}
}

// ROC draws the operating curve of the separation, its area and the point
// of the current cutoff.
func (d diagnostic) ROC(in engine.Inputs) figure.Figure {
	sep := in.Value("difference")
	cutoff := in.Value("cutoff")

	// The sweep has at least 41 points while separation ≥ 0; an error leaves
	// the curve empty.
	roc, err := stats.ROCCurve(sep)
	if err != nil {
		logging.LogEvent("roc curve for separation %g: %v", sep, err)
	}
	c := stats.Classify(sep, cutoff)

	curve := figure.Scatter("roc", roc.FPR, roc.TPR).
		Lines(figure.Line{Dash: "solid", Width: 3, Color: figure.Purple}).
		Legend(false)
	marker := figure.Scatter("", []float64{c.FalsePositiveRate}, []float64{c.Sensitivity}).Legend(false)
	marker.Mode = figure.ModeMarkers
	marker.Marker = &figure.Marker{Symbol: "circle", Color: figure.Green, Opacity: 0.5, Size: 20}

	ticks := []float64{0, 0.5, 1}
	tickText := []string{"0.0", "", "1.0"}
	layout := figure.Layout{
		XAxis: &figure.Axis{
			ScaleAnchor: "y", ScaleRatio: 1,
			TickVals: ticks, TickText: tickText,
			Title: &figure.AxisTitle{Text: "1-specificity<br>(false positive rate)"},
		},
		YAxis: &figure.Axis{
			TickVals: ticks, TickText: tickText,
			Title: &figure.AxisTitle{Text: "sensitivity<br>(true positive rate)"},
		},
		Margin:   &figure.Margin{L: 25, R: 25, T: 50, B: 50},
		Template: figure.GGPlot2(),
		Title:    figure.PaperTitle("ROC curve"),
		Annotations: []figure.Annotation{figure.InfoBox(
			fmt.Sprintf("AUC: %.3f<br>(area under<br>the curve)", roc.AUC),
			0.75, 0.25, "center", "middle", "center")},
	}
	curve.Meta = map[string]any{"auc": roc.AUC}

	return figure.Figure{Data: []figure.Trace{curve, marker}, Layout: layout}
}

// Contingency shows the expected outcome of testing a population at the
// chosen prevalence, with the predictive values.
func (d diagnostic) Contingency(in engine.Inputs) figure.Figure {
	prevalence := in.Value("prevalence")
	p := stats.Classify(in.Value("difference"), in.Value("cutoff")).Predict(prevalence, population)

	sick := figure.Bar("sick", []string{"test positive", "test negative"}, []float64{p.TruePositives, p.FalseNegatives})
	sick.Marker = &figure.Marker{Color: figure.Red}
	sick.ShowLegend = true
	healthy := figure.Bar("healthy", []string{"test positive", "test negative"}, []float64{p.FalsePositives, p.TrueNegatives})
	healthy.Marker = &figure.Marker{Color: figure.Blue}
	healthy.ShowLegend = true
	sick.Meta = map[string]any{"ppv": p.PPV, "npv": p.NPV}

	layout := figure.Layout{
		BarMode:  "group",
		YAxis:    figure.Titled(fmt.Sprintf("people (of %.0f)", population)),
		Legend:   &figure.Legend{XAnchor: "right", YAnchor: "top", X: 1, Y: 1},
		Margin:   &figure.Margin{L: 50, R: 25, T: 50, B: 50},
		Template: figure.GGPlot2(),
		Title:    figure.PaperTitle(fmt.Sprintf("Prevalence %.0f%%", prevalence*100)),
		Annotations: []figure.Annotation{figure.InfoBox(
			fmt.Sprintf("PPV: %.3f<br>NPV: %.3f", p.PPV, p.NPV),
			0.01, 0.99, "left", "top", "left")},
	}
	return figure.Figure{Data: []figure.Trace{sick, healthy}, Layout: layout}
}

func newDiagnosticPage(text PageText) *Page {
	grid := stats.MustGrid(-diagXMax, diagXMax, diagNPoints)
	d := diagnostic{grid: grid, density: stats.PDF(stats.StandardNormal(), grid)}

	p := &Page{
		Name:  NameDiagnostic,
		Path:  "/" + NameDiagnostic,
		Title: "Diagnostic tests",
		Kind:  KindDiagnostic,
		controls: []control.Control{
			{ID: "difference", Label: "separation:", Min: 0, Max: 5, Step: 0.2, Value: 2},
			{ID: "cutoff", Label: "cutoff value:", Min: cutoffMin, Max: cutoffBase, Step: 0.2, Value: 1},
			{ID: "prevalence", Label: "prevalence:", Min: 0.01, Max: 0.5, Step: 0.01, Value: 0.1},
		},
		graphs: []Graph{
			{ID: "dist-display", Title: "Marker distributions", Class: "w3-col m8"},
			{ID: "roc-display", Title: "ROC curve", Class: "w3-col m4"},
			{ID: "contingency-display", Title: "Expected outcomes", Class: "w3-col m8"},
		},
		registry: engine.NewRegistry(NameDiagnostic,
			engine.Transform{
				Name:      "cutoff-range",
				Kind:      engine.KindNormalize,
				Inputs:    []string{"difference"},
				States:    []string{"cutoff"},
				Output:    "cutoff",
				Normalize: d.CutoffRange,
			},
			engine.Transform{
				Name:   "diagnostic-dist",
				Inputs: []string{"difference", "cutoff"},
				Output: "dist-display",
				Figure: d.Distributions,
			},
			engine.Transform{
				Name:   "diagnostic-roc",
				Inputs: []string{"difference", "cutoff"},
				Output: "roc-display",
				Figure: d.ROC,
			},
			engine.Transform{
				Name:   "diagnostic-contingency",
				Inputs: []string{"difference", "cutoff", "prevalence"},
				Output: "contingency-display",
				Figure: d.Contingency,
			},
		),
	}
	applyText(p, text)
	return p
}
