// internal/pages/cohen.go
package pages

import (
	"fmt"

	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/stats"
)

const (
	cohenXMax    = 6.0
	cohenNPoints = 200

	controlFill   = "rgba(152,78,163,0.5)"
	treatmentFill = "rgba(77,175,74,0.5)"
)

type effectSize struct {
	grid stats.Grid
}

// Figure overlays the control density at 0 and the treatment density shifted
// by Δμ, titled with Cohen's d.
func (e effectSize) Figure(in engine.Inputs) figure.Figure {
	deltaMu := in.Value("delta-mu")
	sigma1 := in.Value("sigma-1")
	sigma2 := in.Value("sigma-2")

	controlGroup := figure.Scatter("control group", e.grid.Values(), stats.PDF(stats.Normal(0, sigma1), e.grid)).
		Filled(controlFill).
		Legend(true)
	treatment := figure.Scatter("treatment group", e.grid.Shifted(deltaMu), stats.PDF(stats.Normal(0, sigma2), e.grid)).
		Filled(treatmentFill).
		Legend(true)

	d := stats.CohenD(deltaMu, sigma1, sigma2)
	title := fmt.Sprintf("Effect size: d=%.2f<br>(Δμ=%.1f, σ<sub>1</sub>=%.1f, σ<sub>2</sub>=%.1f)",
		d, deltaMu, sigma1, sigma2)

	layout := figure.CommonLayout()
	layout.XAxis = figure.Titled("measured quantity")
	layout.YAxis = figure.Titled("pdf")
	layout.Legend = &figure.Legend{XAnchor: "right", YAnchor: "top", X: 1, Y: 1}
	layout.Title = figure.PaperTitle(title)

	return figure.Figure{Data: []figure.Trace{controlGroup, treatment}, Layout: layout}
}

func sigmaControl(id, label string) control.Control {
	return control.Control{
		ID: id, Label: label, Min: 0.5, Max: 2.0, Step: 0.1, Value: 1,
		Marks: []control.Mark{{Value: 0.5, Label: "0.5"}, {Value: 1, Label: "1.0"}, {Value: 1.5, Label: "1.5"}, {Value: 2, Label: "2.0"}},
	}
}

func newCohenPage(text PageText) *Page {
	e := effectSize{grid: stats.MustGrid(-cohenXMax, cohenXMax, cohenNPoints)}

	var deltaMarks []control.Mark
	for i := 0; i <= 5; i++ {
		deltaMarks = append(deltaMarks, control.Mark{Value: float64(i), Label: fmt.Sprintf("%.1f", float64(i))})
	}
	p := &Page{
		Name:  NameCohen,
		Path:  "/" + NameCohen,
		Title: "Cohen's d-value",
		Kind:  KindEffectSize,
		Image: &Image{Src: "/assets/Cohen_d.svg", Alt: "d = (μ₁ - μ₂) / sqrt((σ₁² + σ₂²) / 2)"},
		controls: []control.Control{
			{ID: "delta-mu", Label: "set Δμ:", Min: 0, Max: 5, Step: 0.2, Value: 2, Marks: deltaMarks},
			sigmaControl("sigma-1", "set σ₁:"),
			sigmaControl("sigma-2", "set σ₂:"),
		},
		graphs: []Graph{{ID: "fig-display", Title: "Effect size", Class: "w3-col"}},
		registry: engine.NewRegistry(NameCohen, engine.Transform{
			Name:   "cohen-d",
			Inputs: []string{"delta-mu", "sigma-1", "sigma-2"},
			Output: "fig-display",
			Figure: e.Figure,
		}),
	}
	applyText(p, text)
	return p
}
