// internal/pages/distribution.go
package pages

import (
	"fmt"

	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/stats"
)

const (
	distXMax    = 5.0
	distNPoints = 150

	sigmaMin = 5
	sigmaMax = 30
	dofMin   = 1
	dofMax   = 16

	referenceName = "std. normal<br>distr."
)

// distribution backs the normal and t pages: one slider indexes a
// precomputed table, the cdf chart is clickable and the pdf chart shades the
// area left of the clicked point.
type distribution struct {
	prefix    string
	slider    string
	table     *stats.Table
	reference stats.Curves
	label     func(key int) string
}

func (d *distribution) cdfGraph() string { return d.prefix + "-cdf-display" }
func (d *distribution) pdfGraph() string { return d.prefix + "-pdf-display" }

func (d *distribution) referenceTrace(y []float64) figure.Trace {
	return figure.Scatter(referenceName, d.table.Grid().Values(), y).
		Lines(figure.Line{Dash: "dash", Width: 1.5}).
		Legend(true)
}

func (d *distribution) currentTrace(key int, y []float64) figure.Trace {
	return figure.Scatter(d.label(key), d.table.Grid().Values(), y).
		Lines(figure.Line{Dash: "solid", Width: 3}).
		Legend(true)
}

// CDF renders the reference and current cumulative curves.
func (d *distribution) CDF(in engine.Inputs) figure.Figure {
	key := d.table.Clamp(in.Int(d.slider))
	curves := d.table.Lookup(key)
	return figure.Figure{
		Data: []figure.Trace{
			d.referenceTrace(d.reference.CDF),
			d.currentTrace(key, curves.CDF),
		},
		Layout: figure.CDFLayout(),
	}
}

// PDF renders the reference and current densities. A click on the current
// cdf curve adds the shaded area up to the clicked point, labeled with the
// cumulative probability at the clicked x.
func (d *distribution) PDF(in engine.Inputs) figure.Figure {
	key := d.table.Clamp(in.Int(d.slider))
	curves := d.table.Lookup(key)
	data := []figure.Trace{
		d.referenceTrace(d.reference.PDF),
		d.currentTrace(key, curves.PDF),
	}

	if p, ok := in.Selection(d.cdfGraph()).First(); ok && p.CurveNumber == 1 {
		grid := d.table.Grid()
		i := stats.ClampIndex(p.Index(), grid.Len())
		x := grid.At(i)
		if p.X != nil {
			x = *p.X
		}
		area := d.table.Distribution(key).CDF(x)
		shade := figure.Scatter("", grid.Head(i), curves.PDF[:i+1]).
			Filled("").
			Legend(false).
			Hover(fmt.Sprintf("area: %.3f", area))
		shade.Meta = map[string]any{"area": area, "x": x}
		data = append(data, shade)
	}

	return figure.Figure{Data: data, Layout: figure.PDFLayout()}
}

func (d *distribution) registry(page string) *engine.Registry {
	return engine.NewRegistry(page,
		engine.Transform{
			Name:   d.prefix + "-cdf",
			Inputs: []string{d.slider},
			Output: d.cdfGraph(),
			Figure: d.CDF,
		},
		engine.Transform{
			Name:   d.prefix + "-pdf",
			Inputs: []string{d.slider, d.cdfGraph()},
			Output: d.pdfGraph(),
			Figure: d.PDF,
		},
	)
}

func (d *distribution) graphs() []Graph {
	return []Graph{
		{ID: d.pdfGraph(), Title: "Probability density function", Class: "w3-col w3-mobile dist-chart"},
		{ID: d.cdfGraph(), Title: "Cumulative distribution function", Class: "w3-col w3-mobile dist-chart"},
	}
}

func newNormalPage(text PageText) (*Page, error) {
	grid := stats.MustGrid(-distXMax, distXMax, distNPoints)
	table, err := stats.NewTable(grid, sigmaMin, sigmaMax, func(k int) stats.Distribution {
		return stats.Normal(0, float64(k)/10)
	})
	if err != nil {
		return nil, err
	}
	d := &distribution{
		prefix:    "normal",
		slider:    "sigma-slider",
		table:     table,
		reference: table.Lookup(10),
		label: func(k int) string {
			return fmt.Sprintf("normal distr.<br>(σ=%.1f)", float64(k)/10)
		},
	}

	var marks []control.Mark
	for i := sigmaMin; i <= sigmaMax; i += 5 {
		marks = append(marks, control.Mark{Value: float64(i), Label: fmt.Sprintf("%.1f", float64(i)/10)})
	}
	p := &Page{
		Name:  NameNormal,
		Path:  "/" + NameNormal,
		Title: "Normal distribution",
		Kind:  KindDistribution,
		controls: []control.Control{{
			ID: d.slider, Label: "σ", Min: sigmaMin, Max: sigmaMax, Step: 1, Value: 13, Marks: marks,
		}},
		graphs:   d.graphs(),
		registry: d.registry(NameNormal),
	}
	applyText(p, text)
	return p, nil
}

func newTPage(text PageText) (*Page, error) {
	grid := stats.MustGrid(-distXMax, distXMax, distNPoints)
	table, err := stats.NewTable(grid, dofMin, dofMax, func(k int) stats.Distribution {
		return stats.StudentT(float64(k))
	})
	if err != nil {
		return nil, err
	}
	d := &distribution{
		prefix:    "tdist",
		slider:    "dof-slider",
		table:     table,
		reference: stats.Evaluate(stats.StandardNormal(), grid),
		label: func(k int) string {
			return fmt.Sprintf("t-distribution<br>(dof=%d)", k)
		},
	}

	var marks []control.Mark
	for i := dofMin; i <= dofMax; i += 5 {
		marks = append(marks, control.Mark{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	p := &Page{
		Name:  NameT,
		Path:  "/" + NameT,
		Title: "t-distribution",
		Kind:  KindDistribution,
		controls: []control.Control{{
			ID: d.slider, Label: "degrees of freedom", Min: dofMin, Max: dofMax, Step: 1, Value: 1, Marks: marks,
		}},
		graphs:   d.graphs(),
		registry: d.registry(NameT),
	}
	applyText(p, text)
	return p, nil
}
