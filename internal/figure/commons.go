// internal/figure/commons.go
package figure

// colorway is the qualitative palette shared by every page.
var colorway = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33",
	"#a65628", "#f781bf", "#999999",
}

// Named palette entries.
const (
	Red    = "#e41a1c"
	Blue   = "#377eb8"
	Green  = "#4daf4a"
	Purple = "#984ea3"
	Orange = "#ff7f00"
)

// Colorway returns a copy of the shared palette.
func Colorway() []string {
	return append([]string(nil), colorway...)
}

// GGPlot2 returns the grey-panel template every page uses.
func GGPlot2() *Template {
	axis := TemplateAxis{
		GridColor: "white",
		LineColor: "white",
		Ticks:     "outside",
		TickColor: "rgb(51,51,51)",
		ZeroLine:  false,
	}
	return &Template{Layout: TemplateLayout{
		PaperBgColor: "white",
		PlotBgColor:  "rgb(237,237,237)",
		XAxis:        axis,
		YAxis:        axis,
		Font:         TemplateFont{Color: "rgb(51,51,51)"},
	}}
}

// CommonLayout returns the margin, template and palette shared by the
// distribution pages.
func CommonLayout() Layout {
	return Layout{
		Margin:   &Margin{T: 80, B: 20, L: 10, R: 10},
		Template: GGPlot2(),
		Colorway: Colorway(),
	}
}

// PaperTitle returns a left-aligned title.
func PaperTitle(text string) *Title {
	return &Title{Text: text, XRef: "paper", X: 0}
}

// Titled returns an axis with a title.
func Titled(text string) *Axis {
	return &Axis{Title: &AxisTitle{Text: text}}
}

// PDFLayout is the layout of a probability density chart.
func PDFLayout() Layout {
	l := CommonLayout()
	l.XAxis = Titled("random variable")
	l.YAxis = Titled("pdf")
	l.Legend = &Legend{XAnchor: "right", YAnchor: "top", X: 1, Y: 1}
	l.Title = PaperTitle("Probability density function")
	return l
}

// CDFLayout is the layout of a cumulative distribution chart.
func CDFLayout() Layout {
	l := CommonLayout()
	l.XAxis = Titled("random variable")
	l.YAxis = Titled("cdf")
	l.Legend = &Legend{XAnchor: "right", YAnchor: "bottom", X: 1, Y: 0.05}
	l.Title = PaperTitle("Cumulative distribution function")
	return l
}

// Hidden returns an axis without ticks or tick labels.
func Hidden(title string) *Axis {
	none := ""
	show := false
	a := &Axis{Ticks: &none, ShowTickLabels: &show}
	if title != "" {
		a.Title = &AxisTitle{Text: title}
	}
	return a
}

// InfoBox returns the semi-transparent paper annotation used for summary text.
func InfoBox(text string, x, y float64, xanchor, yanchor, align string) Annotation {
	return Annotation{
		Text:      text,
		X:         x,
		Y:         y,
		XRef:      "paper",
		YRef:      "paper",
		ShowArrow: false,
		Font:      Font{Size: 14},
		XAnchor:   xanchor,
		YAnchor:   yanchor,
		Align:     align,
		BgColor:   "rgba(255, 255, 255, 0.8)",
		BorderPad: 3,
	}
}
