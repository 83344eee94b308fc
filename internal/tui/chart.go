// internal/tui/chart.go
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/util"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws ys as one row of block characters, resampled to width and
// scaled to [lo, hi].
func sparkline(ys []float64, width int, lo, hi float64) string {
	if len(ys) == 0 || width <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		j := i * len(ys) / width
		level := 0
		if hi > lo {
			level = int((ys[j] - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[min(max(level, 0), len(sparkBlocks)-1)])
	}
	return b.String()
}

// span returns the y range shared by all traces of a figure.
func span(f figure.Figure) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range f.Data {
		for _, y := range t.Y {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 0
	}
	return math.Min(lo, 0), hi
}

// chartSummary renders a figure as a title, one sparkline per named trace and
// the annotation text.
func chartSummary(g pages.Graph, u engine.Update, width int) string {
	f := *u.Figure
	var lines []string

	title := g.Title
	if f.Layout.Title != nil {
		title = util.StripTags(f.Layout.Title.Text, " ")
	}
	lines = append(lines, util.TruncateRunes(title, width))

	lo, hi := span(f)
	labelWidth := 24
	for _, t := range f.Data {
		name := util.StripTags(t.Name, " ")
		if len(t.Categories) > 0 {
			for i, cat := range t.Categories {
				if i < len(t.Y) {
					lines = append(lines, fmt.Sprintf("%-*s %.0f", labelWidth, util.TruncateRunes(name+": "+cat, labelWidth), t.Y[i]))
				}
			}
			continue
		}
		if name == "" && t.Text != "" {
			name = t.Text
		}
		if name == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-*s %s", labelWidth, util.TruncateRunes(name, labelWidth), sparkline(t.Y, max(width-labelWidth-1, 10), lo, hi)))
	}
	for _, a := range f.Layout.Annotations {
		lines = append(lines, util.WrapToWidth(util.StripTags(a.Text, "  "), width))
	}
	return strings.Join(lines, "\n")
}
