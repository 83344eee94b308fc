// internal/figure/figure_test.go
package figure

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatterJSONUsesPlotlyKeys(t *testing.T) {
	tr := Scatter("normal", []float64{0, 1}, []float64{0.4, 0.2}).
		Lines(Line{Dash: "dash", Width: 1.5}).
		Legend(true)

	raw, err := json.Marshal(tr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "scatter", got["type"])
	assert.Equal(t, "lines", got["mode"])
	assert.Equal(t, true, got["showlegend"])
	assert.Equal(t, []any{0.0, 1.0}, got["x"])
	assert.Equal(t, map[string]any{"dash": "dash", "width": 1.5}, got["line"])
	assert.NotContains(t, got, "fill")
}

func TestFilledTraceCarriesHoverText(t *testing.T) {
	tr := Scatter("", []float64{0}, []float64{1}).Filled("rgba(1,2,3,0.5)").Hover("area: 0.500")
	assert.Equal(t, ModeNone, tr.Mode)
	assert.Equal(t, FillToZeroY, tr.Fill)
	assert.Equal(t, "fills", tr.HoverOn)
	assert.Equal(t, "text", tr.HoverInfo)
	assert.Equal(t, "area: 0.500", tr.Text)
}

func TestBarEmitsCategoriesAsX(t *testing.T) {
	raw, err := json.Marshal(Bar("counts", []string{"TP", "FN"}, []float64{10, 2}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"x":["TP","FN"]`)
	assert.Contains(t, string(raw), `"type":"bar"`)
	assert.Equal(t, 1, strings.Count(string(raw), `"x":`))
}

func TestLayoutsShareCommonStyling(t *testing.T) {
	pdf := PDFLayout()
	cdf := CDFLayout()

	assert.Equal(t, "pdf", pdf.YAxis.Title.Text)
	assert.Equal(t, "cdf", cdf.YAxis.Title.Text)
	assert.Equal(t, "top", pdf.Legend.YAnchor)
	assert.Equal(t, "bottom", cdf.Legend.YAnchor)
	assert.Equal(t, *pdf.Margin, *cdf.Margin)
	assert.Equal(t, pdf.Colorway, cdf.Colorway)

	pdf.Colorway[0] = "#000000"
	assert.Equal(t, Red, Colorway()[0])
}

func TestHiddenAxisSerializesEmptyTicks(t *testing.T) {
	raw, err := json.Marshal(Hidden("diagnostic marker"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":{"text":"diagnostic marker"},"ticks":"","showticklabels":false}`, string(raw))
}

func TestDecodeAcceptsBothXKinds(t *testing.T) {
	in := Figure{Data: []Trace{
		Scatter("curve", []float64{1, 2}, []float64{3, 4}),
		Bar("counts", []string{"a", "b"}, []float64{5, 6}),
	}}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Figure
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Data, 2)
	assert.Equal(t, []float64{1, 2}, out.Data[0].X)
	assert.Nil(t, out.Data[0].Categories)
	assert.Equal(t, []string{"a", "b"}, out.Data[1].Categories)
	assert.Nil(t, out.Data[1].X)
	assert.Equal(t, TypeBar, out.Data[1].Type)
}
