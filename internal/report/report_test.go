// internal/report/report_test.go
package report

import (
	"strings"
	"testing"

	"github.com/mwiater/biostat/internal/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	catalog, err := pages.NewCatalog()
	require.NoError(t, err)

	html, err := Generate(catalog, Options{PlotlyURL: "https://cdn.example/plotly.js"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<script src="https://cdn.example/plotly.js"></script>`)
	assert.Contains(t, html, "<title>"+catalog.Title+"</title>")
	assert.Contains(t, html, "Plotly.newPlot")
	assert.NotContains(t, html, "stylesheet")

	for _, p := range catalog.Pages() {
		if !p.Interactive() {
			continue
		}
		for _, g := range p.Graphs() {
			id := p.Name + "-" + g
			assert.Contains(t, html, `id="`+id+`"`)
			assert.Contains(t, html, `"`+id+`":`)
		}
	}
}

func TestGenerateTitleOverride(t *testing.T) {
	catalog, err := pages.NewCatalog()
	require.NoError(t, err)

	html, err := Generate(catalog, Options{Title: "Snapshot", Stylesheet: "/w3.css"})
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Snapshot</title>")
	assert.Contains(t, html, `href="/w3.css"`)
}
