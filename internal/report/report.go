// internal/report/report.go
// Package report renders every chart of the catalog into one standalone HTML
// file that draws the figures with plotly.js and needs no server.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/pages"
)

// Data is the view model of the report template.
type Data struct {
	Title       string
	PlotlyURL   string
	Stylesheet  string
	Sections    []Section
	FiguresJSON template.JS
}

// Section is one page of the report.
type Section struct {
	Title  string
	Path   string
	Charts []Chart
}

// Chart is one figure slot; DOMID keys the figure in the payload.
type Chart struct {
	DOMID string
	Title string
}

// Options configure the report's external scripts and title.
type Options struct {
	Title      string
	PlotlyURL  string
	Stylesheet string
}

// Generate evaluates each interactive page at its default slider values and
// renders the report.
func Generate(catalog *pages.Catalog, opts Options) (string, error) {
	data := Data{
		Title:      opts.Title,
		PlotlyURL:  opts.PlotlyURL,
		Stylesheet: opts.Stylesheet,
	}
	if data.Title == "" {
		data.Title = catalog.Title
	}

	figures := make(map[string]figure.Figure)
	for _, p := range catalog.Pages() {
		if !p.Interactive() {
			continue
		}
		updates, err := engine.Evaluate(p, engine.Request{})
		if err != nil {
			return "", fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		drawn := make(map[string]figure.Figure, len(updates))
		for _, u := range updates {
			if u.Figure != nil {
				drawn[u.Target] = *u.Figure
			}
		}

		section := Section{Title: p.Header.Title, Path: p.Path}
		for _, g := range p.GraphSlots() {
			f, ok := drawn[g.ID]
			if !ok {
				continue
			}
			id := p.Name + "-" + g.ID
			figures[id] = f
			section.Charts = append(section.Charts, Chart{DOMID: id, Title: g.Title})
		}
		data.Sections = append(data.Sections, section)
	}

	payload, err := json.Marshal(figures)
	if err != nil {
		return "", err
	}
	data.FiguresJSON = template.JS(payload)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  {{- if .Stylesheet }}
  <link rel="stylesheet" href="{{ .Stylesheet }}">
  {{- end }}
  <script src="{{ .PlotlyURL }}"></script>
  <style>
    body { margin: 0 auto; max-width: 1100px; padding: 1rem; }
    .chart { min-height: 420px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  {{- range .Sections }}
  <section class="w3-container">
    <h2>{{ .Title }} <small><code>{{ .Path }}</code></small></h2>
    {{- range .Charts }}
    <div id="{{ .DOMID }}" class="chart" title="{{ .Title }}"></div>
    {{- end }}
  </section>
  {{- end }}
  <script>
    const figures = {{ .FiguresJSON }};
    for (const [id, fig] of Object.entries(figures)) {
      Plotly.newPlot(id, fig.data, fig.layout, {responsive: true});
    }
  </script>
</body>
</html>
`
