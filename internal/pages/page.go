// internal/pages/page.go
// Package pages declares the topic pages: their static layout, their controls
// and the transforms that turn control values into charts.
package pages

import (
	"slices"

	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
)

// Kind selects the HTML arrangement of a page.
type Kind string

const (
	KindTOC          Kind = "toc"
	KindDistribution Kind = "distribution"
	KindEffectSize   Kind = "effect-size"
	KindDiagnostic   Kind = "diagnostic"
)

// Header is the title bar with an optional logo link.
type Header struct {
	Title string
	Logo  string
	Href  string
}

// Graph is a chart slot on the page.
type Graph struct {
	ID    string
	Title string
	Class string
}

// Link is an entry of the table of contents.
type Link struct {
	Title string
	Href  string
}

// Image is a static illustration.
type Image struct {
	Src string
	Alt string
}

// Page is one topic. Pages are built once and shared read-only.
type Page struct {
	Name       string
	Path       string
	Title      string
	Kind       Kind
	Header     Header
	Paragraphs []string
	Prompt     string
	Notes      []string
	Image      *Image
	Links      []Link

	controls []control.Control
	graphs   []Graph
	registry *engine.Registry
}

// Route returns the canonical path.
func (p *Page) Route() string { return p.Path }

// Controls returns copies of the controls with their default values.
func (p *Page) Controls() []control.Control { return slices.Clone(p.controls) }

// Control returns the default definition of one control.
func (p *Page) Control(id string) (control.Control, bool) {
	for _, c := range p.controls {
		if c.ID == id {
			return c, true
		}
	}
	return control.Control{}, false
}

// Graphs returns the chart slot IDs.
func (p *Page) Graphs() []string {
	ids := make([]string, 0, len(p.graphs))
	for _, g := range p.graphs {
		ids = append(ids, g.ID)
	}
	return ids
}

// GraphSlots returns the chart slots with their layout hints.
func (p *Page) GraphSlots() []Graph { return slices.Clone(p.graphs) }

// Transforms returns the page's transform table. Static pages return an empty table.
func (p *Page) Transforms() *engine.Registry { return p.registry }

// Interactive reports whether the page has controls or charts.
func (p *Page) Interactive() bool { return p.registry.Len() > 0 }

// Defaults returns the default control values keyed by ID.
func (p *Page) Defaults() map[string]float64 {
	out := make(map[string]float64, len(p.controls))
	for _, c := range p.controls {
		out[c.ID] = c.Value
	}
	return out
}

func applyText(p *Page, t PageText) {
	p.Header = Header{Title: t.Heading, Logo: t.Logo, Href: t.Href}
	p.Paragraphs = t.Paragraphs
	p.Prompt = t.Prompt
	p.Notes = t.Notes
	if t.Title != "" {
		p.Title = t.Title
	}
}
