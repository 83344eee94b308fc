// internal/pages/catalog.go
package pages

import (
	"fmt"

	"github.com/mwiater/biostat/internal/engine"
)

// Page names, also used as keys of the content file.
const (
	NameTOC        = "toc"
	NameNormal     = "normal_distribution"
	NameT          = "t_distribution"
	NameCohen      = "cohen_d"
	NameDiagnostic = "diagnostic_tests"
)

// Catalog holds every page, with grids and lookup tables computed once.
type Catalog struct {
	Title  string
	pages  []*Page
	byName map[string]*Page
}

// NewCatalog builds all pages from the embedded text.
func NewCatalog() (*Catalog, error) {
	return NewCatalogFrom(defaultContent)
}

// NewCatalogFrom builds all pages using the given YAML content.
func NewCatalogFrom(content []byte) (*Catalog, error) {
	text, err := LoadContent(content, NameTOC, NameNormal, NameT, NameCohen, NameDiagnostic)
	if err != nil {
		return nil, err
	}

	normal, err := newNormalPage(text.Pages[NameNormal])
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", NameNormal, err)
	}
	tdist, err := newTPage(text.Pages[NameT])
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", NameT, err)
	}
	cohen := newCohenPage(text.Pages[NameCohen])
	diagnostic := newDiagnosticPage(text.Pages[NameDiagnostic])
	topics := []*Page{normal, tdist, cohen, diagnostic}

	for _, p := range topics {
		for _, c := range p.controls {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("page %s: %w", p.Name, err)
			}
		}
	}

	c := &Catalog{Title: text.Title, byName: make(map[string]*Page)}
	c.pages = append([]*Page{newTOCPage(text.Pages[NameTOC], topics)}, topics...)
	for _, p := range c.pages {
		c.byName[p.Name] = p
	}
	return c, nil
}

// Pages returns the pages, table of contents first.
func (c *Catalog) Pages() []*Page {
	return append([]*Page(nil), c.pages...)
}

// Page finds a page by name.
func (c *Catalog) Page(name string) (*Page, bool) {
	p, ok := c.byName[name]
	return p, ok
}

func newTOCPage(text PageText, topics []*Page) *Page {
	p := &Page{
		Name:     NameTOC,
		Path:     "/toc",
		Title:    "Statistics Webapps",
		Kind:     KindTOC,
		registry: engine.NewRegistry(NameTOC),
	}
	applyText(p, text)
	for _, t := range topics {
		p.Links = append(p.Links, Link{Title: t.Header.Title, Href: t.Path})
	}
	return p
}
