// internal/router/router.go
// Package router maps request paths to pages.
package router

import (
	"github.com/mwiater/biostat/internal/pages"
)

// NotFound is the body served for any path that is not a page.
const NotFound = "404"

// Router resolves paths against a catalog.
type Router struct {
	routes map[string]*pages.Page
}

// New indexes every page of the catalog by its path. The root path serves the
// table of contents.
func New(c *pages.Catalog) *Router {
	r := &Router{routes: make(map[string]*pages.Page)}
	for _, p := range c.Pages() {
		r.routes[p.Path] = p
	}
	if toc, ok := c.Page(pages.NameTOC); ok {
		r.routes["/"] = toc
	}
	return r
}

// Resolve returns the page for path. Paths match exactly; "/toc/" is not a page.
func (r *Router) Resolve(path string) (*pages.Page, bool) {
	if path == "" {
		path = "/"
	}
	p, ok := r.routes[path]
	return p, ok
}

// Paths returns every routable path, "/" included.
func (r *Router) Paths() []string {
	out := make([]string, 0, len(r.routes))
	for p := range r.routes {
		out = append(out, p)
	}
	return out
}
