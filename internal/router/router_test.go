// internal/router/router_test.go
package router

import (
	"testing"

	"github.com/mwiater/biostat/internal/pages"
)

func newRouter(t *testing.T) *Router {
	t.Helper()
	c, err := pages.NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return New(c)
}

func TestResolve(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		path string
		want string
	}{
		{"/", pages.NameTOC},
		{"/toc", pages.NameTOC},
		{"/normal_distribution", pages.NameNormal},
		{"/t_distribution", pages.NameT},
		{"/cohen_d", pages.NameCohen},
		{"/diagnostic_tests", pages.NameDiagnostic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, ok := r.Resolve(tt.path)
			if !ok {
				t.Fatalf("Resolve(%q) not found", tt.path)
			}
			if p.Name != tt.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tt.path, p.Name, tt.want)
			}
		})
	}
}

func TestRootAndTOCAreIdentical(t *testing.T) {
	r := newRouter(t)
	root, _ := r.Resolve("/")
	toc, _ := r.Resolve("/toc")
	if root != toc {
		t.Fatalf("/ and /toc resolve to different pages")
	}
}

func TestResolveUnknown(t *testing.T) {
	r := newRouter(t)
	for _, path := range []string{"/nope", "/normal", "/toc/extra", "/assets/x.svg", "/toc/", "/cohen_d/"} {
		if _, ok := r.Resolve(path); ok {
			t.Fatalf("Resolve(%q) should miss", path)
		}
	}
	if NotFound != "404" {
		t.Fatalf("NotFound = %q", NotFound)
	}
	if got := len(r.Paths()); got != 6 {
		t.Fatalf("Paths() = %d entries, want 6", got)
	}
}
