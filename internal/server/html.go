// internal/server/html.go
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/router"
)

//go:embed assets templates
var embedded embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"markID": func(c control.Control) string { return c.ID + "-marks" },
}).ParseFS(embedded, "templates/page.html"))

// pageState is handed to assets/app.js as the initial client state.
type pageState struct {
	Page      string            `json:"page"`
	Websocket bool              `json:"websocket"`
	Controls  []control.Control `json:"controls"`
	Graphs    []string          `json:"graphs"`
	Updates   []engine.Update   `json:"updates"`
}

type pageView struct {
	AppTitle     string
	Stylesheet   string
	PlotlyScript string
	Page         *pages.Page
	Controls     []control.Control
	Graphs       []pages.Graph
	State        template.JS
}

func (s *Server) handlePage(c *gin.Context) {
	p, ok := s.router.Resolve(c.Request.URL.Path)
	if !ok {
		c.String(http.StatusNotFound, router.NotFound)
		return
	}

	html, err := s.renderPage(p)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// renderPage draws the page with its default charts already in place, so the
// first paint needs no round trip.
func (s *Server) renderPage(p *pages.Page) ([]byte, error) {
	state := pageState{
		Page:      p.Path,
		Websocket: s.cfg.Websocket,
		Controls:  p.Controls(),
		Graphs:    p.Graphs(),
	}
	if p.Interactive() {
		updates, err := engine.Evaluate(p, engine.Request{})
		if err != nil {
			return nil, err
		}
		state.Updates = updates
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageView{
		AppTitle:     s.catalog.Title,
		Stylesheet:   s.cfg.Stylesheet(),
		PlotlyScript: s.cfg.PlotlyScript(),
		Page:         p,
		Controls:     p.Controls(),
		Graphs:       p.GraphSlots(),
		State:        template.JS(payload),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
