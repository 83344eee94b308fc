// internal/server/api.go
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/figure"
	"github.com/mwiater/biostat/internal/logging"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/render"
)

// ErrResp is the body of every failed API call.
type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// UpdateRequest is a stateless update: the full client state plus the IDs
// that changed. An empty Changed list asks for a full render.
type UpdateRequest struct {
	Page       string                     `json:"page" binding:"required,startswith=/"`
	Changed    []string                   `json:"changed" binding:"omitempty,dive,elementid"`
	Values     map[string]float64         `json:"values" binding:"omitempty,dive,keys,elementid,endkeys"`
	Selections map[string]json.RawMessage `json:"selections" binding:"omitempty,dive,keys,elementid,endkeys"`
}

// UpdateResponse carries the updates in dispatch order.
type UpdateResponse struct {
	OK      bool            `json:"ok"`
	Updates []engine.Update `json:"updates"`
}

// PageInfo describes one page for API clients.
type PageInfo struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Title    string            `json:"title"`
	Kind     pages.Kind        `json:"kind"`
	Controls []control.Control `json:"controls"`
	Graphs   []string          `json:"graphs"`
}

var (
	elementIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	validationsOnce  sync.Once
)

// registerValidations adds the element ID rule to gin's validator.
func registerValidations() {
	validationsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("elementid", func(fl validator.FieldLevel) bool {
				return elementIDPattern.MatchString(fl.Field().String())
			})
		}
	})
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, ErrResp{OK: false, Error: err.Error()})
}

// statusFor maps engine lookup failures to client errors.
func statusFor(err error) int {
	if errors.Is(err, engine.ErrUnknownControl) || errors.Is(err, engine.ErrUnknownGraph) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseSelections(raw map[string]json.RawMessage) (map[string]*control.Selection, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]*control.Selection, len(raw))
	for graph, data := range raw {
		sel, err := control.ParseSelection(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", graph, err)
		}
		out[graph] = sel
	}
	return out, nil
}

func (s *Server) handleUpdate(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}
	p, ok := s.router.Resolve(req.Page)
	if !ok {
		errorJSON(c, http.StatusNotFound, fmt.Errorf("unknown page %q", req.Page))
		return
	}
	selections, err := parseSelections(req.Selections)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	if s.cfg.Debug {
		logging.LogUpdate("in", p.Path, "", req)
	}

	updates, err := engine.Evaluate(p, engine.Request{
		Changed: req.Changed,
		Change:  engine.Change{Values: req.Values, Selections: selections},
	})
	if err != nil {
		errorJSON(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, UpdateResponse{OK: true, Updates: updates})
}

func (s *Server) handlePages(c *gin.Context) {
	var out []PageInfo
	for _, p := range s.catalog.Pages() {
		out = append(out, PageInfo{
			Name:     p.Name,
			Path:     p.Path,
			Title:    p.Title,
			Kind:     p.Kind,
			Controls: p.Controls(),
			Graphs:   p.Graphs(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "title": s.catalog.Title, "pages": out})
}

// figureFromQuery renders one graph of a page for the control values and
// clicks in the query string: ?sigma-slider=10&click=normal-cdf-display:1:74.
func (s *Server) figureFromQuery(c *gin.Context) (figure.Figure, int, error) {
	p, ok := s.catalog.Page(c.Param("page"))
	if !ok {
		return figure.Figure{}, http.StatusNotFound, fmt.Errorf("unknown page %q", c.Param("page"))
	}
	graph := c.Param("graph")

	ch := engine.Change{Values: map[string]float64{}, Selections: map[string]*control.Selection{}}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) == 0 {
			continue
		}
		switch key {
		case "click":
			for _, v := range vals {
				g, sel, err := control.ParseClick(v)
				if err != nil {
					return figure.Figure{}, http.StatusBadRequest, err
				}
				ch.Selections[g] = sel
			}
		case "width", "height":
		default:
			_, v, err := control.ParseAssignment(key + "=" + vals[0])
			if err != nil {
				return figure.Figure{}, http.StatusBadRequest, err
			}
			ch.Values[key] = v
		}
	}

	updates, err := engine.Evaluate(p, engine.Request{Change: ch})
	if err != nil {
		return figure.Figure{}, statusFor(err), err
	}
	for _, u := range updates {
		if u.Target == graph && u.Figure != nil {
			return *u.Figure, http.StatusOK, nil
		}
	}
	return figure.Figure{}, http.StatusNotFound, fmt.Errorf("page %s has no graph %q", p.Name, graph)
}

func (s *Server) handleFigure(c *gin.Context) {
	f, status, err := s.figureFromQuery(c)
	if err != nil {
		errorJSON(c, status, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) handleImage(c *gin.Context) {
	format, err := render.ParseFormat(c.Param("format"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	f, status, err := s.figureFromQuery(c)
	if err != nil {
		errorJSON(c, status, err)
		return
	}
	opts := render.Options{}
	opts.Width, _ = strconv.Atoi(c.Query("width"))
	opts.Height, _ = strconv.Atoi(c.Query("height"))

	var buf bytes.Buffer
	if err := render.Render(&buf, f, format, opts); err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
