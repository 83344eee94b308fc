// internal/server/server_test.go
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/mwiater/biostat/internal/appconfig"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := pages.NewCatalog()
	require.NoError(t, err)
	return New(appconfig.Default(), c)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPagesServeHTML(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/", "/toc", "/normal_distribution", "/t_distribution", "/cohen_d", "/diagnostic_tests"} {
		rec := do(t, s, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, rec.Body.String(), "Biostatistics", path)
	}

	root := do(t, s, http.MethodGet, "/", nil).Body.String()
	toc := do(t, s, http.MethodGet, "/toc", nil).Body.String()
	assert.Equal(t, toc, root)
	assert.Contains(t, toc, `href="/cohen_d"`)

	normal := do(t, s, http.MethodGet, "/normal_distribution", nil).Body.String()
	assert.Contains(t, normal, `id="sigma-slider"`)
	assert.Contains(t, normal, `id="normal-cdf-display"`)
	assert.Contains(t, normal, "window.BIOSTAT = {")

	cohen := do(t, s, http.MethodGet, "/cohen_d", nil).Body.String()
	assert.Contains(t, cohen, "/assets/Cohen_d.svg")
}

func TestUnknownPathIs404(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/nope", "/toc/", "/cohen_d/"} {
		rec := do(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "404", rec.Body.String(), path)
	}
}

func TestAssets(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"app.js", "style.css", "return.svg", "github.svg", "Cohen_d.svg"} {
		rec := do(t, s, http.MethodGet, "/assets/"+name, nil)
		assert.Equal(t, http.StatusOK, rec.Code, name)
	}
}

func TestUpdateFullRender(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/_update", map[string]any{"page": "/diagnostic_tests"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	var targets []string
	for _, u := range resp.Updates {
		targets = append(targets, u.Target)
	}
	assert.Equal(t, []string{"cutoff", "dist-display", "roc-display", "contingency-display"}, targets)
}

func TestUpdateClampsCutoff(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/_update", map[string]any{
		"page":    "/diagnostic_tests",
		"changed": []string{"difference"},
		"values":  map[string]float64{"difference": 3, "cutoff": 10},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Updates)
	first := resp.Updates[0]
	require.NotNil(t, first.Control)
	assert.Equal(t, "cutoff", first.Target)
	assert.InDelta(t, 7.0, first.Control.Max, 1e-9)
	assert.InDelta(t, 7.0, first.Control.Value, 1e-9)
}

func TestUpdateWithClick(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/_update", map[string]any{
		"page":    "/normal_distribution",
		"changed": []string{"normal-cdf-display"},
		"values":  map[string]float64{"sigma-slider": 10},
		"selections": map[string]any{
			"normal-cdf-display": map[string]any{"points": []map[string]any{{"curveNumber": 1, "pointIndex": 74, "x": 0}}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Updates, 1)
	assert.Equal(t, "normal-pdf-display", resp.Updates[0].Target)
	require.Len(t, resp.Updates[0].Figure.Data, 3)
	assert.Equal(t, "area: 0.500", resp.Updates[0].Figure.Data[2].Text)
}

func TestUpdateRejectsBadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "missing page", body: map[string]any{}, status: http.StatusBadRequest},
		{name: "page without slash", body: map[string]any{"page": "toc"}, status: http.StatusBadRequest},
		{name: "bad id", body: map[string]any{"page": "/cohen_d", "changed": []string{"Bad ID"}}, status: http.StatusBadRequest},
		{name: "unknown page", body: map[string]any{"page": "/nope"}, status: http.StatusNotFound},
		{name: "unknown control", body: map[string]any{"page": "/cohen_d", "values": map[string]float64{"sigma-3": 1}}, status: http.StatusBadRequest},
		{name: "bad click", body: map[string]any{"page": "/normal_distribution", "selections": map[string]any{"normal-cdf-display": map[string]any{"points": []any{}}}}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/_update", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			var resp ErrResp
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.OK)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAPIPages(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/pages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		OK    bool       `json:"ok"`
		Pages []PageInfo `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Pages, 5)
	assert.Equal(t, "/toc", body.Pages[0].Path)
	assert.Equal(t, []string{"fig-display"}, body.Pages[3].Graphs)
}

func TestAPIFigure(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/figures/cohen_d/fig-display?delta-mu=1&sigma-1=1&sigma-2=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Effect size: d=1.00")

	rec = do(t, s, http.MethodGet, "/api/figures/normal_distribution/normal-pdf-display?sigma-slider=10&click=normal-cdf-display:1:74", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "area: ")

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/figures/nope/fig-display", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/figures/cohen_d/nope", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/figures/cohen_d/fig-display?bogus=1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/figures/cohen_d/fig-display?delta-mu=x", nil).Code)
}

func TestAPIImage(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/figures/diagnostic_tests/roc-display/png?width=400&height=400", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, s, http.MethodGet, "/api/figures/t_distribution/tdist-cdf-display/svg", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "<svg")

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/figures/cohen_d/fig-display/gif", nil).Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/_update", map[string]any{"page": "/cohen_d"})
	rec := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "biostat_transform_invocations_total")
	assert.Contains(t, body, "biostat_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	c, err := pages.NewCatalog()
	require.NoError(t, err)
	cfg := appconfig.Default()
	cfg.Metrics = false
	cfg.Websocket = false
	s := New(cfg, c)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/_ws?page=/cohen_d", nil).Code)
}

func TestWebsocketSession(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_ws?page=/diagnostic_tests"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var init ServerMessage
	require.NoError(t, ws.ReadJSON(&init))
	assert.Equal(t, msgInit, init.Type)
	assert.NotEmpty(t, init.Session)
	assert.Len(t, init.Controls, 3)
	assert.Len(t, init.Updates, 4)
	_, ok := s.Sessions().Get(init.Session)
	assert.True(t, ok)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: msgChange, Values: map[string]float64{"difference": 3, "cutoff": 10}}))
	var reply ServerMessage
	require.NoError(t, ws.ReadJSON(&reply))
	require.Equal(t, msgUpdates, reply.Type, reply.Error)
	require.NotEmpty(t, reply.Updates)
	assert.InDelta(t, 7.0, reply.Updates[0].Control.Value, 1e-9)

	// the session remembers the clamped cutoff
	require.NoError(t, ws.WriteJSON(ClientMessage{Type: msgChange, Values: map[string]float64{"prevalence": 0.2}}))
	reply = ServerMessage{}
	require.NoError(t, ws.ReadJSON(&reply))
	require.Len(t, reply.Updates, 1)
	assert.Equal(t, "contingency-display", reply.Updates[0].Target)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: "bogus"}))
	reply = ServerMessage{}
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, msgError, reply.Type)
}

func TestWebsocketClick(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/_ws?page=/t_distribution"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var init ServerMessage
	require.NoError(t, ws.ReadJSON(&init))

	click := json.RawMessage(`{"points":[{"curveNumber":1,"pointIndex":10}]}`)
	require.NoError(t, ws.WriteJSON(ClientMessage{Type: msgClick, Graph: "tdist-cdf-display", Data: click}))
	var reply ServerMessage
	require.NoError(t, ws.ReadJSON(&reply))
	require.Equal(t, msgUpdates, reply.Type, reply.Error)
	require.Len(t, reply.Updates, 1)
	assert.Len(t, reply.Updates[0].Figure.Data, 3)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: msgClick, Graph: "tdist-cdf-display", Data: json.RawMessage("null")}))
	reply = ServerMessage{}
	require.NoError(t, ws.ReadJSON(&reply))
	require.Len(t, reply.Updates, 1)
	assert.Len(t, reply.Updates[0].Figure.Data, 2)
}

func TestWebsocketRejectsStaticPage(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/_ws?page=/toc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
