// internal/server/websocket.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/logging"
)

// Websocket message types.
const (
	msgInit    = "init"
	msgChange  = "change"
	msgClick   = "click"
	msgUpdates = "updates"
	msgError   = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 64 * 1024,
}

// ClientMessage is what the browser sends: a batch of slider values or one
// click (Data null clears the graph's selection).
type ClientMessage struct {
	Type   string             `json:"type"`
	Values map[string]float64 `json:"values,omitempty"`
	Graph  string             `json:"graph,omitempty"`
	Data   json.RawMessage    `json:"data,omitempty"`
}

// ServerMessage is what the server pushes back.
type ServerMessage struct {
	Type     string            `json:"type"`
	Session  string            `json:"session,omitempty"`
	Controls []control.Control `json:"controls,omitempty"`
	Updates  []engine.Update   `json:"updates,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func sendJSON(ws *websocket.Conn, v any) error {
	err := ws.WriteJSON(v)
	if err != nil {
		logging.LogEvent("websocket write failed: %v", err)
	}
	return err
}

func (s *Server) handleWebsocket(c *gin.Context) {
	p, ok := s.router.Resolve(c.Query("page"))
	if !ok || !p.Interactive() {
		errorJSON(c, http.StatusNotFound, fmt.Errorf("no interactive page at %q", c.Query("page")))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.LogEvent("websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	session := s.store.Open(p)
	defer s.store.Close(session.ID())

	if err := sendJSON(ws, ServerMessage{
		Type:     msgInit,
		Session:  session.ID(),
		Controls: session.Controls(),
		Updates:  session.Refresh(),
	}); err != nil {
		return
	}

	for {
		var msg ClientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.LogEvent("websocket session %s closed: %v", session.ID(), err)
			}
			return
		}
		websocketMessages.WithLabelValues(msg.Type).Inc()

		reply, err := s.handleMessage(session, msg)
		if err != nil {
			reply = ServerMessage{Type: msgError, Error: err.Error()}
		}
		if err := sendJSON(ws, reply); err != nil {
			return
		}
	}
}

// handleMessage applies one client message to the session.
func (s *Server) handleMessage(session *engine.Session, msg ClientMessage) (ServerMessage, error) {
	var ch engine.Change
	switch msg.Type {
	case msgChange:
		ch.Values = msg.Values
	case msgClick:
		sel, err := control.ParseSelection(msg.Data)
		if err != nil {
			return ServerMessage{}, err
		}
		ch.Selections = map[string]*control.Selection{msg.Graph: sel}
	default:
		return ServerMessage{}, fmt.Errorf("unknown message type %q", msg.Type)
	}

	if s.cfg.Debug {
		logging.LogUpdate("in", session.Route(), session.ID(), msg)
	}
	updates, err := session.Apply(ch)
	if err != nil {
		return ServerMessage{}, err
	}
	return ServerMessage{Type: msgUpdates, Updates: updates}, nil
}
