package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/interaction"
	"github.com/aviy453/visiosson/internal/layout"
	"github.com/aviy453/visiosson/internal/session"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// clientMessage is an inbound message from the browser. Type selects which
// of the optional fields is meaningful.
type clientMessage struct {
	Type    string              `json:"type"`
	Message string              `json:"message,omitempty"`
	Sample  *interaction.Sample `json:"sample,omitempty"`
	Cards   []layout.Rect       `json:"cards,omitempty"`
	ItemID  string              `json:"itemId,omitempty"`
}

// serverMessage is an outbound message to the browser.
type serverMessage struct {
	Type  string            `json:"type"`
	Items []catalog.Item    `json:"items,omitempty"`
	State *session.Snapshot `json:"state,omitempty"`
}

// SessionHandler runs one interaction session per WebSocket connection. The
// browser pushes tracker readiness, gesture samples, layout reports, and
// open/close intents; the handler pushes back a state snapshot after every
// change.
type SessionHandler struct {
	catalog    *catalog.Catalog
	provider   facts.Provider
	readyDelay time.Duration
	enabled    func() bool

	mu       sync.Mutex
	sessions int
	onCount  func(n int)
}

// NewSessionHandler creates a SessionHandler. enabled gates gesture sample
// processing; nil means always enabled.
func NewSessionHandler(c *catalog.Catalog, p facts.Provider, readyDelay time.Duration, enabled func() bool) *SessionHandler {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &SessionHandler{
		catalog:    c,
		provider:   p,
		readyDelay: readyDelay,
		enabled:    enabled,
	}
}

// OnSessionCount sets the callback invoked when a session connects or
// disconnects, with the new session count.
func (h *SessionHandler) OnSessionCount(fn func(n int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCount = fn
}

func (h *SessionHandler) addSession(delta int) {
	h.mu.Lock()
	h.sessions += delta
	n := h.sessions
	fn := h.onCount
	h.mu.Unlock()

	if fn != nil {
		fn(n)
	}
}

// ServeHTTP upgrades the connection and runs the session until the client
// disconnects.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.addSession(1)
	defer h.addSession(-1)

	// Fetch completions and the ready timer arrive on other goroutines;
	// gorilla permits one concurrent writer, so writes share a mutex.
	var writeMu sync.Mutex
	send := func(msg serverMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("websocket write error: %v", err)
		}
	}

	hits := layout.NewIndex()
	ctrl := session.New(session.Config{
		Catalog:    h.catalog,
		Provider:   h.provider,
		HitTester:  hits,
		ReadyDelay: h.readyDelay,
		OnChange: func(snap session.Snapshot) {
			s := snap
			send(serverMessage{Type: "state", State: &s})
		},
	})

	// The client renders cards from the catalog before any state arrives.
	send(serverMessage{Type: "catalog", Items: h.catalog.Items()})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("websocket decode error: %v", err)
			continue
		}

		h.dispatch(ctrl, hits, msg)
	}
}

// dispatch routes one inbound message to the controller. Messages are
// handled to completion in arrival order; there is no overlapping frame
// processing within a session.
func (h *SessionHandler) dispatch(ctrl *session.Controller, hits *layout.Index, msg clientMessage) {
	switch msg.Type {
	case "ready":
		ctrl.OnReady()
	case "error":
		ctrl.OnError(msg.Message)
	case "sample":
		if msg.Sample == nil || !h.enabled() {
			return
		}
		ctrl.OnGestureSample(*msg.Sample)
	case "layout":
		hits.Update(msg.Cards)
	case "open":
		ctrl.RequestOpen(msg.ItemID)
	case "close":
		ctrl.RequestClose()
	default:
		log.Printf("websocket unknown message type %q", msg.Type)
	}
}
