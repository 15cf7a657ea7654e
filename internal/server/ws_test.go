package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/interaction"
	"github.com/aviy453/visiosson/internal/layout"
	"github.com/gorilla/websocket"
)

func sampleAt(x, y float64, pinching bool) *interaction.Sample {
	return &interaction.Sample{
		Cursor:     interaction.Point{X: x, Y: y},
		IsPinching: pinching,
	}
}

func saturnCard() []layout.Rect {
	return []layout.Rect{{ID: "saturn", X: 0, Y: 0, Width: 100, Height: 100}}
}

func dialSession(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial session socket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// readUntil reads server messages until one satisfies pred.
func readUntil(t *testing.T, conn *websocket.Conn, what string, pred func(serverMessage) bool) serverMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("reading for %s: %v", what, err)
		}
		if pred(msg) {
			return msg
		}
	}
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg clientMessage) {
	t.Helper()

	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %q message: %v", msg.Type, err)
	}
}

func testSessionServer() *Server {
	provider := facts.NewStaticProvider(map[string]string{
		"Saturn": "fact-saturn",
	})

	return New(Config{
		Catalog: catalog.New([]catalog.Item{
			{ID: "saturn", Title: "Saturn", ImageRef: "/img/saturn.png"},
		}),
		Provider: provider,
	})
}

func TestSessionSocket_Flow(t *testing.T) {
	conn := dialSession(t, testSessionServer())

	// The catalog arrives first so the client can render cards.
	msg := readUntil(t, conn, "catalog", func(m serverMessage) bool { return m.Type == "catalog" })
	if len(msg.Items) != 1 || msg.Items[0].ID != "saturn" {
		t.Fatalf("unexpected catalog: %+v", msg.Items)
	}

	// Tracker ready (zero delay configured): state flips ready.
	sendMessage(t, conn, clientMessage{Type: "ready"})
	msg = readUntil(t, conn, "ready state", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil && m.State.Ready
	})

	// Report the card layout, then hover over the card.
	sendMessage(t, conn, clientMessage{Type: "layout", Cards: saturnCard()})
	sendMessage(t, conn, clientMessage{Type: "sample", Sample: sampleAt(50, 50, false)})
	msg = readUntil(t, conn, "hover state", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil && m.State.HoveredID == "saturn"
	})

	// Pinch: select the card and load its fact.
	sendMessage(t, conn, clientMessage{Type: "sample", Sample: sampleAt(50, 50, true)})
	msg = readUntil(t, conn, "loaded detail", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil &&
			m.State.Selected != nil && !m.State.DetailLoading
	})
	if msg.State.Selected.ID != "saturn" {
		t.Errorf("expected selected 'saturn', got %q", msg.State.Selected.ID)
	}
	if msg.State.DetailContent != "fact-saturn" {
		t.Errorf("expected content 'fact-saturn', got %q", msg.State.DetailContent)
	}

	// Close the detail view.
	sendMessage(t, conn, clientMessage{Type: "close"})
	readUntil(t, conn, "closed state", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil && m.State.Selected == nil
	})
}

func TestSessionSocket_TrackerError(t *testing.T) {
	conn := dialSession(t, testSessionServer())

	readUntil(t, conn, "catalog", func(m serverMessage) bool { return m.Type == "catalog" })

	sendMessage(t, conn, clientMessage{Type: "error", Message: "camera access denied"})
	msg := readUntil(t, conn, "error state", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil && m.State.InitError != ""
	})
	if msg.State.InitError != "camera access denied" {
		t.Errorf("unexpected init error: %q", msg.State.InitError)
	}
	if msg.State.Ready {
		t.Error("ready must stay false on init error")
	}
}

func TestSessionSocket_GateDropsSamples(t *testing.T) {
	s := testSessionServer()
	s.SetGestureEnabled(false)

	conn := dialSession(t, s)
	readUntil(t, conn, "catalog", func(m serverMessage) bool { return m.Type == "catalog" })

	// Layout plus a pinch sample while gated: no selection may result.
	sendMessage(t, conn, clientMessage{Type: "layout", Cards: saturnCard()})
	sendMessage(t, conn, clientMessage{Type: "sample", Sample: sampleAt(50, 50, true)})

	// A direct open intent still works and is the next state we see.
	sendMessage(t, conn, clientMessage{Type: "open", ItemID: "saturn"})
	msg := readUntil(t, conn, "state after gated sample", func(m serverMessage) bool {
		return m.Type == "state" && m.State != nil && m.State.Selected != nil
	})
	if msg.State.HoveredID != "" {
		t.Errorf("gated sample should not have set hover, got %q", msg.State.HoveredID)
	}
}
