package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/server"
	"github.com/aviy453/visiosson/internal/store"
	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Sample  json.RawMessage `json:"sample,omitempty"`
	Cards   json.RawMessage `json:"cards,omitempty"`
	ItemID  string          `json:"itemId,omitempty"`
	Items   json.RawMessage `json:"items,omitempty"`
	State   *stateView      `json:"state,omitempty"`
}

type stateView struct {
	Ready         bool          `json:"ready"`
	InitError     string        `json:"initError"`
	HoveredID     string        `json:"hoveredId"`
	Selected      *catalog.Item `json:"selected"`
	DetailContent string        `json:"detailContent"`
	DetailLoading bool          `json:"detailLoading"`
}

func TestE2E_PinchToFact(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	// Seed the catalog the way main does
	defaults := catalog.Default()
	seed := make([]*store.Item, len(defaults))
	for i, it := range defaults {
		seed[i] = &store.Item{ID: it.ID, Title: it.Title, ImageRef: it.ImageRef}
	}
	if err := s.Items().Seed(seed); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	provider := facts.NewCachedProvider(
		facts.NewStaticProvider(facts.DefaultFacts()),
		s.Facts(),
	)

	srv := server.New(server.Config{
		Store:    s,
		Catalog:  catalog.New(defaults),
		Provider: provider,
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CatalogAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/items")
		if err != nil {
			t.Fatalf("list items error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body struct {
			Items []catalog.Item `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode items error = %v", err)
		}
		if len(body.Items) != len(defaults) {
			t.Fatalf("expected %d items, got %d", len(defaults), len(body.Items))
		}
	})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial session error = %v", err)
	}
	defer conn.Close()

	send := func(raw string) {
		t.Helper()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
			t.Fatalf("send error = %v", err)
		}
	}

	readState := func(what string, pred func(*stateView) bool) *stateView {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				t.Fatalf("reading for %s: %v", what, err)
			}
			if msg.Type == "state" && msg.State != nil && pred(msg.State) {
				return msg.State
			}
		}
	}

	t.Run("SessionFlow", func(t *testing.T) {
		// Catalog arrives first
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var first wsMessage
		if err := conn.ReadJSON(&first); err != nil {
			t.Fatalf("read catalog error = %v", err)
		}
		if first.Type != "catalog" {
			t.Fatalf("expected catalog message first, got %q", first.Type)
		}

		// Tracker comes up
		send(`{"type":"ready"}`)
		readState("ready", func(s *stateView) bool { return s.Ready })

		// Renderer reports where the cards are
		send(`{"type":"layout","cards":[
			{"id":"mars","x":0,"y":0,"w":100,"h":100},
			{"id":"saturn","x":120,"y":0,"w":100,"h":100}
		]}`)

		// Hover over Saturn
		send(`{"type":"sample","sample":{"cursor":{"x":150,"y":50},"isPinching":false}}`)
		readState("hover", func(s *stateView) bool { return s.HoveredID == "saturn" })

		// Pinch: detail opens and the fact loads
		send(`{"type":"sample","sample":{"cursor":{"x":150,"y":50},"isPinching":true}}`)
		state := readState("loaded detail", func(s *stateView) bool {
			return s.Selected != nil && !s.DetailLoading
		})
		if state.Selected.ID != "saturn" {
			t.Errorf("expected selected 'saturn', got %q", state.Selected.ID)
		}
		if state.DetailContent == "" {
			t.Error("expected a non-empty fact")
		}

		// The fetched fact was cached in the store
		if _, err := s.Facts().Get("Saturn"); err != nil {
			t.Errorf("expected Saturn fact in cache: %v", err)
		}

		// Close the detail view
		send(`{"type":"close"}`)
		readState("closed", func(s *stateView) bool { return s.Selected == nil })
	})
}
