// Package session owns the interaction state for one demo session: the
// hover target, the open detail view and its async fact fetch, and the
// tracker readiness signal. All state mutation goes through the Controller;
// there are no ambient globals.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/interaction"
)

// FallbackFact is shown when the fact provider fails. Failures recover
// locally to this text; they never propagate out of the session.
const FallbackFact = "Could not retrieve information at this time."

// DefaultReadyDelay is the cosmetic pause between the tracker's ready signal
// and the UI flipping out of its loading state.
const DefaultReadyDelay = 400 * time.Millisecond

// Snapshot is a read-only view of the session state for rendering.
type Snapshot struct {
	Ready         bool          `json:"ready"`
	InitError     string        `json:"initError,omitempty"`
	HoveredID     string        `json:"hoveredId,omitempty"`
	Selected      *catalog.Item `json:"selected,omitempty"`
	DetailContent string        `json:"detailContent,omitempty"`
	DetailLoading bool          `json:"detailLoading"`
}

// Config holds the collaborators for a Controller.
type Config struct {
	Catalog  *catalog.Catalog
	Provider facts.Provider
	// HitTester is the presentation layer's point-in-card query, consulted
	// once per gesture frame.
	HitTester interaction.HitTester
	// ReadyDelay is the cosmetic ready pause. Zero or negative flips
	// ready synchronously.
	ReadyDelay time.Duration
	// OnChange is invoked with a fresh snapshot after every state change.
	// It is called with the controller lock held and must not call back
	// into the Controller.
	OnChange func(Snapshot)
}

// Controller applies gesture frames and UI intents to the session state and
// mediates the async fact fetch. Safe for concurrent use, though gesture
// samples are expected to arrive sequentially.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	engine *interaction.Engine

	ready         bool
	initError     string
	hoveredID     string
	selected      *catalog.Item
	detailContent string
	detailLoading bool

	// fetchSeq identifies the most recent open; fetch results carrying an
	// older value are stale and dropped.
	fetchSeq uint64
}

// New creates a Controller with all state empty: not ready, nothing hovered,
// detail view closed.
func New(cfg Config) *Controller {
	return &Controller{
		cfg:    cfg,
		engine: interaction.NewEngine(),
	}
}

// OnReady handles the tracker's one-time startup signal. The ready flag
// flips after the configured delay; gesture processing is never blocked by
// it. An error that lands before the delay elapses wins.
func (c *Controller) OnReady() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready || c.initError != "" {
		return
	}

	if c.cfg.ReadyDelay <= 0 {
		c.ready = true
		c.notifyLocked()
		return
	}

	time.AfterFunc(c.cfg.ReadyDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.ready || c.initError != "" {
			return
		}
		c.ready = true
		c.notifyLocked()
	})
}

// OnError records a terminal tracker startup failure. The error is presented
// persistently; there is no retry.
func (c *Controller) OnError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready || c.initError != "" {
		return
	}
	c.initError = message
	c.notifyLocked()
}

// OnGestureSample processes one tracking frame: the hover target is
// recomputed unconditionally, and a pinch rising edge over a card opens it.
func (c *Controller) OnGestureSample(s interaction.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.engine.ProcessFrame(s, c.cfg.HitTester)

	changed := c.hoveredID != frame.HoveredID
	c.hoveredID = frame.HoveredID

	if frame.SelectedID != "" {
		if item, ok := c.cfg.Catalog.Lookup(frame.SelectedID); ok {
			changed = c.openLocked(item) || changed
		}
	}

	if changed {
		c.notifyLocked()
	}
}

// RequestOpen is the direct UI intent to open an item's detail view. It
// applies the same guard logic as a pinch-triggered open.
func (c *Controller) RequestOpen(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.cfg.Catalog.Lookup(itemID)
	if !ok {
		return
	}
	if c.openLocked(item) {
		c.notifyLocked()
	}
}

// RequestClose closes the detail view. Idempotent; any fetch still in flight
// for the closed item goes stale and its result is dropped on arrival.
func (c *Controller) RequestClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := c.selected != nil || c.detailContent != "" || c.detailLoading
	c.selected = nil
	c.detailContent = ""
	c.detailLoading = false

	if changed {
		c.notifyLocked()
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// openLocked opens the item and starts its fact fetch. Reports whether state
// changed. Re-opening the item already selected is a no-op, whether its
// fetch is still pending or long done; opening a different item is always
// allowed and supersedes any outstanding fetch.
func (c *Controller) openLocked(item catalog.Item) bool {
	if c.selected != nil && c.selected.ID == item.ID {
		return false
	}

	sel := item
	c.selected = &sel
	c.detailLoading = true
	c.detailContent = ""

	c.fetchSeq++
	go c.fetch(sel, c.fetchSeq)

	return true
}

// fetch performs the single-attempt fact request and applies the outcome,
// unless the open that issued it is no longer current.
func (c *Controller) fetch(item catalog.Item, seq uint64) {
	fact, err := c.cfg.Provider.RequestFact(context.Background(), item.Title)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Stale-result guard: a later open or a close supersedes this fetch,
	// and its outcome must not touch state.
	if seq != c.fetchSeq || c.selected == nil || c.selected.ID != item.ID {
		return
	}

	if err != nil {
		log.Printf("fact fetch for %q failed: %v", item.Title, err)
		c.detailContent = FallbackFact
	} else {
		c.detailContent = fact
	}
	c.detailLoading = false
	c.notifyLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Ready:         c.ready,
		InitError:     c.initError,
		HoveredID:     c.hoveredID,
		DetailContent: c.detailContent,
		DetailLoading: c.detailLoading,
	}
	if c.selected != nil {
		sel := *c.selected
		snap.Selected = &sel
	}
	return snap
}

func (c *Controller) notifyLocked() {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange(c.snapshotLocked())
	}
}
