// Package interaction converts the continuous hand-tracking sample stream
// into discrete UI events: a hover target every frame and a select event on
// a pinch rising edge.
package interaction

// Point is a cursor position in the renderer's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample is one frame of tracker output. It is a value; the engine retains
// nothing from it beyond the pinch flag.
type Sample struct {
	Cursor     Point `json:"cursor"`
	IsPinching bool  `json:"isPinching"`
}

// HitTester maps a point to the topmost interactive card occupying it, if
// any. It is supplied by the presentation layer and queried once per frame.
type HitTester interface {
	HitTest(x, y float64) (string, bool)
}

// Frame is the outcome of processing one sample.
type Frame struct {
	// HoveredID is the card under the cursor, empty when the cursor is
	// over no card.
	HoveredID string
	// SelectedID is non-empty only on the frame where a pinch rising edge
	// lands on a card.
	SelectedID string
}

// Engine performs per-frame edge detection. The only state it keeps is the
// previous frame's pinch flag, which starts false: a stream that opens
// pinching fires a select on its first frame.
type Engine struct {
	prevPinching bool
}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ProcessFrame evaluates one sample against the hit-test and returns the
// hover target plus an optional select. A sustained pinch held across many
// frames selects exactly once, on the false→true transition; a falling edge
// never selects, and neither does a rising edge over empty space.
func (e *Engine) ProcessFrame(s Sample, hits HitTester) Frame {
	var f Frame

	cardID, hit := hits.HitTest(s.Cursor.X, s.Cursor.Y)
	if hit {
		f.HoveredID = cardID
	}

	justPinched := s.IsPinching && !e.prevPinching
	if justPinched && hit {
		f.SelectedID = cardID
	}

	// Updated unconditionally, whether or not a select fired.
	e.prevPinching = s.IsPinching

	return f
}
