// Package layout maintains the card rectangles reported by the renderer and
// answers per-frame hit-test queries against them.
package layout

import "sync"

// Rect is one card's bounding box in the renderer's coordinate space, the
// same space gesture cursors arrive in.
type Rect struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// Contains reports whether the point lies inside the rect. Edges on the
// left/top are inclusive, right/bottom exclusive, so adjacent cards never
// both claim a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Index is the current card layout. The renderer replaces it whenever cards
// move; the interaction engine queries it once per frame. Safe for
// concurrent use.
type Index struct {
	mu    sync.RWMutex
	rects []Rect
}

// NewIndex creates an empty Index. HitTest on an empty index always misses.
func NewIndex() *Index {
	return &Index{}
}

// Update replaces the rect set. Order is z-order: later rects are on top.
func (i *Index) Update(rects []Rect) {
	cp := make([]Rect, len(rects))
	copy(cp, rects)

	i.mu.Lock()
	i.rects = cp
	i.mu.Unlock()
}

// HitTest returns the topmost card containing the point, if any.
func (i *Index) HitTest(x, y float64) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for n := len(i.rects) - 1; n >= 0; n-- {
		if i.rects[n].Contains(x, y) {
			return i.rects[n].ID, true
		}
	}
	return "", false
}

// Len returns the number of rects currently indexed.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.rects)
}
