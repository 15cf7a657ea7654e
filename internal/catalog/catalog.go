// Package catalog defines the selectable items presented as cards in the demo.
package catalog

// Item is one selectable card. The catalog is defined once at startup and
// read-only for the lifetime of the process.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageRef string `json:"imageRef"`
}

// Catalog is an immutable set of items with ID lookup.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

// New creates a Catalog from the given items. Later duplicates of an ID win
// for lookup but the listing order is preserved.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]Item, len(items)),
	}
	copy(c.items, items)
	for _, it := range c.items {
		c.byID[it.ID] = it
	}
	return c
}

// Lookup returns the item with the given ID.
func (c *Catalog) Lookup(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns the items in catalog order. The returned slice is a copy.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Default returns the built-in planet catalog used to seed an empty store.
func Default() []Item {
	return []Item{
		{ID: "mercury", Title: "Mercury", ImageRef: "/img/mercury.png"},
		{ID: "venus", Title: "Venus", ImageRef: "/img/venus.png"},
		{ID: "earth", Title: "Earth", ImageRef: "/img/earth.png"},
		{ID: "mars", Title: "Mars", ImageRef: "/img/mars.png"},
		{ID: "jupiter", Title: "Jupiter", ImageRef: "/img/jupiter.png"},
		{ID: "saturn", Title: "Saturn", ImageRef: "/img/saturn.png"},
		{ID: "uranus", Title: "Uranus", ImageRef: "/img/uranus.png"},
		{ID: "neptune", Title: "Neptune", ImageRef: "/img/neptune.png"},
	}
}
