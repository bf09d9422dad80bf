package navigator

import (
	"sync"

	"github.com/google/uuid"
)

type cursorKey struct {
	viewer uuid.UUID
	view   string
}

// Cursor remembers which page each viewer is looking at in each view.
type Cursor struct {
	mu    sync.Mutex
	pages map[cursorKey]int
}

func NewCursor() *Cursor {
	return &Cursor{pages: map[cursorKey]int{}}
}

// Page returns the remembered page index, clamped to [0, pages-1].
func (c *Cursor) Page(viewer uuid.UUID, view string, pages int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := cursorKey{viewer: viewer, view: view}
	idx := clamp(c.pages[k], pages)
	c.pages[k] = idx
	return idx
}

// Next advances the page index, wrapping from the last page to the first.
func (c *Cursor) Next(viewer uuid.UUID, view string, pages int) int {
	return c.move(viewer, view, pages, 1)
}

// Previous moves the page index back, wrapping from the first page to the
// last.
func (c *Cursor) Previous(viewer uuid.UUID, view string, pages int) int {
	return c.move(viewer, view, pages, -1)
}

// Reset forgets every position of viewer.
func (c *Cursor) Reset(viewer uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.pages {
		if k.viewer == viewer {
			delete(c.pages, k)
		}
	}
}

func (c *Cursor) move(viewer uuid.UUID, view string, pages, delta int) int {
	if pages < 1 {
		pages = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := cursorKey{viewer: viewer, view: view}
	idx := (clamp(c.pages[k], pages) + delta + pages) % pages
	c.pages[k] = idx
	return idx
}

func clamp(idx, pages int) int {
	if pages < 1 {
		return 0
	}
	return max(0, min(idx, pages-1))
}
