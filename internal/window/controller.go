package window

import "log/slog"

// Controller scrolls the list to the selected value once per selection
// change.
type Controller struct {
	scroller Scroller
	value    string
	seen     bool
}

// NewController returns a controller driving s.
func NewController(s Scroller) *Controller {
	return &Controller{scroller: s}
}

// Select records value as the current selection. When value differs from
// the previous one it looks up the first item carrying it and asks the
// scroller to bring it into view with PlacementSmart. It returns the index
// that was scrolled to and whether a scroll command was issued.
//
// A match at index 0 issues no command, same as no match at all.
func (c *Controller) Select(items *Collection, value string) (int, bool) {
	if c.seen && c.value == value {
		return -1, false
	}
	c.value = value
	c.seen = true
	if value == "" || c.scroller == nil {
		return -1, false
	}
	inx := items.IndexOfValue(value)
	if inx <= 0 {
		slog.Debug("Selection not scrolled", "value", value, "index", inx)
		return -1, false
	}
	c.scroller.ScrollToIndex(inx, PlacementSmart)
	return inx, true
}

// Value returns the last selection seen.
func (c *Controller) Value() string {
	return c.value
}
