package window

import "sync/atomic"

// Kind tags an item as a plain row or a group header.
type Kind int

const (
	KindRow Kind = iota
	KindGroupHeader
)

func (k Kind) String() string {
	switch k {
	case KindGroupHeader:
		return "header"
	default:
		return "row"
	}
}

// Item is one entry of the windowed list.
type Item struct {
	ID          string
	Kind        Kind
	Label       string
	Description string
	Value       string
}

// Token identifies one generation of a collection. Two collections built
// from equal items still carry different tokens.
type Token uint64

var lastToken atomic.Uint64

func nextToken() Token {
	return Token(lastToken.Add(1))
}

// Collection is the ordered, caller-owned sequence of items. It is never
// mutated after construction; replace it to change the list.
type Collection struct {
	items []Item
	token Token
}

// NewCollection copies items into a new collection with a fresh token.
func NewCollection(items []Item) *Collection {
	c := &Collection{
		items: make([]Item, len(items)),
		token: nextToken(),
	}
	copy(c.items, items)
	return c
}

// Token returns the invalidation token of the collection.
func (c *Collection) Token() Token {
	if c == nil {
		return 0
	}
	return c.token
}

// Len returns the number of items.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at index i.
func (c *Collection) At(i int) (Item, bool) {
	if c == nil || i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the items.
func (c *Collection) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IndexOfValue returns the index of the first item whose Value is value, or
// -1.
func (c *Collection) IndexOfValue(value string) int {
	if c == nil {
		return -1
	}
	for i, item := range c.items {
		if item.Value == value {
			return i
		}
	}
	return -1
}

// IndexOfID returns the index of the item with the given ID, or -1.
func (c *Collection) IndexOfID(id string) int {
	if c == nil {
		return -1
	}
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func hasDescription(items []Item) bool {
	for _, item := range items {
		if item.Description != "" {
			return true
		}
	}
	return false
}

func hasGroupHeader(items []Item) bool {
	for _, item := range items {
		if item.Kind == KindGroupHeader {
			return true
		}
	}
	return false
}
