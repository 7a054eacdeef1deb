package window

// Placed is an item positioned in the virtual space of the list.
type Placed struct {
	Index  int
	Item   Item
	Offset int
	Height int
}

// End returns the offset right after the item.
func (p Placed) End() int {
	return p.Offset + p.Height
}

// Materialize calls build for every index of rng, in order, and returns what
// it built. Indexes outside rng are never built.
func Materialize[T any](c *Collection, t *Table, rng Range, build func(Placed) T) []T {
	if rng.Empty() || c.Len() == 0 {
		return nil
	}
	first := max(rng.First, 0)
	last := min(rng.Last, c.Len()-1, t.Len()-1)
	out := make([]T, 0, max(0, last-first+1))
	for i := first; i <= last; i++ {
		item, _ := c.At(i)
		out = append(out, build(Placed{
			Index:  i,
			Item:   item,
			Offset: t.Offset(i),
			Height: t.Height(i),
		}))
	}
	return out
}
