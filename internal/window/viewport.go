package window

// DefaultOverscan is the number of items rendered beyond each edge of the
// visible range.
const DefaultOverscan = 5

// Viewport is the scroll state of a renderer.
type Viewport struct {
	Offset   int
	Height   int
	Overscan int
}

// Range is a window over a collection. First and Last include the
// overscan; VisibleFirst and VisibleLast do not. An empty range has
// Last < First.
type Range struct {
	First        int
	Last         int
	VisibleFirst int
	VisibleLast  int
}

var emptyRange = Range{First: 0, Last: -1, VisibleFirst: 0, VisibleLast: -1}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool {
	return r.Last < r.First
}

// Len returns the number of indexes in the range, overscan included.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether index is inside the range, overscan included.
func (r Range) Contains(index int) bool {
	return !r.Empty() && index >= r.First && index <= r.Last
}

// VisibleRange walks the cumulative heights of t to find the items that
// intersect the viewport, then widens the result by the overscan.
func VisibleRange(vp Viewport, t *Table) Range {
	n := t.Len()
	if n == 0 || vp.Height <= 0 {
		return emptyRange
	}
	offset := max(vp.Offset, 0)
	stop := offset + vp.Height

	first := n - 1
	for i := range n {
		if t.Offset(i)+t.Height(i) > offset {
			first = i
			break
		}
	}
	last := first
	for i := first + 1; i < n; i++ {
		if t.Offset(i) >= stop {
			break
		}
		last = i
	}

	overscan := vp.Overscan
	if overscan < 0 {
		overscan = DefaultOverscan
	}
	return Range{
		First:        max(0, first-overscan),
		Last:         min(n-1, last+overscan),
		VisibleFirst: first,
		VisibleLast:  last,
	}
}

// EstimateHeight returns the height of the scrollable area for items. The
// branches overlap and are evaluated in order.
func EstimateHeight(p Policy, items []Item) int {
	n := len(items)
	if n == 0 {
		return 0
	}
	delta := p.Delta(items)
	switch {
	case n > p.MaxVisible:
		return p.MaxVisible*(p.ItemHeight+delta) + p.Margin
	case n <= 2 && hasGroupHeader(items):
		return n * (p.ItemHeight + p.GroupMargin)
	case n <= 2 && hasDescription(items):
		return n*(p.ItemHeight+delta) + p.Margin
	}
	return n*(p.ItemHeight+delta) + p.Margin
}
