package window

import (
	"fmt"
	"math"
)

// Placement decides where a scroll target lands once it is brought into
// view.
type Placement int

const (
	// PlacementAuto scrolls as little as possible to show the target.
	PlacementAuto Placement = iota
	// PlacementSmart behaves like PlacementAuto when the target is less than
	// one viewport away, and centers it otherwise.
	PlacementSmart
	PlacementStart
	PlacementCenter
	PlacementEnd
)

func (p Placement) String() string {
	switch p {
	case PlacementAuto:
		return "auto"
	case PlacementSmart:
		return "smart"
	case PlacementStart:
		return "start"
	case PlacementCenter:
		return "center"
	case PlacementEnd:
		return "end"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// ParsePlacement parses the name of a placement.
func ParsePlacement(s string) (Placement, error) {
	for _, p := range []Placement{PlacementAuto, PlacementSmart, PlacementStart, PlacementCenter, PlacementEnd} {
		if p.String() == s {
			return p, nil
		}
	}
	return PlacementAuto, fmt.Errorf("unknown placement %q", s)
}

// Scroller accepts scroll commands. It is the capability the selection
// controller drives.
type Scroller interface {
	ScrollToIndex(index int, placement Placement)
}

// ScrollOffset returns the viewport offset that brings index into view
// using placement, starting from the current viewport.
func ScrollOffset(index int, placement Placement, vp Viewport, t *Table) int {
	if index < 0 || index >= t.Len() {
		return vp.Offset
	}
	size := vp.Height
	total := t.TotalHeight()
	itemOffset := t.Offset(index)
	itemHeight := t.Height(index)

	// The offsets aligning the item with the top and bottom edges.
	maxOffset := max(0, min(total-size, itemOffset))
	minOffset := max(0, itemOffset-size+itemHeight)

	if placement == PlacementSmart {
		if vp.Offset >= minOffset-size && vp.Offset <= maxOffset+size {
			placement = PlacementAuto
		} else {
			placement = PlacementCenter
		}
	}

	switch placement {
	case PlacementStart:
		return maxOffset
	case PlacementEnd:
		return minOffset
	case PlacementCenter:
		return int(math.Floor(float64(minOffset) + float64(maxOffset-minOffset)/2 + 0.5))
	}
	switch {
	case vp.Offset >= minOffset && vp.Offset <= maxOffset:
		return vp.Offset
	case vp.Offset < minOffset:
		return minOffset
	}
	return maxOffset
}
