package window

// Policy holds the sizing constants used by the height oracle and the
// height estimate. Units are whatever the renderer draws in: pixels for
// DefaultPolicy, terminal cells for TerminalPolicy.
type Policy struct {
	ItemHeight        int `json:"item_height"`
	GroupHeaderHeight int `json:"group_header_height"`
	FirstGroupPadding int `json:"first_group_padding"`
	GroupPadding      int `json:"group_padding"`
	DescriptionDelta  int `json:"description_delta"`
	PlainDelta        int `json:"plain_delta"`
	Margin            int `json:"margin"`
	GroupMargin       int `json:"group_margin"`
	MaxVisible        int `json:"max_visible"`
}

// DefaultPolicy returns the pixel policy of the web combobox.
func DefaultPolicy() Policy {
	return Policy{
		ItemHeight:        56,
		GroupHeaderHeight: 44,
		FirstGroupPadding: 2,
		GroupPadding:      6,
		DescriptionDelta:  8,
		PlainDelta:        4,
		Margin:            4,
		GroupMargin:       2,
		MaxVisible:        5,
	}
}

// TerminalPolicy returns the same rules expressed in terminal lines.
func TerminalPolicy() Policy {
	return Policy{
		ItemHeight:        1,
		GroupHeaderHeight: 1,
		FirstGroupPadding: 0,
		GroupPadding:      1,
		DescriptionDelta:  1,
		PlainDelta:        0,
		Margin:            0,
		GroupMargin:       0,
		MaxVisible:        5,
	}
}

// Delta returns the padding added to every non-last row. It is decided once
// for the whole collection: if any item has a description every row gets
// DescriptionDelta.
func (p Policy) Delta(items []Item) int {
	if hasDescription(items) {
		return p.DescriptionDelta
	}
	return p.PlainDelta
}

// Oracle maps an index of a collection to its height.
type Oracle struct {
	policy Policy
	items  []Item
	delta  int
}

// NewOracle returns the height oracle for items under policy p.
func NewOracle(p Policy, items []Item) Oracle {
	return Oracle{
		policy: p,
		items:  items,
		delta:  p.Delta(items),
	}
}

// Delta returns the collection-wide row delta.
func (o Oracle) Delta() int {
	return o.delta
}

// Height returns the height of the item at index. Out of range indexes have
// no height.
func (o Oracle) Height(index int) int {
	n := len(o.items)
	if index < 0 || index >= n {
		return 0
	}
	if index == n-1 {
		return o.policy.ItemHeight
	}
	if o.items[index].Kind == KindGroupHeader {
		if index == 0 {
			return o.policy.GroupHeaderHeight + o.policy.FirstGroupPadding
		}
		return o.policy.GroupHeaderHeight + o.policy.GroupPadding
	}
	return o.policy.ItemHeight + o.delta
}
