package window

type itemPosition struct {
	height int
	start  int
	end    int
}

// Table is the memoized height table of a collection. Heights and
// cumulative offsets are measured lazily, up to the highest index asked
// for, and thrown away whenever the collection changes.
type Table struct {
	policy Policy
	oracle Oracle

	token Token
	count int

	positions    []itemPosition
	lastMeasured int
	generation   int
}

// NewTable returns an empty table for policy p.
func NewTable(p Policy) *Table {
	return &Table{
		policy:       p,
		oracle:       NewOracle(p, nil),
		lastMeasured: -1,
	}
}

// Sync points the table at c. When the collection token or the item count
// differ from what the table was built for, every memoized height is
// dropped. It reports whether a reset happened.
func (t *Table) Sync(c *Collection) bool {
	if c.Token() == t.token && c.Len() == t.count && t.generation > 0 {
		return false
	}
	t.token = c.Token()
	t.count = c.Len()
	var items []Item
	if c != nil {
		items = c.items
	}
	t.oracle = NewOracle(t.policy, items)
	t.ResetAfterIndex(0)
	return true
}

// SetPolicy swaps the sizing policy and drops every memoized height.
func (t *Table) SetPolicy(p Policy) {
	t.policy = p
	t.oracle = NewOracle(p, t.oracle.items)
	t.ResetAfterIndex(0)
}

// Policy returns the sizing policy of the table.
func (t *Table) Policy() Policy {
	return t.policy
}

// ResetAfterIndex forgets the measurements of index and everything after it.
func (t *Table) ResetAfterIndex(index int) {
	index = max(index, 0)
	if len(t.positions) != t.count {
		t.positions = make([]itemPosition, t.count)
	}
	t.lastMeasured = min(t.lastMeasured, index-1)
	t.generation++
}

// Generation counts the resets the table went through.
func (t *Table) Generation() int {
	return t.generation
}

// Len returns the number of items the table describes.
func (t *Table) Len() int {
	return t.count
}

// Measured returns the highest index whose height is memoized, or -1.
func (t *Table) Measured() int {
	return t.lastMeasured
}

// Delta returns the collection-wide row delta.
func (t *Table) Delta() int {
	return t.oracle.Delta()
}

func (t *Table) measure(index int) {
	currentHeight := 0
	if t.lastMeasured >= 0 {
		currentHeight = t.positions[t.lastMeasured].end + 1
	}
	for i := t.lastMeasured + 1; i <= index; i++ {
		height := t.oracle.Height(i)
		t.positions[i] = itemPosition{
			height: height,
			start:  currentHeight,
			end:    currentHeight + height - 1,
		}
		currentHeight += height
	}
	t.lastMeasured = max(t.lastMeasured, index)
}

func (t *Table) position(index int) (itemPosition, bool) {
	if index < 0 || index >= t.count {
		return itemPosition{}, false
	}
	if index > t.lastMeasured {
		t.measure(index)
	}
	return t.positions[index], true
}

// Height returns the height of the item at index.
func (t *Table) Height(index int) int {
	pos, _ := t.position(index)
	return pos.height
}

// Offset returns the top offset of the item at index, the sum of the
// heights before it.
func (t *Table) Offset(index int) int {
	pos, _ := t.position(index)
	return pos.start
}

// TotalHeight returns the height of the whole collection laid out.
func (t *Table) TotalHeight() int {
	if t.count == 0 {
		return 0
	}
	pos, _ := t.position(t.count - 1)
	return pos.start + pos.height
}
