package window

import "log/slog"

type options struct {
	policy    Policy
	overscan  int
	height    int
	maxHeight int
	scroller  Scroller
}

// Option configures a Window.
type Option func(*options)

// WithPolicy sets the sizing policy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithOverscan sets how many items are rendered past each edge of the
// viewport.
func WithOverscan(n int) Option {
	return func(o *options) {
		o.overscan = max(n, 0)
	}
}

// WithHeight fixes the viewport height. Without it the height follows
// EstimateHeight.
func WithHeight(h int) Option {
	return func(o *options) {
		o.height = h
	}
}

// WithMaxHeight caps the viewport height.
func WithMaxHeight(h int) Option {
	return func(o *options) {
		o.maxHeight = h
	}
}

// WithScroller routes scroll-to-selection commands to s instead of the
// window itself.
func WithScroller(s Scroller) Option {
	return func(o *options) {
		o.scroller = s
	}
}

// Window ties the pieces together: the owner hands it collections,
// selections and scroll events; it answers with the range to render.
type Window struct {
	*options

	table      *Table
	collection *Collection
	offset     int
	controller *Controller
}

// New returns an empty window.
func New(opts ...Option) *Window {
	w := &Window{
		options: &options{
			policy:   DefaultPolicy(),
			overscan: DefaultOverscan,
		},
		collection: NewCollection(nil),
	}
	for _, opt := range opts {
		opt(w.options)
	}
	w.table = NewTable(w.policy)
	w.table.Sync(w.collection)
	scroller := w.scroller
	if scroller == nil {
		scroller = w
	}
	w.controller = NewController(scroller)
	return w
}

// SetCollection replaces the collection. The height table is invalidated
// before anything else reads it.
func (w *Window) SetCollection(c *Collection) {
	if c == nil {
		c = NewCollection(nil)
	}
	w.collection = c
	if w.table.Sync(c) {
		slog.Debug("Height table reset", "items", c.Len(), "generation", w.table.Generation())
	}
	w.offset = min(w.offset, w.MaxOffset())
}

// Collection returns the current collection.
func (w *Window) Collection() *Collection {
	return w.collection
}

// Table returns the height table.
func (w *Window) Table() *Table {
	return w.table
}

// Policy returns the sizing policy.
func (w *Window) Policy() Policy {
	return w.policy
}

// SetPolicy replaces the sizing policy.
func (w *Window) SetPolicy(p Policy) {
	w.policy = p
	w.table.SetPolicy(p)
	w.offset = min(w.offset, w.MaxOffset())
}

// Select hands the current selection value to the scroll-to-selection
// controller.
func (w *Window) Select(value string) (int, bool) {
	return w.controller.Select(w.collection, value)
}

// ScrollToIndex implements Scroller.
func (w *Window) ScrollToIndex(index int, placement Placement) {
	w.offset = ScrollOffset(index, placement, w.Viewport(), w.table)
	w.offset = min(max(w.offset, 0), w.MaxOffset())
}

// ScrollTo moves the viewport to offset, clamped to the scrollable area.
func (w *Window) ScrollTo(offset int) {
	w.offset = min(max(offset, 0), w.MaxOffset())
}

// ScrollBy moves the viewport by n, which may be negative.
func (w *Window) ScrollBy(n int) {
	w.ScrollTo(w.offset + n)
}

// Offset returns the scroll offset.
func (w *Window) Offset() int {
	return w.offset
}

// SetHeight fixes the viewport height; zero goes back to the estimate.
func (w *Window) SetHeight(h int) {
	w.height = max(h, 0)
	w.offset = min(w.offset, w.MaxOffset())
}

// SetMaxHeight caps the viewport height; zero removes the cap.
func (w *Window) SetMaxHeight(h int) {
	w.maxHeight = max(h, 0)
	w.offset = min(w.offset, w.MaxOffset())
}

// Resize sets the fixed and the maximum viewport height at once.
func (w *Window) Resize(height, maxHeight int) {
	w.height = max(height, 0)
	w.maxHeight = max(maxHeight, 0)
	w.offset = min(w.offset, w.MaxOffset())
}

// ViewportHeight returns the height of the viewport.
func (w *Window) ViewportHeight() int {
	h := w.height
	if h <= 0 {
		h = EstimateHeight(w.policy, w.collection.items)
	}
	if w.maxHeight > 0 {
		h = min(h, w.maxHeight)
	}
	return h
}

// Viewport returns the current viewport state.
func (w *Window) Viewport() Viewport {
	return Viewport{
		Offset:   w.offset,
		Height:   w.ViewportHeight(),
		Overscan: w.overscan,
	}
}

// TotalHeight returns the laid out height of the collection.
func (w *Window) TotalHeight() int {
	return w.table.TotalHeight()
}

// MaxOffset returns the largest valid scroll offset.
func (w *Window) MaxOffset() int {
	return max(0, w.table.TotalHeight()-w.ViewportHeight())
}

// Range returns the range of indexes to render.
func (w *Window) Range() Range {
	return VisibleRange(w.Viewport(), w.table)
}

// Visible returns the items to render with their positions.
func (w *Window) Visible() []Placed {
	return Materialize(w.collection, w.table, w.Range(), func(p Placed) Placed {
		return p
	})
}
