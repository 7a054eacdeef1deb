package list

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/csync"
	"github.com/charmbracelet/combo/internal/tui/components/core/layout"
	"github.com/charmbracelet/combo/internal/tui/styles"
	"github.com/charmbracelet/combo/internal/tui/util"
	"github.com/charmbracelet/combo/internal/window"
)

type Item interface {
	util.Model
	layout.Sizeable
	ID() string
	// Entry describes the item to the height oracle.
	Entry() window.Item
}

type List[T Item] interface {
	util.Model
	layout.Sizeable
	layout.Focusable

	// Just change state
	MoveUp(int) tea.Cmd
	MoveDown(int) tea.Cmd
	GoToTop() tea.Cmd
	GoToBottom() tea.Cmd
	SelectItemAbove() tea.Cmd
	SelectItemBelow() tea.Cmd
	SetItems([]T) tea.Cmd
	SetSelected(string) tea.Cmd
	SetValue(string) tea.Cmd
	SelectedItem() *T
	Items() []T
	ViewportHeight() int
	VisibleRange() window.Range
}

const (
	ItemNotFound              = -1
	ViewportDefaultScrollSize = 2
)

type confOptions struct {
	width, height int
	// if you are at the last item and go down it will wrap to the top
	wrap          bool
	keyMap        KeyMap
	selectedIndex int
	focused       bool
	enableMouse   bool
	fillHeight    bool
	policy        window.Policy
	overscan      int
}

type list[T Item] struct {
	*confOptions

	win *window.Window

	indexMap  *csync.Map[string, int]
	items     *csync.Slice[T]
	viewCache *csync.Map[string, string]

	renderMu sync.Mutex
	rendered string
}

type ListOption func(*confOptions)

// WithSize sets the size of the list.
func WithSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.width = width
		l.height = height
	}
}

// WithSelectedIndex sets the initially selected item in the list by index.
func WithSelectedIndex(index int) ListOption {
	return func(l *confOptions) {
		l.selectedIndex = index
	}
}

func WithKeyMap(keyMap KeyMap) ListOption {
	return func(l *confOptions) {
		l.keyMap = keyMap
	}
}

func WithWrapNavigation() ListOption {
	return func(l *confOptions) {
		l.wrap = true
	}
}

func WithFocus(focus bool) ListOption {
	return func(l *confOptions) {
		l.focused = focus
	}
}

func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// WithPolicy sets the sizing policy handed to the height oracle.
func WithPolicy(p window.Policy) ListOption {
	return func(l *confOptions) {
		l.policy = p
	}
}

// WithOverscan sets how many items are rendered outside the viewport.
func WithOverscan(n int) ListOption {
	return func(l *confOptions) {
		l.overscan = n
	}
}

// WithFillHeight makes the viewport use the whole height given to the list
// instead of the estimated dropdown height.
func WithFillHeight() ListOption {
	return func(l *confOptions) {
		l.fillHeight = true
	}
}

func New[T Item](items []T, opts ...ListOption) List[T] {
	list := &list[T]{
		confOptions: &confOptions{
			keyMap:        DefaultKeyMap(),
			focused:       true,
			selectedIndex: -1,
			policy:        window.TerminalPolicy(),
			overscan:      window.DefaultOverscan,
		},
		items:     csync.NewSliceFrom(items),
		indexMap:  csync.NewMap[string, int](),
		viewCache: csync.NewMap[string, string](),
	}
	for _, opt := range opts {
		opt(list.confOptions)
	}
	list.win = window.New(
		window.WithPolicy(list.policy),
		window.WithOverscan(list.overscan),
	)
	list.setViewportSize()
	list.syncCollection()
	return list
}

// syncCollection hands a new collection built from the current items to the
// window, which drops its memoized heights.
func (l *list[T]) syncCollection() {
	entries := make([]window.Item, 0, l.items.Len())
	l.indexMap.Reset()
	for inx, item := range l.items.Seq2() {
		entries = append(entries, item.Entry())
		l.indexMap.Set(item.ID(), inx)
	}
	l.win.SetCollection(window.NewCollection(entries))
}

func (l *list[T]) setViewportSize() {
	if l.fillHeight {
		l.win.SetHeight(l.height)
		return
	}
	l.win.SetMaxHeight(l.height)
}

// Init implements List.
func (l *list[T]) Init() tea.Cmd {
	// Ensure we have width and height
	if l.width <= 0 || l.height <= 0 {
		return nil
	}

	var cmds []tea.Cmd
	for _, item := range slices.Collect(l.items.Seq()) {
		if cmd := item.SetSize(l.width, l.height); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if l.selectedIndex < 0 || !l.isSelectable(l.selectedIndex) {
		l.selectedIndex = -1
		l.selectFirstItem()
	}

	renderCmd := l.render()
	if renderCmd != nil {
		cmds = append(cmds, renderCmd)
	}

	return tea.Batch(cmds...)
}

// Update implements List.
func (l *list[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if l.enableMouse {
			return l.handleMouseWheel(msg)
		}
		return l, nil
	case tea.KeyPressMsg:
		if l.focused {
			switch {
			case key.Matches(msg, l.keyMap.Down):
				return l, l.SelectItemBelow()
			case key.Matches(msg, l.keyMap.Up):
				return l, l.SelectItemAbove()
			case key.Matches(msg, l.keyMap.HalfPageDown):
				return l, l.MoveDown(l.ViewportHeight() / 2)
			case key.Matches(msg, l.keyMap.HalfPageUp):
				return l, l.MoveUp(l.ViewportHeight() / 2)
			case key.Matches(msg, l.keyMap.PageDown):
				return l, l.MoveDown(l.ViewportHeight())
			case key.Matches(msg, l.keyMap.PageUp):
				return l, l.MoveUp(l.ViewportHeight())
			case key.Matches(msg, l.keyMap.End):
				return l, l.GoToBottom()
			case key.Matches(msg, l.keyMap.Home):
				return l, l.GoToTop()
			}
		}
	}
	return l, nil
}

func (l *list[T]) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Button {
	case tea.MouseWheelDown:
		cmd = l.MoveDown(ViewportDefaultScrollSize)
	case tea.MouseWheelUp:
		cmd = l.MoveUp(ViewportDefaultScrollSize)
	}
	return l, cmd
}

// View implements List.
func (l *list[T]) View() string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}
	t := styles.CurrentTheme()

	l.renderMu.Lock()
	view := l.rendered
	l.renderMu.Unlock()

	return t.S().Base.
		Width(l.width).
		Render(view)
}

func (l *list[T]) render() tea.Cmd {
	return l.renderWithScrollToSelection(true)
}

func (l *list[T]) renderWithScrollToSelection(scrollToSelection bool) tea.Cmd {
	if l.width <= 0 || l.height <= 0 || l.items.Len() == 0 {
		l.renderMu.Lock()
		l.rendered = ""
		l.renderMu.Unlock()
		return nil
	}
	l.setDefaultSelected()

	var focusChangeCmd tea.Cmd
	if l.focused {
		focusChangeCmd = l.focusSelectedItem()
	} else {
		focusChangeCmd = l.blurSelectedItem()
	}

	// Scroll to selected item BEFORE rendering if focused and requested
	if l.focused && scrollToSelection {
		l.scrollToSelection()
	}

	// Render only visible items
	l.renderMu.Lock()
	l.rendered = l.renderVirtualScrolling()
	l.renderMu.Unlock()

	return focusChangeCmd
}

func (l *list[T]) setDefaultSelected() {
	if l.selectedIndex < 0 {
		l.selectFirstItem()
	}
}

func (l *list[T]) scrollToSelection() {
	if l.selectedIndex < 0 || l.selectedIndex >= l.items.Len() {
		return
	}
	// nothing to select above: show the group headers leading to the item
	if !l.hasSelectableAbove(l.selectedIndex) {
		l.win.ScrollTo(0)
	}
	l.win.ScrollToIndex(l.selectedIndex, window.PlacementAuto)
}

func (l *list[T]) changeSelectionWhenScrolling() tea.Cmd {
	rng := l.win.Range()
	if rng.Empty() || l.selectedIndex < 0 {
		return l.renderWithScrollToSelection(false)
	}
	// item already in view do nothing
	if l.selectedIndex >= rng.VisibleFirst && l.selectedIndex <= rng.VisibleLast {
		return l.renderWithScrollToSelection(false)
	}

	if l.selectedIndex < rng.VisibleFirst {
		// select the first selectable item in the viewport
		for inx := rng.VisibleFirst; inx <= rng.VisibleLast; inx++ {
			if l.isSelectable(inx) {
				l.selectedIndex = inx
				break
			}
		}
	} else {
		// select the last selectable item in the viewport
		for inx := rng.VisibleLast; inx >= rng.VisibleFirst; inx-- {
			if l.isSelectable(inx) {
				l.selectedIndex = inx
				break
			}
		}
	}
	return l.renderWithScrollToSelection(false)
}

func (l *list[T]) isSelectable(inx int) bool {
	item, ok := l.items.Get(inx)
	if !ok {
		return false
	}
	_, ok = any(item).(layout.Focusable)
	return ok
}

func (l *list[T]) hasSelectableAbove(inx int) bool {
	for i := inx - 1; i >= 0; i-- {
		if l.isSelectable(i) {
			return true
		}
	}
	return false
}

func (l *list[T]) selectFirstItem() {
	inx := l.firstSelectableItemBelow(-1)
	if inx != ItemNotFound {
		l.selectedIndex = inx
	}
}

func (l *list[T]) selectLastItem() {
	inx := l.firstSelectableItemAbove(l.items.Len())
	if inx != ItemNotFound {
		l.selectedIndex = inx
	}
}

func (l *list[T]) firstSelectableItemAbove(inx int) int {
	for i := inx - 1; i >= 0; i-- {
		if l.isSelectable(i) {
			return i
		}
	}
	if l.wrap {
		for i := l.items.Len() - 1; i > inx; i-- {
			if l.isSelectable(i) {
				return i
			}
		}
	}
	return ItemNotFound
}

func (l *list[T]) firstSelectableItemBelow(inx int) int {
	itemsLen := l.items.Len()
	for i := inx + 1; i < itemsLen; i++ {
		if l.isSelectable(i) {
			return i
		}
	}
	if l.wrap {
		for i := 0; i < inx; i++ {
			if l.isSelectable(i) {
				return i
			}
		}
	}
	return ItemNotFound
}

func (l *list[T]) focusSelectedItem() tea.Cmd {
	if l.selectedIndex < 0 || !l.focused {
		return nil
	}
	var cmds []tea.Cmd
	for inx, item := range l.items.Seq2() {
		if f, ok := any(item).(layout.Focusable); ok {
			if inx == l.selectedIndex && !f.IsFocused() {
				cmds = append(cmds, f.Focus())
				l.viewCache.Del(item.ID())
			} else if inx != l.selectedIndex && f.IsFocused() {
				cmds = append(cmds, f.Blur())
				l.viewCache.Del(item.ID())
			}
		}
	}
	return tea.Batch(cmds...)
}

func (l *list[T]) blurSelectedItem() tea.Cmd {
	if l.selectedIndex < 0 || l.focused {
		return nil
	}
	var cmds []tea.Cmd
	for inx, item := range l.items.Seq2() {
		if f, ok := any(item).(layout.Focusable); ok {
			if inx == l.selectedIndex && f.IsFocused() {
				cmds = append(cmds, f.Blur())
				l.viewCache.Del(item.ID())
			}
		}
	}
	return tea.Batch(cmds...)
}

func (l *list[T]) itemView(item T) string {
	if cached, ok := l.viewCache.Get(item.ID()); ok {
		return cached
	}
	view := item.View()
	l.viewCache.Set(item.ID(), view)
	return view
}

// fitLines pads or cuts a rendered item to the height the oracle gave it.
// Group headers grow and shrink from the top so the title stays on the
// last line; rows keep their first lines.
func fitLines(view string, height int, kind window.Kind) []string {
	if height <= 0 {
		return nil
	}
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		if kind == window.KindGroupHeader {
			lines = lines[len(lines)-height:]
		} else {
			lines = lines[:height]
		}
	}
	for len(lines) < height {
		if kind == window.KindGroupHeader {
			lines = append([]string{""}, lines...)
		} else {
			lines = append(lines, "")
		}
	}
	return lines
}

// renderVirtualScrolling renders only the visible portion of the list. The
// overscan items are rendered too, which warms the view cache, but only the
// viewport lines are kept.
func (l *list[T]) renderVirtualScrolling() string {
	vp := l.win.Viewport()
	rng := l.win.Range()
	if rng.Empty() || vp.Height <= 0 {
		return ""
	}
	table := l.win.Table()

	blocks := window.Materialize(l.win.Collection(), table, rng, func(p window.Placed) []string {
		item, ok := l.items.Get(p.Index)
		if !ok {
			return fitLines("", p.Height, p.Item.Kind)
		}
		return fitLines(l.itemView(item), p.Height, p.Item.Kind)
	})

	var lines []string
	for _, b := range blocks {
		lines = append(lines, b...)
	}

	start := vp.Offset - table.Offset(rng.First)
	end := min(start+vp.Height, len(lines))
	if start < 0 || start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// Blur implements List.
func (l *list[T]) Blur() tea.Cmd {
	l.focused = false
	return l.render()
}

// Focus implements List.
func (l *list[T]) Focus() tea.Cmd {
	l.focused = true
	return l.render()
}

// IsFocused implements List.
func (l *list[T]) IsFocused() bool {
	return l.focused
}

// GetSize implements List.
func (l *list[T]) GetSize() (int, int) {
	return l.width, l.height
}

// ViewportHeight returns the number of lines the list draws.
func (l *list[T]) ViewportHeight() int {
	return min(l.win.ViewportHeight(), l.win.TotalHeight())
}

// VisibleRange returns the range of items currently rendered.
func (l *list[T]) VisibleRange() window.Range {
	return l.win.Range()
}

// GoToBottom implements List.
func (l *list[T]) GoToBottom() tea.Cmd {
	l.selectedIndex = -1
	l.selectLastItem()
	l.win.ScrollTo(l.win.MaxOffset())
	return l.renderWithScrollToSelection(false)
}

// GoToTop implements List.
func (l *list[T]) GoToTop() tea.Cmd {
	l.selectedIndex = -1
	l.selectFirstItem()
	l.win.ScrollTo(0)
	return l.renderWithScrollToSelection(false)
}

// Items implements List.
func (l *list[T]) Items() []T {
	return slices.Collect(l.items.Seq())
}

// MoveDown implements List.
func (l *list[T]) MoveDown(n int) tea.Cmd {
	l.win.ScrollBy(n)
	return l.changeSelectionWhenScrolling()
}

// MoveUp implements List.
func (l *list[T]) MoveUp(n int) tea.Cmd {
	l.win.ScrollBy(-n)
	return l.changeSelectionWhenScrolling()
}

// SelectItemAbove implements List.
func (l *list[T]) SelectItemAbove() tea.Cmd {
	if l.selectedIndex < 0 {
		return nil
	}

	newIndex := l.firstSelectableItemAbove(l.selectedIndex)
	if newIndex == ItemNotFound {
		// no item above
		return nil
	}
	l.selectedIndex = newIndex
	return l.render()
}

// SelectItemBelow implements List.
func (l *list[T]) SelectItemBelow() tea.Cmd {
	if l.selectedIndex < 0 {
		return nil
	}

	newIndex := l.firstSelectableItemBelow(l.selectedIndex)
	if newIndex == ItemNotFound {
		// no item below
		return nil
	}
	l.selectedIndex = newIndex
	return l.render()
}

// SelectedItem implements List.
func (l *list[T]) SelectedItem() *T {
	if l.selectedIndex < 0 || l.selectedIndex >= l.items.Len() {
		return nil
	}
	item, ok := l.items.Get(l.selectedIndex)
	if !ok {
		return nil
	}
	return &item
}

// SelectedItemID returns the ID of the currently selected item.
func (l *list[T]) SelectedItemID() string {
	item := l.SelectedItem()
	if item == nil {
		return ""
	}
	return (*item).ID()
}

// SetItems implements List.
func (l *list[T]) SetItems(items []T) tea.Cmd {
	l.items.SetSlice(items)
	var cmds []tea.Cmd
	for _, item := range items {
		cmds = append(cmds, item.Init())
	}
	cmds = append(cmds, l.reset(""))
	return tea.Batch(cmds...)
}

// SetSelected implements List.
func (l *list[T]) SetSelected(id string) tea.Cmd {
	inx, ok := l.indexMap.Get(id)
	if ok && l.isSelectable(inx) {
		l.selectedIndex = inx
	} else {
		l.selectedIndex = -1
	}
	return l.render()
}

// SetValue moves the cursor to the first item carrying value and, once per
// value change, scrolls it into view.
func (l *list[T]) SetValue(value string) tea.Cmd {
	if inx, scrolled := l.win.Select(value); scrolled {
		slog.Debug("Scrolled to selected value", "value", value, "index", inx)
	}
	if inx := l.win.Collection().IndexOfValue(value); inx >= 0 && l.isSelectable(inx) {
		l.selectedIndex = inx
	}
	return l.renderWithScrollToSelection(false)
}

func (l *list[T]) reset(selectedItemID string) tea.Cmd {
	var cmds []tea.Cmd
	l.rendered = ""
	l.win.ScrollTo(0)

	l.viewCache.Reset()
	l.syncCollection()

	l.selectedIndex = -1
	if selectedItemID != "" {
		if inx, ok := l.indexMap.Get(selectedItemID); ok {
			l.selectedIndex = inx
		}
	}

	for _, item := range slices.Collect(l.items.Seq()) {
		if l.width > 0 && l.height > 0 {
			cmds = append(cmds, item.SetSize(l.width, l.height))
		}
	}
	cmds = append(cmds, l.render())
	return tea.Batch(cmds...)
}

// SetSize implements List.
func (l *list[T]) SetSize(width int, height int) tea.Cmd {
	oldWidth := l.width
	l.width = width
	l.height = height
	l.setViewportSize()
	if oldWidth != width {
		// Get current selected item ID to preserve selection
		return l.reset(l.SelectedItemID())
	}
	return l.render()
}
