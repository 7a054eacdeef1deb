package list

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/tui/components/core"
	"github.com/charmbracelet/combo/internal/tui/components/core/layout"
	"github.com/charmbracelet/combo/internal/tui/styles"
	"github.com/charmbracelet/combo/internal/window"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

type OptionItem interface {
	FilterableItem
	layout.Focusable
	HasMatchIndexes
	Label() string
	Value() string
}

type optionItemCmp struct {
	width        int
	entry        window.Item
	focus        bool
	matchIndexes []int
}

// NewOptionItem returns a selectable row for entry. Entries without an ID
// get a random one.
func NewOptionItem(entry window.Item) OptionItem {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Kind = window.KindRow
	return &optionItemCmp{entry: entry}
}

// Init implements OptionItem.
func (c *optionItemCmp) Init() tea.Cmd {
	return nil
}

// Update implements OptionItem.
func (c *optionItemCmp) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

// View implements OptionItem.
func (c *optionItemCmp) View() string {
	t := styles.CurrentTheme()

	itemStyle := t.S().Base.Padding(0, 1).Width(c.width)
	innerWidth := max(c.width-2, 0)

	titleStyle := t.S().Text.Width(innerWidth)
	titleMatchStyle := t.S().Text.Underline(true)
	descStyle := t.S().Muted.Width(innerWidth)
	if c.focus {
		titleStyle = t.S().TextSelected.Width(innerWidth)
		titleMatchStyle = t.S().TextSelected.Underline(true)
		descStyle = t.S().TextSelected.Width(innerWidth)
		itemStyle = itemStyle.Background(t.Primary)
	}

	var (
		truncatedTitle string
		cut            int
	)
	if len(c.matchIndexes) > 0 && ansi.StringWidth(c.entry.Label) > innerWidth {
		// keep the last match visible
		truncatedTitle, cut = smartTruncate(c.entry.Label, innerWidth, c.matchIndexes)
	} else {
		truncatedTitle = ansi.Truncate(c.entry.Label, innerWidth, "…")
	}

	text := titleStyle.Render(truncatedTitle)
	if len(c.matchIndexes) > 0 {
		var ranges []lipgloss.Range
		for _, rng := range matchedRanges(c.matchIndexes) {
			rng, ok := shiftRange(rng, cut)
			if !ok {
				continue
			}
			// rng holds byte positions, StyleRanges wants cells.
			start, stop := bytePosToVisibleCharPos(truncatedTitle, rng)
			ranges = append(ranges, lipgloss.NewRange(start, stop+1, titleMatchStyle))
		}
		text = lipgloss.StyleRanges(text, ranges...)
	}

	parts := []string{text}
	if c.entry.Description != "" {
		parts = append(parts, descStyle.Render(ansi.Truncate(c.entry.Description, innerWidth, "…")))
	}
	return itemStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Blur implements OptionItem.
func (c *optionItemCmp) Blur() tea.Cmd {
	c.focus = false
	return nil
}

// Focus implements OptionItem.
func (c *optionItemCmp) Focus() tea.Cmd {
	c.focus = true
	return nil
}

// IsFocused implements OptionItem.
func (c *optionItemCmp) IsFocused() bool {
	return c.focus
}

// GetSize implements OptionItem.
func (c *optionItemCmp) GetSize() (int, int) {
	if c.entry.Description != "" {
		return c.width, 2
	}
	return c.width, 1
}

// SetSize implements OptionItem.
func (c *optionItemCmp) SetSize(width int, height int) tea.Cmd {
	c.width = width
	return nil
}

func (c *optionItemCmp) MatchIndexes(indexes []int) {
	c.matchIndexes = indexes
}

func (c *optionItemCmp) FilterValue() string {
	return c.entry.Label
}

func (c *optionItemCmp) ID() string {
	return c.entry.ID
}

func (c *optionItemCmp) Entry() window.Item {
	return c.entry
}

func (c *optionItemCmp) Label() string {
	return c.entry.Label
}

func (c *optionItemCmp) Value() string {
	return c.entry.Value
}

// smartTruncate implements fzf-style truncation that ensures the last
// matching part is visible. It returns the truncated text and the number of
// bytes cut from the front, which an ellipsis replaces.
func smartTruncate(text string, width int, matchIndexes []int) (string, int) {
	if width <= 0 {
		return "", 0
	}

	textLen := ansi.StringWidth(text)
	if textLen <= width {
		return text, 0
	}

	if len(matchIndexes) == 0 {
		return ansi.Truncate(text, width, "…"), 0
	}

	lastMatchPos := matchIndexes[len(matchIndexes)-1]

	// byte position to cell position
	lastMatchVisualPos := 0
	bytePos := 0
	gr := uniseg.NewGraphemes(text)
	for bytePos < lastMatchPos && gr.Next() {
		bytePos += len(gr.Str())
		lastMatchVisualPos += max(1, gr.Width())
	}

	ellipsisWidth := 1
	availableWidth := width - ellipsisWidth

	if lastMatchVisualPos < availableWidth {
		return ansi.Truncate(text, width, "…"), 0
	}

	startVisualPos := max(0, lastMatchVisualPos-availableWidth+1)

	startBytePos := 0
	currentVisualPos := 0
	gr = uniseg.NewGraphemes(text)
	for currentVisualPos < startVisualPos && gr.Next() {
		startBytePos += len(gr.Str())
		currentVisualPos += max(1, gr.Width())
	}

	truncatedText := ansi.Truncate(text[startBytePos:], availableWidth, "")
	return "…" + truncatedText, startBytePos
}

// shiftRange moves a byte range of the full label onto a title whose first
// cut bytes were replaced by an ellipsis. Ranges that were cut entirely
// report false.
func shiftRange(rng [2]int, cut int) ([2]int, bool) {
	if cut == 0 {
		return rng, true
	}
	if rng[1] < cut {
		return rng, false
	}
	offset := len("…") - cut
	return [2]int{max(rng[0], cut) + offset, rng[1] + offset}, true
}

func matchedRanges(in []int) [][2]int {
	if len(in) == 0 {
		return [][2]int{}
	}
	current := [2]int{in[0], in[0]}
	if len(in) == 1 {
		return [][2]int{current}
	}
	var out [][2]int
	for i := 1; i < len(in); i++ {
		if in[i] == current[1]+1 {
			current[1] = in[i]
		} else {
			out = append(out, current)
			current = [2]int{in[i], in[i]}
		}
	}
	out = append(out, current)
	return out
}

func bytePosToVisibleCharPos(str string, rng [2]int) (int, int) {
	bytePos, byteStart, byteStop := 0, rng[0], rng[1]
	pos, start, stop := 0, 0, 0
	gr := uniseg.NewGraphemes(str)
	for byteStart > bytePos {
		if !gr.Next() {
			break
		}
		bytePos += len(gr.Str())
		pos += max(1, gr.Width())
	}
	start = pos
	for byteStop > bytePos {
		if !gr.Next() {
			break
		}
		bytePos += len(gr.Str())
		pos += max(1, gr.Width())
	}
	stop = pos
	return start, stop
}

type GroupHeader interface {
	FilterableItem
	Title() string
	SetInfo(info string)
}

type groupHeaderCmp struct {
	width int
	entry window.Item
	info  string
}

// NewGroupHeader returns a non-selectable header titled by entry.Label.
func NewGroupHeader(entry window.Item) GroupHeader {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Kind = window.KindGroupHeader
	return &groupHeaderCmp{entry: entry}
}

func (m *groupHeaderCmp) ID() string {
	return m.entry.ID
}

func (m *groupHeaderCmp) Entry() window.Item {
	return m.entry
}

func (m *groupHeaderCmp) Init() tea.Cmd {
	return nil
}

func (m *groupHeaderCmp) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the title line only, the list adds the group padding above.
func (m *groupHeaderCmp) View() string {
	t := styles.CurrentTheme()
	title := ansi.Truncate(m.entry.Label, max(m.width-2, 0), "…")
	title = t.S().Muted.Render(title)
	var section string
	if m.info != "" {
		section = core.SectionWithInfo(title, m.width-2, m.info)
	} else {
		section = core.Section(title, m.width-2)
	}
	return t.S().Base.Padding(0, 1).Render(section)
}

func (m *groupHeaderCmp) GetSize() (int, int) {
	return m.width, 1
}

func (m *groupHeaderCmp) SetSize(width int, height int) tea.Cmd {
	m.width = width
	return nil
}

func (m *groupHeaderCmp) FilterValue() string {
	return ""
}

func (m *groupHeaderCmp) Title() string {
	return m.entry.Label
}

func (m *groupHeaderCmp) SetInfo(info string) {
	m.info = info
}

func isGroupHeader[T Item](item T) bool {
	return item.Entry().Kind == window.KindGroupHeader
}

