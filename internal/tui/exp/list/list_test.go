package list

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/window"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOptions(n int) []Item {
	items := make([]Item, 0, n)
	for i := range n {
		items = append(items, NewOptionItem(window.Item{
			ID:    fmt.Sprintf("item-%d", i),
			Label: fmt.Sprintf("Item %d", i),
			Value: fmt.Sprintf("value-%d", i),
		}))
	}
	return items
}

func createGroupedOptions() []Item {
	return []Item{
		NewGroupHeader(window.Item{ID: "fruits", Label: "Fruits"}),
		NewOptionItem(window.Item{ID: "apple", Label: "Apple", Value: "apple"}),
		NewOptionItem(window.Item{ID: "banana", Label: "Banana", Value: "banana"}),
		NewGroupHeader(window.Item{ID: "veg", Label: "Veg"}),
		NewOptionItem(window.Item{ID: "carrot", Label: "Carrot", Value: "carrot"}),
	}
}

// viewLines returns the plain text lines of the view with trailing
// padding removed.
func viewLines(l tea.ViewModel) []string {
	lines := strings.Split(ansi.Strip(l.View()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func execCmd(m tea.Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		m, cmd = m.Update(msg)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	t.Run("should size the viewport from the estimate", func(t *testing.T) {
		t.Parallel()
		items := createOptions(30)
		l := New(items, WithSize(20, 10)).(*list[Item])
		execCmd(l, l.Init())

		assert.Equal(t, "item-0", l.SelectedItemID())
		assert.Equal(t, 0, l.win.Offset())
		require.Equal(t, 30, l.indexMap.Len())
		require.Equal(t, 30, l.items.Len())
		require.Equal(t, 30, l.win.Table().Len())
		assert.Equal(t, 5, l.ViewportHeight())

		lines := viewLines(l)
		require.Len(t, lines, 5)
		for i, line := range lines {
			assert.Equal(t, fmt.Sprintf("Item %d", i), line)
		}
	})

	t.Run("should fill the height when asked to", func(t *testing.T) {
		t.Parallel()
		items := createOptions(30)
		l := New(items, WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		assert.Equal(t, 10, l.ViewportHeight())
		lines := viewLines(l)
		require.Len(t, lines, 10)
		assert.Equal(t, "Item 9", lines[9])
	})

	t.Run("should only render the window and its overscan", func(t *testing.T) {
		t.Parallel()
		items := createOptions(100)
		l := New(items, WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		rng := l.VisibleRange()
		assert.Equal(t, 0, rng.First)
		assert.Equal(t, 14, rng.Last)
		assert.Equal(t, 9, rng.VisibleLast)
		assert.Equal(t, 15, l.viewCache.Len())
		_, ok := l.viewCache.Get("item-15")
		assert.False(t, ok)
	})

	t.Run("should render nothing without items", func(t *testing.T) {
		t.Parallel()
		l := New([]Item{}, WithSize(20, 10)).(*list[Item])
		execCmd(l, l.Init())

		assert.Nil(t, l.SelectedItem())
		assert.Equal(t, 0, l.ViewportHeight())
		assert.True(t, l.VisibleRange().Empty())
		assert.Equal(t, "", ansi.Strip(l.rendered))
	})

	t.Run("should render group headers with their padding", func(t *testing.T) {
		t.Parallel()
		l := New(createGroupedOptions(), WithSize(30, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		assert.Equal(t, "apple", l.SelectedItemID())
		assert.Equal(t, 6, l.win.TotalHeight())

		lines := viewLines(l)
		require.Len(t, lines, 6)
		assert.True(t, strings.HasPrefix(lines[0], "Fruits"))
		assert.Equal(t, "Apple", lines[1])
		assert.Equal(t, "Banana", lines[2])
		assert.Equal(t, "", lines[3])
		assert.True(t, strings.HasPrefix(lines[4], "Veg"))
		assert.Equal(t, "Carrot", lines[5])
		golden.RequireEqual(t, []byte(ansi.Strip(l.View())))
	})

	t.Run("should give rows with descriptions an extra line", func(t *testing.T) {
		t.Parallel()
		items := []Item{
			NewOptionItem(window.Item{ID: "a", Label: "A", Description: "first"}),
			NewOptionItem(window.Item{ID: "b", Label: "B"}),
			NewOptionItem(window.Item{ID: "c", Label: "C", Description: "third"}),
		}
		l := New(items, WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		lines := viewLines(l)
		// the last item always gets the base height
		require.Equal(t, []string{"A", "first", "B", "", "C"}, lines)
	})

	t.Run("should replace the collection on set items", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(10), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())
		token := l.win.Collection().Token()
		generation := l.win.Table().Generation()

		execCmd(l, l.SetItems(createOptions(3)))

		assert.NotEqual(t, token, l.win.Collection().Token())
		assert.Greater(t, l.win.Table().Generation(), generation)
		assert.Equal(t, 3, l.indexMap.Len())
		assert.Equal(t, 3, l.viewCache.Len())
		assert.Equal(t, "item-0", l.SelectedItemID())
		assert.Len(t, viewLines(l), 3)
	})
}

func TestListMovement(t *testing.T) {
	t.Parallel()
	t.Run("should move the cursor and keep it in view", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		for range 9 {
			_, cmd := l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}))
			execCmd(l, cmd)
		}
		assert.Equal(t, "item-9", l.SelectedItemID())
		assert.Equal(t, 0, l.win.Offset())

		_, cmd := l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}))
		execCmd(l, cmd)
		assert.Equal(t, "item-10", l.SelectedItemID())
		assert.Equal(t, 1, l.win.Offset())

		lines := viewLines(l)
		assert.Equal(t, "Item 1", lines[0])
		assert.Equal(t, "Item 10", lines[9])

		_, cmd = l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyUp}))
		execCmd(l, cmd)
		assert.Equal(t, "item-9", l.SelectedItemID())
		assert.Equal(t, 1, l.win.Offset())
	})

	t.Run("should skip group headers", func(t *testing.T) {
		t.Parallel()
		l := New(createGroupedOptions(), WithSize(30, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		execCmd(l, l.SelectItemBelow())
		assert.Equal(t, "banana", l.SelectedItemID())
		execCmd(l, l.SelectItemBelow())
		assert.Equal(t, "carrot", l.SelectedItemID())
		execCmd(l, l.SelectItemBelow())
		assert.Equal(t, "carrot", l.SelectedItemID())
		execCmd(l, l.SelectItemAbove())
		assert.Equal(t, "banana", l.SelectedItemID())
		execCmd(l, l.SelectItemAbove())
		execCmd(l, l.SelectItemAbove())
		assert.Equal(t, "apple", l.SelectedItemID())
	})

	t.Run("should wrap when enabled", func(t *testing.T) {
		t.Parallel()
		l := New(createGroupedOptions(), WithSize(30, 10), WithFillHeight(), WithWrapNavigation()).(*list[Item])
		execCmd(l, l.Init())

		execCmd(l, l.SelectItemAbove())
		assert.Equal(t, "carrot", l.SelectedItemID())
		execCmd(l, l.SelectItemBelow())
		assert.Equal(t, "apple", l.SelectedItemID())
	})

	t.Run("should go to the bottom and back to the top", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		_, cmd := l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnd}))
		execCmd(l, cmd)
		assert.Equal(t, "item-29", l.SelectedItemID())
		assert.Equal(t, 20, l.win.Offset())
		lines := viewLines(l)
		assert.Equal(t, "Item 29", lines[len(lines)-1])

		_, cmd = l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyHome}))
		execCmd(l, cmd)
		assert.Equal(t, "item-0", l.SelectedItemID())
		assert.Equal(t, 0, l.win.Offset())
	})

	t.Run("should page and drag the selection along", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		_, cmd := l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyPgDown}))
		execCmd(l, cmd)
		assert.Equal(t, 10, l.win.Offset())
		assert.Equal(t, "item-10", l.SelectedItemID())

		_, cmd = l.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyPgUp}))
		execCmd(l, cmd)
		assert.Equal(t, 0, l.win.Offset())
		assert.Equal(t, "item-9", l.SelectedItemID())
	})

	t.Run("should scroll with the mouse wheel when enabled", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight(), WithEnableMouse()).(*list[Item])
		execCmd(l, l.Init())

		_, cmd := l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		execCmd(l, cmd)
		assert.Equal(t, ViewportDefaultScrollSize, l.win.Offset())
		assert.Equal(t, "item-2", l.SelectedItemID())
	})

	t.Run("should ignore the mouse wheel by default", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		_, cmd := l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		execCmd(l, cmd)
		assert.Equal(t, 0, l.win.Offset())
	})
}

func TestListSetValue(t *testing.T) {
	t.Parallel()
	t.Run("should center a far away value once", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		execCmd(l, l.SetValue("value-20"))
		assert.Equal(t, 16, l.win.Offset())
		assert.Equal(t, "item-20", l.SelectedItemID())
		assert.Equal(t, "Item 16", viewLines(l)[0])

		l.win.ScrollTo(0)
		execCmd(l, l.SetValue("value-20"))
		assert.Equal(t, 0, l.win.Offset())
	})

	t.Run("should not scroll to the first item", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())
		l.win.ScrollTo(5)

		execCmd(l, l.SetValue("value-0"))
		assert.Equal(t, 5, l.win.Offset())
		assert.Equal(t, "item-0", l.SelectedItemID())
	})

	t.Run("should ignore unknown values", func(t *testing.T) {
		t.Parallel()
		l := New(createOptions(30), WithSize(20, 10), WithFillHeight()).(*list[Item])
		execCmd(l, l.Init())

		execCmd(l, l.SetValue("nope"))
		assert.Equal(t, 0, l.win.Offset())
		assert.Equal(t, "item-0", l.SelectedItemID())
	})
}

func TestFitLines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", ""}, fitLines("a", 2, window.KindRow))
	assert.Equal(t, []string{"", "a"}, fitLines("a", 2, window.KindGroupHeader))
	assert.Equal(t, []string{"a"}, fitLines("a\nb", 1, window.KindRow))
	assert.Equal(t, []string{"b"}, fitLines("a\nb", 1, window.KindGroupHeader))
	assert.Nil(t, fitLines("a", 0, window.KindRow))
}
