package list

import (
	"testing"

	"github.com/charmbracelet/combo/internal/window"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartTruncate(t *testing.T) {
	t.Parallel()
	const label = "abcdefghijklmnopqrstuvwxyz"

	t.Run("keeps the last match visible", func(t *testing.T) {
		t.Parallel()
		title, cut := smartTruncate(label, 10, []int{23, 24, 25})
		assert.Equal(t, "…rstuvwxyz", title)
		assert.Equal(t, 17, cut)
	})

	t.Run("short text is not cut", func(t *testing.T) {
		t.Parallel()
		title, cut := smartTruncate("abc", 10, []int{0})
		assert.Equal(t, "abc", title)
		assert.Zero(t, cut)
	})

	t.Run("early match truncates the tail", func(t *testing.T) {
		t.Parallel()
		title, cut := smartTruncate(label, 10, []int{1})
		assert.Equal(t, "abcdefghi…", title)
		assert.Zero(t, cut)
	})
}

func TestShiftRange(t *testing.T) {
	t.Parallel()
	const label = "abcdefghijklmnopqrstuvwxyz"
	title, cut := smartTruncate(label, 10, []int{23, 24, 25})

	t.Run("match lands on the same characters", func(t *testing.T) {
		t.Parallel()
		rng, ok := shiftRange([2]int{23, 25}, cut)
		require.True(t, ok)
		assert.Equal(t, "xyz", title[rng[0]:rng[1]+1])

		start, stop := bytePosToVisibleCharPos(title, rng)
		assert.Equal(t, 7, start)
		assert.Equal(t, 9, stop)
		assert.Equal(t, "xyz", ansi.Cut(title, start, stop+1))
	})

	t.Run("match cut off entirely is dropped", func(t *testing.T) {
		t.Parallel()
		_, ok := shiftRange([2]int{0, 1}, cut)
		assert.False(t, ok)
	})

	t.Run("match crossing the cut starts after the ellipsis", func(t *testing.T) {
		t.Parallel()
		rng, ok := shiftRange([2]int{15, 18}, cut)
		require.True(t, ok)
		assert.Equal(t, "rs", title[rng[0]:rng[1]+1])
	})

	t.Run("uncut title keeps its ranges", func(t *testing.T) {
		t.Parallel()
		rng, ok := shiftRange([2]int{2, 4}, 0)
		require.True(t, ok)
		assert.Equal(t, [2]int{2, 4}, rng)
	})
}

func TestOptionItemHighlightsTruncatedMatch(t *testing.T) {
	t.Parallel()
	item := NewOptionItem(window.Item{ID: "a", Label: "abcdefghijklmnopqrstuvwxyz"})
	item.SetSize(12, 1)
	item.MatchIndexes([]int{23, 24, 25})

	assert.Equal(t, "…rstuvwxyz", ansi.Strip(item.View())[1:len("…rstuvwxyz")+1])
}
