package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/combo/internal/config"
	"github.com/charmbracelet/combo/internal/options"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadGrouped(t *testing.T) (*config.Config, []options.Option) {
	t.Helper()
	cfg, err := config.LoadReader(strings.NewReader("{}"))
	require.NoError(t, err)
	opts, err := options.Load(filepath.Join("testdata", "grouped.yaml"), "")
	require.NoError(t, err)
	return cfg, opts
}

func TestLayoutText(t *testing.T) {
	t.Parallel()
	cfg, opts := loadGrouped(t)

	report := buildLayout(cfg, opts, layoutParams{Overscan: -1})
	var buf bytes.Buffer
	require.NoError(t, formatLayout(&buf, report, "text"))
	golden.RequireEqual(t, buf.Bytes())
}

func TestLayoutTextScrolled(t *testing.T) {
	t.Parallel()
	cfg, opts := loadGrouped(t)

	report := buildLayout(cfg, opts, layoutParams{
		Height:   100,
		Overscan: 1,
		Value:    "Carrot",
	})
	require.NotNil(t, report.Selection)
	assert.True(t, report.Selection.Scrolled)

	var buf bytes.Buffer
	require.NoError(t, formatLayout(&buf, report, "text"))
	golden.RequireEqual(t, buf.Bytes())
}

func TestLayout(t *testing.T) {
	t.Parallel()

	t.Run("terminal policy as json", func(t *testing.T) {
		t.Parallel()
		cfg, opts := loadGrouped(t)

		report := buildLayout(cfg, opts, layoutParams{Terminal: true, Overscan: 0})
		var buf bytes.Buffer
		require.NoError(t, formatLayout(&buf, report, "json"))

		var got layoutReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "terminal", got.Policy)
		assert.Equal(t, 8, got.TotalHeight)
		assert.Equal(t, 10, got.Estimate)
		assert.Equal(t, 10, got.Viewport.Height)
		require.NotNil(t, got.Range)
		assert.Equal(t, 0, got.Range.First)
		assert.Equal(t, 4, got.Range.Last)

		heights := make([]int, 0, len(got.Rows))
		for _, row := range got.Rows {
			heights = append(heights, row.Height)
		}
		assert.Equal(t, []int{1, 2, 2, 2, 1}, heights)
	})

	t.Run("yaml output", func(t *testing.T) {
		t.Parallel()
		cfg, opts := loadGrouped(t)

		report := buildLayout(cfg, opts, layoutParams{Overscan: -1})
		var buf bytes.Buffer
		require.NoError(t, formatLayout(&buf, report, "yaml"))

		var got layoutReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 280, got.TotalHeight)
		assert.Len(t, got.Rows, 5)
		assert.Equal(t, "header", got.Rows[3].Kind)
		assert.Equal(t, 174, got.Rows[3].Offset)
	})

	t.Run("selection at the first index does not scroll", func(t *testing.T) {
		t.Parallel()
		cfg, _ := loadGrouped(t)
		opts := []options.Option{
			{ID: "a", Label: "a", Value: "a"},
			{ID: "b", Label: "b", Value: "b"},
		}

		report := buildLayout(cfg, opts, layoutParams{Height: 56, Value: "a"})
		require.NotNil(t, report.Selection)
		assert.Equal(t, 0, report.Selection.Index)
		assert.False(t, report.Selection.Scrolled)
		assert.Equal(t, 0, report.Viewport.Offset)
	})

	t.Run("empty list has an empty range", func(t *testing.T) {
		t.Parallel()
		cfg, _ := loadGrouped(t)

		report := buildLayout(cfg, nil, layoutParams{})
		assert.Nil(t, report.Range)
		assert.Zero(t, report.Estimate)

		var buf bytes.Buffer
		require.NoError(t, formatLayout(&buf, report, "text"))
		assert.Contains(t, buf.String(), "Range:     empty")
	})

	t.Run("unsupported output", func(t *testing.T) {
		t.Parallel()
		cfg, opts := loadGrouped(t)

		report := buildLayout(cfg, opts, layoutParams{})
		require.Error(t, formatLayout(&bytes.Buffer{}, report, "xml"))
	})
}
