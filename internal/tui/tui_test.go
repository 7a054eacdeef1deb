package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/config"
	"github.com/charmbracelet/combo/internal/options"
	"github.com/charmbracelet/combo/internal/tui/util"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadReader(strings.NewReader("{}"))
	require.NoError(t, err)
	return cfg
}

func testOptions() []options.Option {
	return []options.Option{
		{ID: "1", Label: "Apple", Value: "apple", Group: "Fruits"},
		{ID: "2", Label: "Banana", Value: "banana", Group: "Fruits"},
		{ID: "3", Label: "Carrot", Value: "carrot", Group: "Veg"},
	}
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel(t *testing.T) {
	t.Parallel()

	t.Run("should choose the selected option", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyDown}))
		cmd := send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())

		o, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, "banana", o.Value)
	})

	t.Run("should start on the initial value", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "carrot")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		o, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, "carrot", o.Value)
	})

	t.Run("should cancel on escape", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		cmd := send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		require.NotNil(t, cmd)
		_, err := m.Result()
		require.ErrorIs(t, err, ErrCanceled)
	})

	t.Run("should render groups and the help line", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		content := ansi.Strip(m.content())
		assert.Contains(t, content, "Fruits")
		assert.Contains(t, content, "Banana")
		assert.Contains(t, content, "Veg")
		assert.Contains(t, content, "choose")
	})

	t.Run("should place the cursor in the filter input", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		v := m.View()
		require.NotNil(t, v.Cursor)
		assert.Equal(t, 0, v.Cursor.Y)

		send(m, tea.KeyPressMsg(tea.Key{Code: 'b', Text: "b"}))
		moved := m.View().Cursor
		require.NotNil(t, moved)
		assert.Greater(t, moved.X, v.Cursor.X)
	})

	t.Run("should replace options on reload", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		send(m, OptionsLoadedMsg{Options: []options.Option{
			{ID: "9", Label: "Durian", Value: "durian"},
		}})
		assert.Contains(t, ansi.Strip(m.content()), "Durian")
		assert.NotContains(t, ansi.Strip(m.content()), "Apple")

		send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		o, err := m.Result()
		require.NoError(t, err)
		assert.Equal(t, "durian", o.Value)
	})

	t.Run("should show reload errors", func(t *testing.T) {
		t.Parallel()
		m := New(testConfig(t), testOptions(), "")
		m.Init()
		send(m, tea.WindowSizeMsg{Width: 40, Height: 20})

		cmd := send(m, OptionsLoadedMsg{Err: errors.New("boom")})
		require.NotNil(t, cmd)
		msg := cmd()
		require.IsType(t, util.InfoMsg{}, msg)
		send(m, msg)
		assert.Contains(t, ansi.Strip(m.content()), "boom")
	})
}
