package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/combo/internal/config"
	"github.com/charmbracelet/combo/internal/options"
	"github.com/charmbracelet/combo/internal/tui/exp/list"
	"github.com/charmbracelet/combo/internal/tui/styles"
	"github.com/charmbracelet/combo/internal/tui/util"
	"github.com/charmbracelet/combo/internal/window"
	"github.com/charmbracelet/lipgloss/v2"
)

// ErrCanceled is returned by Result when the picker was closed without a
// choice.
var ErrCanceled = errors.New("canceled")

// OptionsLoadedMsg carries a reloaded option source.
type OptionsLoadedMsg struct {
	Options []options.Option
	Err     error
}

type Model struct {
	width, height int
	keyMap        KeyMap
	help          help.Model

	list list.FilterableList[list.FilterableItem]
	byID map[string]options.Option

	// value selected when the picker opens, applied once sized
	value        string
	valueApplied bool

	chosen   *options.Option
	canceled bool
	info     util.InfoMsg
}

// New creates the picker over opts with value preselected.
func New(cfg *config.Config, opts []options.Option, value string) *Model {
	t := styles.CurrentTheme()

	listOpts := []list.ListOption{
		list.WithPolicy(cfg.Policy(true)),
		list.WithOverscan(cfg.Overscan()),
	}
	if cfg.Options.Wrap {
		listOpts = append(listOpts, list.WithWrapNavigation())
	}
	if cfg.Options.Mouse {
		listOpts = append(listOpts, list.WithEnableMouse())
	}

	h := help.New()
	h.Styles = t.S().Help

	m := &Model{
		keyMap: DefaultKeyMap(),
		help:   h,
		value:  value,
	}
	m.list = list.NewFilterableList(
		m.buildItems(opts),
		list.WithFilterPlaceholder(cfg.Options.Placeholder),
		list.WithFilterListOptions(listOpts...),
	)
	return m
}

func (m *Model) buildItems(opts []options.Option) []list.FilterableItem {
	m.byID = make(map[string]options.Option, len(opts))
	for _, o := range opts {
		m.byID[o.ID] = o
	}
	entries := options.Items(opts)
	items := make([]list.FilterableItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind == window.KindGroupHeader {
			items = append(items, list.NewGroupHeader(entry))
			continue
		}
		items = append(items, list.NewOptionItem(entry))
	}
	return items
}

func (m *Model) Init() tea.Cmd {
	return m.list.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleWindowResize(msg)
	case OptionsLoadedMsg:
		if msg.Err != nil {
			return m, util.ReportError(msg.Err)
		}
		slog.Debug("Options reloaded", "count", len(msg.Options))
		m.info = util.InfoMsg{}
		return m, tea.Batch(
			m.list.SetItems(m.buildItems(msg.Options)),
			m.list.SetValue(m.value),
			util.ReportInfo(fmt.Sprintf("Reloaded %d options", len(msg.Options))),
		)
	case util.InfoMsg:
		m.info = msg
		return m, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Select):
			if o, ok := m.selected(); ok {
				m.chosen = &o
				return m, tea.Quit
			}
			return m, nil
		}
	}
	u, cmd := m.list.Update(msg)
	m.list = u.(list.FilterableList[list.FilterableItem])
	return m, cmd
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	cmds := []tea.Cmd{
		m.list.SetSize(msg.Width, max(msg.Height-1, 0)),
	}
	if !m.valueApplied {
		m.valueApplied = true
		cmds = append(cmds, m.list.SetValue(m.value))
	}
	return tea.Batch(cmds...)
}

func (m *Model) selected() (options.Option, bool) {
	item := m.list.SelectedItem()
	if item == nil {
		return options.Option{}, false
	}
	o, ok := m.byID[(*item).ID()]
	return o, ok
}

func (m *Model) content() string {
	t := styles.CurrentTheme()
	footer := t.S().Base.Padding(0, 1).Render(m.help.View(m.keyMap))
	if m.info.Msg != "" {
		style := t.S().Info
		if m.info.Type == util.InfoTypeError {
			style = t.S().Error
		}
		footer = t.S().Base.Padding(0, 1).Render(style.Render(m.info.Msg))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		footer,
	)
}

func (m *Model) View() tea.View {
	view := tea.NewView(m.content())
	view.Cursor = m.list.Cursor()
	return view
}

// Result returns the chosen option, or ErrCanceled.
func (m *Model) Result() (options.Option, error) {
	if m.chosen == nil {
		return options.Option{}, ErrCanceled
	}
	return *m.chosen, nil
}
