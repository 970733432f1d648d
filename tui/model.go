package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/matcher"
	"github.com/zappabad/klinechart/internal/render"
	"github.com/zappabad/klinechart/tui/panels"
	"github.com/zappabad/klinechart/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusChart  PanelFocus = 0
	FocusTrades PanelFocus = 1
)

const tradesPanelWidth = 40

// Model is the main TUI application model.
type Model struct {
	logger zerolog.Logger

	chartPanel  *panels.ChartPanel
	tradesPanel *panels.TradesPanel

	keys keyMap
	help help.Model

	focusedPanel PanelFocus

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates the chart application over a loaded store.
func NewModel(store *dataset.Store, pairs []matcher.TradePair, geom *geometry.Geometry, cfg render.Config, logger zerolog.Logger) *Model {
	m := &Model{
		logger:      logger,
		chartPanel:  panels.NewChartPanel(store, geom, cfg),
		tradesPanel: panels.NewTradesPanel(pairs, geom.Trades.Pairs),
		keys:        newKeyMap(),
		help:        newHelp(),
	}
	m.setFocus(FocusChart)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.chartPanel.Init(),
		m.tradesPanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			m.cycleFocus()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.updatePanelSizes()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		m.ready = true
		m.logger.Debug().Int("width", msg.Width).Int("height", msg.Height).Msg("resize")

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.chartPanel, cmd = m.chartPanel.Update(msg)
		return m, cmd

	case panels.TradeSelectedMsg:
		m.chartPanel.CenterOn((msg.Open + msg.Close) / 2)
		m.statusMsg = fmt.Sprintf("trade #%d: bars %d-%d", msg.Pair+1, msg.Open, msg.Close)
		m.logger.Debug().Int("pair", msg.Pair).Int("open", msg.Open).Int("close", msg.Close).Msg("center on trade")
	}

	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.StatusBarKeyStyle
	h.Styles.FullKey = styles.StatusBarKeyStyle
	h.Styles.ShortDesc = styles.StatusBarDescStyle
	h.Styles.FullDesc = styles.StatusBarDescStyle
	return h
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusTrades:
		m.tradesPanel, cmd = m.tradesPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────────────────────────┬──────────┐
	// │            Chart             │  Trades  │
	// ├──────────────────────────────┴──────────┤
	// │               status / help             │
	// └─────────────────────────────────────────┘
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chartPanel.View(),
		m.tradesPanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	m.help.Width = m.width - 2

	status := m.cursorStatus()
	if m.statusMsg != "" {
		status += " │ " + m.statusMsg
	}
	return styles.StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.help.View(m.keys), styles.StatusBarDescStyle.Render(status)),
	)
}

func (m *Model) cursorStatus() string {
	mgr := m.chartPanel.Manager()
	s := mgr.State()
	out := fmt.Sprintf("%d bars", s.Count())
	if mgr.Dragging() {
		out += " │ dragging"
	}
	return out
}

func (m *Model) statusHeight() int {
	return lipgloss.Height(m.help.View(m.keys)) + 1
}

func (m *Model) cycleFocus() {
	m.setFocus((m.focusedPanel + 1) % 2)
}

func (m *Model) setFocus(focus PanelFocus) {
	m.focusedPanel = focus
	m.chartPanel.SetFocus(focus == FocusChart)
	m.tradesPanel.SetFocus(focus == FocusTrades)
}

func (m *Model) updatePanelSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	tradesWidth := min(tradesPanelWidth, m.width/3)
	chartWidth := m.width - tradesWidth
	height := max(m.height-m.statusHeight(), 3)

	m.chartPanel.SetSize(chartWidth, height)
	m.chartPanel.SetOrigin(0, 0)
	m.tradesPanel.SetSize(tradesWidth, height)
}
