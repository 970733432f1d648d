package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/matcher"
	"github.com/zappabad/klinechart/tui/styles"
)

var (
	tradeUpKey     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous trade"))
	tradeDownKey   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next trade"))
	tradeSelectKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show trade"))
)

// TradeKeys are the trade list bindings, for help output.
func TradeKeys() []key.Binding {
	return []key.Binding{tradeUpKey, tradeDownKey, tradeSelectKey}
}

// TradesPanel lists the matched trade pairs.
type TradesPanel struct {
	pairs   []matcher.TradePair
	indices []geometry.PairIndex

	selectedIndex int
	scrollOffset  int
	focused       bool
	width         int
	height        int
}

// NewTradesPanel creates a trade list. indices must be parallel to pairs.
func NewTradesPanel(pairs []matcher.TradePair, indices []geometry.PairIndex) *TradesPanel {
	return &TradesPanel{pairs: pairs, indices: indices}
}

// Init initializes the panel.
func (p *TradesPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *TradesPanel) Update(msg tea.Msg) (*TradesPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, tradeUpKey):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, tradeDownKey):
			if p.selectedIndex < len(p.pairs)-1 {
				p.selectedIndex++
				visible := p.visibleItems()
				if p.selectedIndex >= p.scrollOffset+visible {
					p.scrollOffset = p.selectedIndex - visible + 1
				}
			}
		case key.Matches(msg, tradeSelectKey):
			if p.selectedIndex < len(p.indices) {
				sel, ix := p.selectedIndex, p.indices[p.selectedIndex]
				return p, func() tea.Msg { return TradeSelectedMsg{Pair: sel, Open: ix.Open, Close: ix.Close} }
			}
		}
	}
	return p, nil
}

func (p *TradesPanel) visibleItems() int {
	// border, title and header
	return max(p.height-4, 1)
}

// View renders the panel.
func (p *TradesPanel) View() string {
	var content strings.Builder

	if len(p.pairs) == 0 {
		content.WriteString(styles.MutedStyle.Render("No trades"))
	} else {
		content.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("%-5s %-11s %6s %8s", "DIR", "OPENED", "VOL", "PNL")))
		content.WriteString("\n")

		visible := p.visibleItems() - 1
		start := p.scrollOffset
		end := min(start+visible, len(p.pairs))

		for i := start; i < end; i++ {
			line := p.row(p.pairs[i])
			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}
			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}

		if len(p.pairs) > visible {
			content.WriteString("\n")
			content.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d/%d)", p.selectedIndex+1, len(p.pairs))))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("💱 Trades (%d)", len(p.pairs)), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradesPanel) row(tp matcher.TradePair) string {
	dirStyle := styles.LongStyle
	if tp.Direction == dataset.DirectionShort {
		dirStyle = styles.ShortStyle
	}
	pnlStyle := styles.LossStyle
	if tp.Profitable() {
		pnlStyle = styles.ProfitStyle
	}
	return fmt.Sprintf("%s %s %s %s",
		dirStyle.Render(fmt.Sprintf("%-5s", tp.Direction)),
		styles.TimeStyle.Render(tp.OpenDatetime.Format("01-02 15:04")),
		styles.RowStyle.Render(fmt.Sprintf("%6s", decimal.NewFromFloat(tp.Volume).String())),
		pnlStyle.Render(fmt.Sprintf("%8s", PairPnL(tp).StringFixed(2))),
	)
}

// PairPnL is the signed profit of a pair: price change times volume,
// negated for shorts.
func PairPnL(tp matcher.TradePair) decimal.Decimal {
	d := decimal.NewFromFloat(tp.ClosePrice).Sub(decimal.NewFromFloat(tp.OpenPrice))
	if tp.Direction == dataset.DirectionShort {
		d = d.Neg()
	}
	return d.Mul(decimal.NewFromFloat(tp.Volume))
}

// SetFocus sets the focus state of the panel.
func (p *TradesPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *TradesPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Selected returns the selected pair index, or -1 when the list is empty.
func (p *TradesPanel) Selected() int {
	if len(p.pairs) == 0 {
		return -1
	}
	return p.selectedIndex
}

// TradeSelectedMsg is sent when a trade is picked from the list.
type TradeSelectedMsg struct {
	Pair  int
	Open  int
	Close int
}
