package panels

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/render"
	"github.com/zappabad/klinechart/internal/transform"
	"github.com/zappabad/klinechart/internal/viewport"
	"github.com/zappabad/klinechart/tui/styles"
)

// TerminalLayout sizes the chart areas in character cells.
func TerminalLayout() viewport.LayoutConfig {
	return viewport.LayoutConfig{
		Margin:               1,
		AxisXHeight:          2,
		AxisYWidth:           11,
		HintHeight:           3,
		PriceShare:           0.7,
		InfoWidth:            12,
		InfoHeight:           14,
		PriceLabelSpacing:    3,
		DatetimeLabelSpacing: 24,
		LabelDensity:         1,
	}
}

// TerminalRender is render.DefaultConfig scaled to character cells.
func TerminalRender() render.Config {
	cfg := render.DefaultConfig()
	cfg.LabelAbove = -2
	cfg.LabelBelow = 2
	cfg.AxisXLabelBias = 5
	cfg.AxisYLabelBias = 0
	cfg.CursorLabelWidth = 10
	cfg.CursorLabelHeight = 2
	cfg.AxisLabelHeight = 1
	cfg.LegendInsetX = 1
	cfg.LegendInsetY = 0
	cfg.LegendRowHeight = 1
	cfg.LegendColumnWidth = 40
	return cfg
}

const (
	toneDefault tone = iota
	toneFrame
	toneUp
	toneDown
	toneFlat
	toneProfit
	toneLoss
	toneLong
	toneShort
	toneAxis
	toneCursor
	toneCursorLabel
	toneInfo
)

func palette() []lipgloss.Style {
	return []lipgloss.Style{
		toneDefault:     lipgloss.NewStyle(),
		toneFrame:       styles.ChartFrameStyle,
		toneUp:          styles.CandleUpStyle,
		toneDown:        styles.CandleDownStyle,
		toneFlat:        styles.CandleFlatStyle,
		toneProfit:      styles.ProfitStyle,
		toneLoss:        styles.LossStyle,
		toneLong:        styles.LongStyle,
		toneShort:       styles.ShortStyle,
		toneAxis:        styles.ChartAxisStyle,
		toneCursor:      styles.CursorStyle,
		toneCursorLabel: styles.CursorLabelStyle,
		toneInfo:        styles.InfoBoxStyle,
	}
}

var layerTones = map[render.Layer]tone{
	render.LayerChartFrame:     toneFrame,
	render.LayerPriceFrame:     toneFrame,
	render.LayerVolumeFrame:    toneFrame,
	render.LayerCandleUp:       toneUp,
	render.LayerCandleDown:     toneDown,
	render.LayerCandleDownWick: toneDown,
	render.LayerCandleFlat:     toneFlat,
	render.LayerTradeProfit:    toneProfit,
	render.LayerTradeLoss:      toneLoss,
	render.LayerBuy:            toneLong,
	render.LayerSell:           toneLong,
	render.LayerShort:          toneShort,
	render.LayerCover:          toneShort,
	render.LayerVolumeUp:       toneUp,
	render.LayerVolumeDown:     toneDown,
	render.LayerVolumeFlat:     toneFlat,
	render.LayerBuyLabels:      toneLong,
	render.LayerSellLabels:     toneLong,
	render.LayerShortLabels:    toneShort,
	render.LayerCoverLabels:    toneShort,
	render.LayerCursorLine:     toneCursor,
	render.LayerCursorLabel:    toneCursorLabel,
	render.LayerInfoBox:        toneInfo,
}

var textTones = map[render.TextKind]tone{
	render.TextAxis:         toneAxis,
	render.TextLegendProfit: toneProfit,
	render.TextLegendLoss:   toneLoss,
	render.TextLegendLong:   toneLong,
	render.TextLegendShort:  toneShort,
	render.TextCursor:       toneCursorLabel,
	render.TextInfo:         toneInfo,
}

// fillRunes picks the rune used for filled triangles per layer.
var fillRunes = map[render.Layer]rune{
	render.LayerCandleDown:  '█',
	render.LayerVolumeDown:  '█',
	render.LayerCursorLabel: ' ',
	render.LayerInfoBox:     ' ',
}

var (
	zoomInKey   = key.NewBinding(key.WithKeys("up", "+", "="), key.WithHelp("↑/+", "zoom in"))
	zoomOutKey  = key.NewBinding(key.WithKeys("down", "-"), key.WithHelp("↓/-", "zoom out"))
	panLeftKey  = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left"))
	panRightKey = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right"))
	homeKey     = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first bar"))
	endKey      = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last bar"))
)

// ChartKeys are the chart navigation bindings, for help output.
func ChartKeys() []key.Binding {
	return []key.Binding{zoomInKey, zoomOutKey, panLeftKey, panRightKey, homeKey, endKey}
}

// ChartPanel draws the candlestick chart and forwards pointer and key
// input to the viewport manager.
type ChartPanel struct {
	store   *dataset.Store
	geom    *geometry.Geometry
	manager *viewport.Manager
	cfg     render.Config
	palette []lipgloss.Style

	focused bool
	width   int
	height  int

	// screen position of the chart's top-left cell
	originX int
	originY int
}

// NewChartPanel creates a chart over store with prebuilt geometry.
func NewChartPanel(store *dataset.Store, geom *geometry.Geometry, cfg render.Config) *ChartPanel {
	return &ChartPanel{
		store:   store,
		geom:    geom,
		manager: viewport.NewManager(store, TerminalLayout()),
		cfg:     cfg,
		palette: palette(),
	}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel. Mouse input is always handled;
// keys only while focused.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		p.handleMouse(msg)
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		if k := navigationKey(msg); k != viewport.KeyNone {
			p.manager.KeyPress(k)
		}
	}
	return p, nil
}

func navigationKey(msg tea.KeyMsg) viewport.Key {
	switch {
	case key.Matches(msg, zoomInKey):
		return viewport.KeyZoomIn
	case key.Matches(msg, zoomOutKey):
		return viewport.KeyZoomOut
	case key.Matches(msg, panLeftKey):
		return viewport.KeyPanLeft
	case key.Matches(msg, panRightKey):
		return viewport.KeyPanRight
	case key.Matches(msg, homeKey):
		return viewport.KeyHome
	case key.Matches(msg, endKey):
		return viewport.KeyEnd
	}
	return viewport.KeyNone
}

func (p *ChartPanel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X - p.originX)
	y := float64(msg.Y - p.originY)

	switch msg.Action {
	case tea.MouseActionMotion:
		p.manager.PointerMove(x, y)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.manager.Scroll(1)
		case tea.MouseButtonWheelDown:
			p.manager.Scroll(-1)
		case tea.MouseButtonLeft:
			p.manager.PointerMove(x, y)
			p.manager.PointerDown(viewport.ButtonLeft)
		case tea.MouseButtonMiddle:
			p.manager.PointerDown(viewport.ButtonMiddle)
		case tea.MouseButtonRight:
			p.manager.PointerDown(viewport.ButtonRight)
		}
	case tea.MouseActionRelease:
		// most terminals do not report which button was released
		p.manager.PointerMove(x, y)
		p.manager.PointerUp(viewport.ButtonLeft)
	}
}

// View renders the panel.
func (p *ChartPanel) View() string {
	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	s := p.manager.State()
	title := styles.RenderTitle(fmt.Sprintf("📈 Chart  bars %d-%d of %d", s.Left, s.Right, s.Last+1), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, p.Render())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// Render rasterizes the current frame without the panel chrome.
func (p *ChartPanel) Render() string {
	l := p.manager.Layout()
	c := newCanvas(int(l.Screen.Width), int(l.Screen.Height), p.palette)
	rasterize(c, render.Compose(p.store, p.geom, p.manager, p.cfg))
	return c.String()
}

// rasterize draws the frame in order; later draws cover earlier ones.
func rasterize(c *canvas, f render.Frame) {
	for _, d := range f.Draws {
		vp := d.Viewport
		c.clip(int(math.Floor(vp.X)), int(math.Floor(vp.Y)), int(math.Floor(vp.Right())), int(math.Floor(vp.Bottom())))
		t := layerTones[d.Layer]
		switch d.Primitive {
		case render.Lines:
			for i := 0; i+1 < len(d.Vertices); i += 2 {
				x0, y0 := cellOf(d, d.Vertices[i])
				x1, y1 := cellOf(d, d.Vertices[i+1])
				c.line(x0, y0, x1, y1, t)
			}
		case render.LineStrip:
			for i := 0; i+1 < len(d.Vertices); i++ {
				x0, y0 := cellOf(d, d.Vertices[i])
				x1, y1 := cellOf(d, d.Vertices[i+1])
				c.line(x0, y0, x1, y1, t)
			}
		case render.Triangles:
			r, ok := fillRunes[d.Layer]
			if !ok {
				r = '█'
			}
			for i := 0; i+2 < len(d.Vertices); i += 3 {
				c.triangle(pointOf(d, d.Vertices[i]), pointOf(d, d.Vertices[i+1]), pointOf(d, d.Vertices[i+2]), r, t)
			}
		case render.MarkersUp, render.MarkersDown:
			// an up arrow sits under its anchor, a down arrow above
			r, dy := '▲', 1
			if d.Primitive == render.MarkersDown {
				r, dy = '▼', -1
			}
			for i := 0; i < len(d.Vertices); i += geometry.MarkerVertices {
				x, y := cellOf(d, d.Vertices[i])
				c.set(x, y+dy, r, t)
			}
		case render.Labels:
			for _, lb := range d.Labels {
				x, y := cellOf(d, lb.Anchor)
				c.text(x-len(lb.Text)/2, y+int(d.LabelOffset), lb.Text, t)
			}
		}
	}

	c.unclip()
	for _, txt := range f.Texts {
		t := textTones[txt.Kind]
		x, y := int(math.Floor(txt.Pos.X)), int(math.Floor(txt.Pos.Y))
		for i, line := range txt.Lines {
			c.text(x, y+i, line, t)
		}
	}
}

func pointOf(d render.Draw, v geometry.Vertex) [2]float64 {
	nx, ny := transform.Project(d.Camera, v.X, v.Y)
	p := d.Viewport.ToScreen(nx, ny)
	return [2]float64{p.X, p.Y}
}

func cellOf(d render.Draw, v geometry.Vertex) (int, int) {
	p := pointOf(d, v)
	return int(math.Floor(p[0])), int(math.Floor(p[1]))
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions; the chart gets the area inside the
// border, padding and title.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.manager.Resize(float64(max(width-4, 1)), float64(max(height-3, 1)))
}

// SetOrigin records where the panel's top-left corner sits on screen so
// mouse positions can be made chart relative.
func (p *ChartPanel) SetOrigin(x, y int) {
	// border and padding on the left, border and title on top
	p.originX = x + 2
	p.originY = y + 2
}

// CenterOn moves the visible window so bar index is in the middle.
func (p *ChartPanel) CenterOn(index int) {
	p.manager.CenterOn(index)
}

// Manager exposes the viewport manager.
func (p *ChartPanel) Manager() *viewport.Manager {
	return p.manager
}
