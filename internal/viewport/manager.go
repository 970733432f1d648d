package viewport

import (
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/transform"
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Key is a navigation key, independent of any windowing toolkit.
type Key uint8

const (
	KeyNone Key = iota
	KeyZoomIn
	KeyZoomOut
	KeyPanLeft
	KeyPanRight
	KeyHome
	KeyEnd
)

// Cursor is the inspection readout, recomputed on every pointer move.
// Bar, Price and Volume are only meaningful when their Has flag is set.
type Cursor struct {
	Position  transform.Point
	OverChart bool

	Bar       int
	HasBar    bool
	Price     float64
	HasPrice  bool
	Volume    float64
	HasVolume bool

	// DockLeft places the info box at the left edge of the chart.
	DockLeft bool
}

// Range is the price and volume extent of the visible window.
type Range struct {
	MinPrice  float64
	MaxPrice  float64
	MaxVolume float64
}

// Manager is the single writer of the window, cursor and drag state.
// It is not safe for concurrent use; every handler runs on the event thread.
type Manager struct {
	store  *dataset.Store
	layout Layout

	state  State
	cursor Cursor
	drag   *Drag

	// last bar the pointer hovered, the pivot for wheel zoom
	pivot int
}

// NewManager returns a Manager showing the whole history of store.
func NewManager(store *dataset.Store, cfg LayoutConfig) *Manager {
	s := New(store.LastIndex())
	return &Manager{
		store:  store,
		layout: NewLayout(cfg, 1, 1),
		state:  s,
		cursor: Cursor{DockLeft: true},
		pivot:  s.Right,
	}
}

// State returns the visible window.
func (m *Manager) State() State { return m.state }

// Cursor returns the current cursor readout.
func (m *Manager) Cursor() Cursor { return m.cursor }

// Layout returns the current surface layout.
func (m *Manager) Layout() Layout { return m.layout }

// Dragging reports whether a pan gesture is active.
func (m *Manager) Dragging() bool { return m.drag != nil }

// Range scans the visible window for its price and volume extent.
func (m *Manager) Range() Range {
	lo, hi := m.store.PriceRange(m.state.Left, m.state.Right)
	return Range{MinPrice: lo, MaxPrice: hi, MaxVolume: m.store.MaxVolume(m.state.Left, m.state.Right)}
}

// SetState replaces the window, clamped to the history.
func (m *Manager) SetState(s State) {
	s.Last = m.store.LastIndex()
	m.state = s.Clamp()
	m.refreshCursor()
}

// Resize recomputes the layout for a new surface size.
func (m *Manager) Resize(width, height float64) bool {
	m.layout = NewLayout(m.layout.Config, width, height)
	m.refreshCursor()
	return true
}

// PointerMove pans while a drag is active and updates the cursor readout.
func (m *Manager) PointerMove(x, y float64) bool {
	m.cursor.Position = transform.Point{X: x, Y: y}
	if m.drag != nil {
		m.state = DragTo(m.state, m.drag, x, m.layout.Price.Width)
	}
	m.refreshCursor()
	return true
}

// PointerDown starts a pan on the left button.
func (m *Manager) PointerDown(b Button) bool {
	if b != ButtonLeft {
		return false
	}
	m.drag = BeginPan(m.state, m.cursor.Position.X)
	return false
}

// PointerUp ends a pan on the left button.
func (m *Manager) PointerUp(b Button) bool {
	if b != ButtonLeft || m.drag == nil {
		return false
	}
	m.drag = nil
	return true
}

// Scroll zooms around the hovered bar: positive dy zooms in.
func (m *Manager) Scroll(dy float64) bool {
	switch {
	case dy > 0:
		m.state = ZoomInAt(m.state, m.pivot)
	case dy < 0:
		m.state = ZoomOutAt(m.state, m.pivot)
	default:
		return false
	}
	m.refreshCursor()
	return true
}

// KeyPress applies a navigation key.
func (m *Manager) KeyPress(k Key) bool {
	before := m.state
	switch k {
	case KeyZoomIn:
		m.state = ZoomIn(m.state)
	case KeyZoomOut:
		m.state = ZoomOut(m.state)
	case KeyPanLeft:
		m.state = PanLeft(m.state)
	case KeyPanRight:
		m.state = PanRight(m.state)
	case KeyHome:
		m.state = Home(m.state)
	case KeyEnd:
		m.state = End(m.state)
	default:
		return false
	}
	if m.state == before {
		return false
	}
	m.refreshCursor()
	return true
}

// CenterOn moves the window so index is in the middle.
func (m *Manager) CenterOn(index int) bool {
	before := m.state
	m.state = CenterOn(m.state, index)
	m.refreshCursor()
	return m.state != before
}

func (m *Manager) refreshCursor() {
	c := Cursor{Position: m.cursor.Position, DockLeft: m.cursor.DockLeft}
	l := m.layout
	p := c.Position

	if !l.Plot().Contains(p) {
		m.cursor = c
		return
	}
	c.OverChart = true
	c.Bar = transform.BarAt(l.Price, p.X, m.state.Left, m.state.Right, m.state.Last)
	c.HasBar = true
	m.pivot = c.Bar

	r := m.Range()
	if p.Y >= l.Price.Y && p.Y < l.Price.Bottom() {
		c.Price = transform.ValueAt(l.Price, p.Y, r.MinPrice, r.MaxPrice)
		c.HasPrice = true
	}
	if p.Y > l.Volume.Y && p.Y <= l.Volume.Bottom() {
		c.Volume = transform.ValueAt(l.Volume, p.Y, 0, r.MaxVolume)
		c.HasVolume = true
	}

	c.DockLeft = p.X >= l.Price.X+2*l.Config.InfoWidth
	m.cursor = c
}
