// Package viewport owns the visible bar window, the pan gesture and the
// inspection cursor. Transitions on State are pure functions; Manager
// applies them in response to input events.
package viewport

// MinBarCount is the smallest window zooming in will shrink to.
const MinBarCount = 50

const (
	zoomInFraction  float32 = 0.2
	zoomOutFraction float32 = 0.25
	panKeyFraction  float32 = 0.1
)

// State is the visible window [Left, Right] into a history whose last
// index is Last. 0 <= Left <= Right <= Last always holds after a transition.
type State struct {
	Left  int
	Right int
	Last  int
}

// New returns a window showing the whole history.
func New(last int) State {
	last = max(last, 0)
	return State{Left: 0, Right: last, Last: last}
}

// Count is the number of visible bars.
func (s State) Count() int { return s.Right - s.Left + 1 }

// fraction truncates toward zero, matching a plain float to int cast.
func fraction(n int, f float32) int { return int(float32(n) * f) }

// Clamp restores the window invariants.
func (s State) Clamp() State {
	s.Last = max(s.Last, 0)
	s.Left = max(0, min(s.Left, s.Last))
	s.Right = max(s.Left, min(s.Right, s.Last))
	return s
}

// ZoomIn drops the oldest 20% of the window. It is a no-op once the window
// is down to MinBarCount bars and never shrinks it below that.
func ZoomIn(s State) State {
	if s.Count() <= MinBarCount {
		return s
	}
	s.Left += fraction(s.Count(), zoomInFraction)
	s.Left = min(s.Left, s.Right-MinBarCount+1)
	return s.Clamp()
}

// ZoomOut extends the window to the left by 25% of its size.
func ZoomOut(s State) State {
	s.Left -= fraction(s.Count(), zoomOutFraction)
	return s.Clamp()
}

// ZoomInAt shrinks both edges toward cursor, each by 20% of its distance.
func ZoomInAt(s State, cursor int) State {
	if s.Count() <= MinBarCount {
		return s
	}
	cursor = max(s.Left, min(cursor, s.Right))
	dl := fraction(cursor-s.Left+1, zoomInFraction)
	dr := fraction(s.Right-cursor+1, zoomInFraction)

	// give back bars to keep MinBarCount, split between both edges
	if short := MinBarCount - (s.Count() - dl - dr); short > 0 {
		backRight := min(dr, short/2)
		dr -= backRight
		backLeft := min(dl, short-backRight)
		dl -= backLeft
		dr -= min(dr, short-backRight-backLeft)
	}
	s.Left += dl
	s.Right -= dr
	return s.Clamp()
}

// ZoomOutAt pushes both edges away from cursor, each by 25% of its
// distance, clamping each side independently.
func ZoomOutAt(s State, cursor int) State {
	cursor = max(s.Left, min(cursor, s.Right))
	left := s.Left - fraction(cursor-s.Left+1, zoomOutFraction)
	right := s.Right + fraction(s.Right-cursor+1, zoomOutFraction)
	s.Left = max(left, 0)
	s.Right = min(right, s.Last)
	return s.Clamp()
}

// Shift moves the window by delta bars keeping its size; at either end of
// the history the window stops instead of shrinking.
func Shift(s State, delta int) State {
	span := s.Right - s.Left
	s.Left += delta
	s.Right += delta
	if s.Left < 0 {
		s.Left = 0
		s.Right = span
	}
	if s.Right > s.Last {
		s.Right = s.Last
		s.Left = s.Right - span
	}
	return s.Clamp()
}

// PanLeft and PanRight move the window by 10% of its size (at least one bar).
func PanLeft(s State) State  { return Shift(s, -max(1, fraction(s.Count(), panKeyFraction))) }
func PanRight(s State) State { return Shift(s, max(1, fraction(s.Count(), panKeyFraction))) }

// Home moves the window to the start of the history.
func Home(s State) State { return Shift(s, -s.Left) }

// End moves the window to the end of the history.
func End(s State) State { return Shift(s, s.Last-s.Right) }

// CenterOn moves the window so index is in its middle.
func CenterOn(s State, index int) State {
	mid := s.Left + (s.Right-s.Left)/2
	return Shift(s, index-mid)
}

// Drag is an active pan gesture: where it started and the window at that time.
type Drag struct {
	AnchorX     float64
	AnchorLeft  int
	AnchorRight int
}

// BeginPan records the anchor of a pan gesture.
func BeginPan(s State, screenX float64) *Drag {
	return &Drag{AnchorX: screenX, AnchorLeft: s.Left, AnchorRight: s.Right}
}

// DragTo moves the window relative to the gesture anchor. Dragging right by
// the chart width scrolls back by one full window.
func DragTo(s State, d *Drag, screenX, chartWidth float64) State {
	if d == nil || chartWidth <= 0 {
		return s
	}
	count := d.AnchorRight - d.AnchorLeft + 1
	delta := int((screenX - d.AnchorX) / chartWidth * float64(count))
	s.Left = d.AnchorLeft
	s.Right = d.AnchorRight
	return Shift(s, -delta)
}
