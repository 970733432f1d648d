package transform

// Point is a screen position; the origin is the top-left corner and y grows
// downwards.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned screen rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies in r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ToScreen maps a clip space point into r: (-1,-1) is the bottom-left
// corner of r and (1,1) the top-right.
func (r Rect) ToScreen(ndcX, ndcY float32) Point {
	return Point{
		X: r.X + (float64(ndcX)+1)/2*r.Width,
		Y: r.Y + (1-float64(ndcY))/2*r.Height,
	}
}

// ScreenToClip maps a screen position to whole-surface clip coordinates.
// Overlay shapes (frames, cursor lines, labels) are built this way and
// drawn with the identity camera.
func ScreenToClip(p Point, screenWidth, screenHeight float64) (float32, float32) {
	if screenWidth <= 0 || screenHeight <= 0 {
		return 0, 0
	}
	x := p.X/screenWidth*2 - 1
	y := (screenHeight-p.Y)/screenHeight*2 - 1
	return float32(x), float32(y)
}

// BarAt returns the bar index under screen x inside chart, for the window
// [left, right]. The result is floored and clamped to last.
func BarAt(chart Rect, x float64, left, right, last int) int {
	count := right - left + 1
	if count < 1 || chart.Width <= 0 {
		return left
	}
	barWidth := chart.Width / float64(count)
	ix := int((x-chart.X)/barWidth) + left
	return max(0, min(ix, last))
}

// ValueAt linearly maps screen y inside r onto [bottom, top]: the bottom
// edge of r is bottom, the top edge is top.
func ValueAt(r Rect, y, bottom, top float64) float64 {
	if r.Height <= 0 {
		return bottom
	}
	return (r.Bottom()-y)/r.Height*(top-bottom) + bottom
}

// YFor is the inverse of ValueAt.
func YFor(r Rect, v, bottom, top float64) float64 {
	if top == bottom {
		return r.Y + r.Height/2
	}
	return r.Bottom() - (v-bottom)/(top-bottom)*r.Height
}
