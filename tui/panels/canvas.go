package panels

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// tone indexes the canvas palette.
type tone uint8

type cell struct {
	r    rune
	tone tone
}

// canvas is a character grid. Cells outside the grid or the active clip
// rectangle are silently dropped.
type canvas struct {
	w, h    int
	cells   []cell
	palette []lipgloss.Style

	// clip rectangle, inclusive
	x0, y0, x1, y1 int
}

func newCanvas(w, h int, palette []lipgloss.Style) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h), palette: palette}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	c.unclip()
	return c
}

func (c *canvas) clip(x0, y0, x1, y1 int) {
	c.x0, c.y0 = max(x0, 0), max(y0, 0)
	c.x1, c.y1 = min(x1, c.w-1), min(y1, c.h-1)
}

func (c *canvas) unclip() { c.clip(0, 0, c.w-1, c.h-1) }

func (c *canvas) set(x, y int, r rune, t tone) {
	if x < c.x0 || x > c.x1 || y < c.y0 || y > c.y1 {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, tone: t}
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x].r
}

// line draws a Bresenham segment. Straight segments use box drawing
// runes; slanted ones use dots.
func (c *canvas) line(x0, y0, x1, y1 int, t tone) {
	r := '·'
	switch {
	case x0 == x1 && y0 == y1:
		r = '•'
	case x0 == x1:
		r = '│'
	case y0 == y1:
		r = '─'
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, t)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// triangle fills every cell whose centre lies inside abc. The corner cells
// are always set so slivers narrower than a cell stay visible.
func (c *canvas) triangle(a, b, d [2]float64, r rune, t tone) {
	minX := int(math.Floor(min(a[0], b[0], d[0])))
	maxX := int(math.Floor(max(a[0], b[0], d[0])))
	minY := int(math.Floor(min(a[1], b[1], d[1])))
	maxY := int(math.Floor(max(a[1], b[1], d[1])))
	minX, minY = max(minX, c.x0), max(minY, c.y0)
	maxX, maxY = min(maxX, c.x1), min(maxY, c.y1)

	area := edge(a, b, d)
	if area != 0 {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
				w0, w1, w2 := edge(b, d, p), edge(d, a, p), edge(a, b, p)
				if area < 0 {
					w0, w1, w2 = -w0, -w1, -w2
				}
				if w0 >= 0 && w1 >= 0 && w2 >= 0 {
					c.set(x, y, r, t)
				}
			}
		}
	}
	for _, v := range [...][2]float64{a, b, d} {
		c.set(int(math.Floor(v[0])), int(math.Floor(v[1])), r, t)
	}
}

func edge(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// text writes s starting at (x, y). Wide runes take two cells.
func (c *canvas) text(x, y int, s string, t tone) {
	for _, r := range s {
		c.set(x, y, r, t)
		if runewidth.RuneWidth(r) == 2 {
			c.set(x+1, y, 0, t)
			x++
		}
		x++
	}
}

// String renders the grid, styling each run of equal tone once.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].tone == row[start].tone {
				continue
			}
			run.Reset()
			for _, cl := range row[start:x] {
				if cl.r != 0 {
					run.WriteRune(cl.r)
				}
			}
			b.WriteString(c.palette[row[start].tone].Render(run.String()))
			start = x
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
