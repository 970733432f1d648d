package panels

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func plainPalette() []lipgloss.Style {
	return []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()}
}

func TestCanvasLines(t *testing.T) {
	c := newCanvas(8, 5, plainPalette())

	c.line(1, 1, 6, 1, 0)
	for x := 1; x <= 6; x++ {
		assert.Equal(t, '─', c.at(x, 1))
	}
	assert.Equal(t, ' ', c.at(0, 1))
	assert.Equal(t, ' ', c.at(7, 1))

	c.line(3, 4, 3, 2, 0)
	for y := 2; y <= 4; y++ {
		assert.Equal(t, '│', c.at(3, y))
	}

	c.line(0, 0, 0, 0, 0)
	assert.Equal(t, '•', c.at(0, 0))

	c.line(5, 2, 7, 4, 0)
	assert.Equal(t, '·', c.at(5, 2))
	assert.Equal(t, '·', c.at(6, 3))
	assert.Equal(t, '·', c.at(7, 4))
}

func TestCanvasClip(t *testing.T) {
	c := newCanvas(6, 4, plainPalette())
	c.clip(1, 1, 3, 2)
	c.line(0, 1, 5, 1, 0)

	assert.Equal(t, ' ', c.at(0, 1))
	assert.Equal(t, '─', c.at(1, 1))
	assert.Equal(t, '─', c.at(3, 1))
	assert.Equal(t, ' ', c.at(4, 1))

	c.unclip()
	c.set(5, 3, 'x', 0)
	assert.Equal(t, 'x', c.at(5, 3))

	// out of the grid entirely
	c.set(6, 0, 'y', 0)
	c.set(-1, 0, 'y', 0)
	assert.Equal(t, rune(0), c.at(6, 0))
}

func TestCanvasTriangle(t *testing.T) {
	c := newCanvas(6, 6, plainPalette())
	// two triangles covering cells 1..3 x 1..3
	c.triangle([2]float64{1, 1}, [2]float64{1, 4}, [2]float64{4, 1}, '█', 0)
	c.triangle([2]float64{4, 1}, [2]float64{1, 4}, [2]float64{4, 4}, '█', 0)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			assert.Equal(t, '█', c.at(x, y), "cell %d,%d", x, y)
		}
	}
	assert.Equal(t, ' ', c.at(0, 2))
	assert.Equal(t, ' ', c.at(5, 2))
}

func TestCanvasSliver(t *testing.T) {
	c := newCanvas(4, 4, plainPalette())
	// narrower than a cell: only the corners show
	c.triangle([2]float64{1.2, 1.1}, [2]float64{1.2, 2.9}, [2]float64{1.4, 1.1}, '█', 0)
	assert.Equal(t, '█', c.at(1, 1))
	assert.Equal(t, '█', c.at(1, 2))
}

func TestCanvasText(t *testing.T) {
	c := newCanvas(10, 2, plainPalette())
	c.text(2, 0, "ab", 1)
	assert.Equal(t, 'a', c.at(2, 0))
	assert.Equal(t, 'b', c.at(3, 0))

	c.text(0, 1, "中x", 0)
	assert.Equal(t, '中', c.at(0, 1))
	assert.Equal(t, rune(0), c.at(1, 1))
	assert.Equal(t, 'x', c.at(2, 1))
}

func TestCanvasString(t *testing.T) {
	c := newCanvas(7, 3, plainPalette())
	c.text(0, 0, "abc", 1)
	c.text(1, 2, "中z", 1)

	lines := strings.Split(c.String(), "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 7, lipgloss.Width(l))
	}
	assert.Contains(t, lines[0], "abc")
}
