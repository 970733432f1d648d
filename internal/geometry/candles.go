package geometry

import "github.com/zappabad/klinechart/internal/dataset"

// Candles are the price layers.
//
// Up is a line list: the four body edges followed by the upper and lower
// wick. Down is a triangle list filling the body, with its wick in DownWick
// as a line list. Flat is a line list of the open/close tick and the wick.
type Candles struct {
	Up       []Vertex
	Down     []Vertex
	DownWick []Vertex
	Flat     []Vertex
}

// Volumes are the volume histogram layers. Up and Flat are outlined boxes
// (line lists), Down is filled (triangle list).
type Volumes struct {
	Up   []Vertex
	Down []Vertex
	Flat []Vertex
}

// BuildCandles classifies each bar and emits its shapes.
func BuildCandles(bars []dataset.Bar) Candles {
	var c Candles
	for i, b := range bars {
		x := float32(i)
		o, h, l, cl := float32(b.Open), float32(b.High), float32(b.Low), float32(b.Close)
		switch Classify(b) {
		case ClassUp:
			c.Up = appendOutline(c.Up, x, o, cl)
			c.Up = append(c.Up,
				Vertex{x, h}, Vertex{x, cl},
				Vertex{x, l}, Vertex{x, o},
			)
		case ClassDown:
			c.Down = appendFilled(c.Down, x, cl, o)
			c.DownWick = append(c.DownWick, Vertex{x, h}, Vertex{x, l})
		default:
			c.Flat = append(c.Flat,
				Vertex{x - HalfWidth, o}, Vertex{x + HalfWidth, cl},
				Vertex{x, h}, Vertex{x, l},
			)
		}
	}
	return c
}

// BuildVolumes emits one bar from zero to the volume for each bar, using the
// same classification as the candles.
func BuildVolumes(bars []dataset.Bar) Volumes {
	var v Volumes
	for i, b := range bars {
		x := float32(i)
		vol := float32(b.Volume)
		switch Classify(b) {
		case ClassUp:
			v.Up = appendOutline(v.Up, x, 0, vol)
		case ClassDown:
			v.Down = appendFilled(v.Down, x, 0, vol)
		default:
			v.Flat = appendOutline(v.Flat, x, 0, vol)
		}
	}
	return v
}

// appendOutline adds the four edges of the box [x±HalfWidth]×[bottom,top]
// as a line list, starting at the top edge and going clockwise.
func appendOutline(dst []Vertex, x, bottom, top float32) []Vertex {
	l, r := x-HalfWidth, x+HalfWidth
	return append(dst,
		Vertex{l, top}, Vertex{r, top},
		Vertex{r, top}, Vertex{r, bottom},
		Vertex{r, bottom}, Vertex{l, bottom},
		Vertex{l, bottom}, Vertex{l, top},
	)
}

// appendFilled adds the box as two triangles.
func appendFilled(dst []Vertex, x, bottom, top float32) []Vertex {
	l, r := x-HalfWidth, x+HalfWidth
	return append(dst,
		Vertex{l, top}, Vertex{l, bottom}, Vertex{r, top},
		Vertex{r, top}, Vertex{l, bottom}, Vertex{r, bottom},
	)
}
