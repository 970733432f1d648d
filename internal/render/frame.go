// Package render composes one frame of the chart: an ordered list of draws
// (a geometry layer, the camera to apply and the viewport to map it into)
// plus the screen space text. It never touches a drawing surface; a backend
// consumes the Frame.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/transform"
	"github.com/zappabad/klinechart/internal/viewport"
)

// Primitive tells the backend how to interpret a draw's vertices.
type Primitive uint8

const (
	// Lines: each vertex pair is a segment.
	Lines Primitive = iota
	// LineStrip: consecutive vertices are joined.
	LineStrip
	// Triangles: each vertex triple is a filled triangle.
	Triangles
	// MarkersUp and MarkersDown: each vertex triple is one arrow at the
	// shared anchor, pointing up (drawn below the anchor) or down (above).
	MarkersUp
	MarkersDown
	// Labels: only the draw's Labels are used.
	Labels
)

// Layer names what a draw shows; backends pick colours by layer.
type Layer uint8

const (
	LayerChartFrame Layer = iota
	LayerPriceFrame
	LayerVolumeFrame
	LayerCandleUp
	LayerCandleDown
	LayerCandleDownWick
	LayerCandleFlat
	LayerTradeProfit
	LayerTradeLoss
	LayerSell
	LayerCover
	LayerBuy
	LayerShort
	LayerVolumeUp
	LayerVolumeDown
	LayerVolumeFlat
	LayerSellLabels
	LayerCoverLabels
	LayerBuyLabels
	LayerShortLabels
	LayerCursorLine
	LayerCursorLabel
	LayerInfoBox
)

var layerNames = [...]string{
	"chart-frame", "price-frame", "volume-frame",
	"candle-up", "candle-down", "candle-down-wick", "candle-flat",
	"trade-profit", "trade-loss",
	"sell", "cover", "buy", "short",
	"volume-up", "volume-down", "volume-flat",
	"sell-labels", "cover-labels", "buy-labels", "short-labels",
	"cursor-line", "cursor-label", "info-box",
}

func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// Draw is one layer to render.
type Draw struct {
	Layer     Layer
	Primitive Primitive
	Vertices  []geometry.Vertex
	Labels    []geometry.Label
	// LabelOffset shifts projected labels vertically, in surface units.
	LabelOffset float64
	Camera      mgl32.Mat4
	Viewport    transform.Rect
}

// TextKind groups screen text for styling.
type TextKind uint8

const (
	TextAxis TextKind = iota
	TextLegendProfit
	TextLegendLoss
	TextLegendLong
	TextLegendShort
	TextCursor
	TextInfo
)

// Text is a block of lines at a screen position.
type Text struct {
	Kind  TextKind
	Pos   transform.Point
	Lines []string
}

// Frame is everything needed to draw the chart once.
type Frame struct {
	Draws  []Draw
	Texts  []Text
	State  viewport.State
	Range  viewport.Range
	Cursor viewport.Cursor
	Layout viewport.Layout
}
