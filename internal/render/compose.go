package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/shopspring/decimal"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/transform"
	"github.com/zappabad/klinechart/internal/viewport"
)

// Compose builds the frame for the manager's current state. The geometry is
// only read; the cameras are derived from the visible window each call.
func Compose(store *dataset.Store, g *geometry.Geometry, m *viewport.Manager, cfg Config) Frame {
	s := m.State()
	r := m.Range()
	l := m.Layout()
	c := m.Cursor()

	f := Frame{State: s, Range: r, Cursor: c, Layout: l}
	b := builder{frame: &f, screen: l.Screen}

	b.overlay(LayerChartFrame, LineStrip, b.outline(l.Frame))
	b.overlay(LayerPriceFrame, LineStrip, b.outline(l.Price))
	b.overlay(LayerVolumeFrame, LineStrip, b.outline(l.Volume))

	price := transform.PriceCamera(s.Left, s.Right, r.MinPrice, r.MaxPrice)
	volume := transform.VolumeCamera(s.Left, s.Right, r.MaxVolume)

	pd := func(layer Layer, prim Primitive, v []geometry.Vertex) {
		b.data(Draw{Layer: layer, Primitive: prim, Vertices: v, Camera: price, Viewport: l.Price})
	}
	pd(LayerCandleUp, Lines, g.Candles.Up)
	pd(LayerCandleDown, Triangles, g.Candles.Down)
	pd(LayerCandleDownWick, Lines, g.Candles.DownWick)
	pd(LayerCandleFlat, Lines, g.Candles.Flat)
	pd(LayerTradeProfit, Lines, g.Trades.Profit)
	pd(LayerTradeLoss, Lines, g.Trades.Loss)
	pd(LayerSell, MarkersDown, g.Trades.Sell)
	pd(LayerCover, MarkersUp, g.Trades.Cover)
	pd(LayerBuy, MarkersUp, g.Trades.Buy)
	pd(LayerShort, MarkersDown, g.Trades.Short)

	vd := func(layer Layer, prim Primitive, v []geometry.Vertex) {
		b.data(Draw{Layer: layer, Primitive: prim, Vertices: v, Camera: volume, Viewport: l.Volume})
	}
	vd(LayerVolumeUp, Lines, g.Volumes.Up)
	vd(LayerVolumeDown, Triangles, g.Volumes.Down)
	vd(LayerVolumeFlat, Lines, g.Volumes.Flat)

	if float64(s.Count()) <= l.Price.Width*l.Config.LabelDensity {
		ld := func(layer Layer, labels []geometry.Label, offset float64) {
			visible := cullLabels(price, labels, cfg.LabelCull)
			if len(visible) == 0 {
				return
			}
			f.Draws = append(f.Draws, Draw{
				Layer: layer, Primitive: Labels, Labels: visible,
				LabelOffset: offset, Camera: price, Viewport: l.Price,
			})
		}
		// closing labels first so opening labels end up on top
		ld(LayerSellLabels, g.Trades.SellLabels, cfg.LabelAbove)
		ld(LayerCoverLabels, g.Trades.CoverLabels, cfg.LabelBelow)
		ld(LayerBuyLabels, g.Trades.BuyLabels, cfg.LabelBelow)
		ld(LayerShortLabels, g.Trades.ShortLabels, cfg.LabelAbove)
	}

	f.Texts = append(f.Texts, legend(l, cfg)...)
	f.Texts = append(f.Texts, priceAxis(l, r, cfg)...)
	f.Texts = append(f.Texts, volumeAxis(l, r, cfg)...)
	f.Texts = append(f.Texts, datetimeAxis(store, l, s, cfg)...)

	if c.OverChart {
		b.cursor(store, l, c, cfg)
	}
	return f
}

type builder struct {
	frame  *Frame
	screen transform.Rect
}

func (b builder) data(d Draw) {
	if len(d.Vertices) == 0 {
		return
	}
	b.frame.Draws = append(b.frame.Draws, d)
}

func (b builder) overlay(layer Layer, prim Primitive, v []geometry.Vertex) {
	b.frame.Draws = append(b.frame.Draws, Draw{
		Layer: layer, Primitive: prim, Vertices: v,
		Camera: transform.Identity, Viewport: b.screen,
	})
}

func (b builder) clip(x, y float64) geometry.Vertex {
	cx, cy := transform.ScreenToClip(transform.Point{X: x, Y: y}, b.screen.Width, b.screen.Height)
	return geometry.Vertex{X: cx, Y: cy}
}

// outline is a closed line strip around r.
func (b builder) outline(r transform.Rect) []geometry.Vertex {
	return []geometry.Vertex{
		b.clip(r.X, r.Y),
		b.clip(r.Right(), r.Y),
		b.clip(r.Right(), r.Bottom()),
		b.clip(r.X, r.Bottom()),
		b.clip(r.X, r.Y),
	}
}

// filled is r as two triangles.
func (b builder) filled(r transform.Rect) []geometry.Vertex {
	tl, bl := b.clip(r.X, r.Y), b.clip(r.X, r.Bottom())
	tr, br := b.clip(r.Right(), r.Y), b.clip(r.Right(), r.Bottom())
	return []geometry.Vertex{tl, bl, tr, tr, bl, br}
}

func (b builder) segment(x1, y1, x2, y2 float64) []geometry.Vertex {
	return []geometry.Vertex{b.clip(x1, y1), b.clip(x2, y2)}
}

func (b builder) cursor(store *dataset.Store, l viewport.Layout, c viewport.Cursor, cfg Config) {
	f := b.frame
	p := c.Position

	b.overlay(LayerCursorLine, Lines, b.segment(p.X, l.Price.Y, p.X, l.Volume.Bottom()))
	vlabel := transform.Rect{X: p.X, Y: l.Volume.Bottom(), Width: cfg.CursorLabelWidth, Height: cfg.CursorLabelHeight}
	b.overlay(LayerCursorLabel, Triangles, b.filled(vlabel))

	bar := store.Bar(c.Bar)
	f.Texts = append(f.Texts, Text{
		Kind:  TextCursor,
		Pos:   transform.Point{X: vlabel.X + 1, Y: vlabel.Y},
		Lines: []string{bar.Datetime.Format(cfg.DateLayout), bar.Datetime.Format(cfg.TimeLayout)},
	})

	horizontal := func(area transform.Rect, text string) {
		b.overlay(LayerCursorLine, Lines, b.segment(area.X, p.Y, area.Right(), p.Y))
		hl := transform.Rect{X: area.Right(), Y: p.Y - cfg.AxisYLabelBias, Width: l.Config.AxisYWidth, Height: cfg.AxisLabelHeight}
		b.overlay(LayerCursorLabel, Triangles, b.filled(hl))
		f.Texts = append(f.Texts, Text{Kind: TextCursor, Pos: transform.Point{X: hl.X + 1, Y: hl.Y}, Lines: []string{text}})
	}
	if c.HasPrice {
		horizontal(l.Price, formatFixed(c.Price, cfg.PriceDecimals))
	}
	if c.HasVolume {
		horizontal(l.Volume, formatFixed(c.Volume, cfg.VolumeDecimals))
	}

	info := l.InfoBox(c.DockLeft)
	b.overlay(LayerInfoBox, Triangles, b.filled(info))
	f.Texts = append(f.Texts, Text{Kind: TextInfo, Pos: transform.Point{X: info.X, Y: info.Y}, Lines: InfoLines(bar, cfg)})
}

// InfoLines is the readout for one bar.
func InfoLines(bar dataset.Bar, cfg Config) []string {
	return []string{
		"Date", bar.Datetime.Format(cfg.DateLayout),
		"Time", bar.Datetime.Format(cfg.TimeLayout),
		"Open", formatExact(bar.Open),
		"High", formatExact(bar.High),
		"Low", formatExact(bar.Low),
		"Close", formatExact(bar.Close),
		"Volume", formatExact(bar.Volume),
	}
}

func cullLabels(cam mgl32.Mat4, labels []geometry.Label, limit float32) []geometry.Label {
	var out []geometry.Label
	for _, lb := range labels {
		x, _ := transform.Project(cam, lb.Anchor.X, lb.Anchor.Y)
		if x < -limit || x > limit {
			continue
		}
		out = append(out, lb)
	}
	return out
}

func formatFixed(v float64, decimals int32) string {
	return decimal.NewFromFloat(v).StringFixed(decimals)
}

func formatExact(v float64) string {
	return decimal.NewFromFloat(v).String()
}
