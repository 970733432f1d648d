package render

import (
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/transform"
	"github.com/zappabad/klinechart/internal/viewport"
)

var legendEntries = [...]struct {
	kind TextKind
	text string
}{
	{TextLegendProfit, "red line: winning trade"},
	{TextLegendLoss, "green line: losing trade"},
	{TextLegendLong, "yellow up arrow: Buy (open long)"},
	{TextLegendLong, "yellow down arrow: Sell (close long)"},
	{TextLegendShort, "magenta down arrow: Short (open short)"},
	{TextLegendShort, "magenta up arrow: Cover (close short)"},
}

// legend lays the six entries out two per row in the hint area.
func legend(l viewport.Layout, cfg Config) []Text {
	top := l.Screen.Height - l.Config.HintHeight + cfg.LegendInsetY
	out := make([]Text, 0, len(legendEntries))
	for i, e := range legendEntries {
		out = append(out, Text{
			Kind: e.kind,
			Pos: transform.Point{
				X: cfg.LegendInsetX + float64(i%2)*cfg.LegendColumnWidth,
				Y: top + float64(i/2)*cfg.LegendRowHeight,
			},
			Lines: []string{e.text},
		})
	}
	return out
}

// priceAxis places n+1 labels from the window minimum up to its maximum
// along the right edge of the price area.
func priceAxis(l viewport.Layout, r viewport.Range, cfg Config) []Text {
	area := l.Price
	n := int(area.Height/l.Config.PriceLabelSpacing) + 1
	dist := area.Height / float64(n)
	step := (r.MaxPrice - r.MinPrice) / float64(n)

	out := make([]Text, 0, n+1)
	for i := 0; i <= n; i++ {
		v := r.MinPrice + float64(i)*step
		if i == n {
			v = r.MaxPrice
		}
		out = append(out, axisText(area.Right(), area.Bottom()-float64(i)*dist-cfg.AxisYLabelBias, formatFixed(v, cfg.PriceDecimals)))
	}
	return out
}

// volumeAxis places n labels from zero upwards; the top of the area is left
// free so it does not collide with the lowest price label.
func volumeAxis(l viewport.Layout, r viewport.Range, cfg Config) []Text {
	area := l.Volume
	n := int(area.Height/l.Config.PriceLabelSpacing) + 1
	dist := area.Height / float64(n)
	step := r.MaxVolume / float64(n)

	out := make([]Text, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, axisText(area.Right(), area.Bottom()-float64(i)*dist-cfg.AxisYLabelBias, formatFixed(float64(i)*step, cfg.VolumeDecimals)))
	}
	return out
}

// datetimeAxis spreads n+1 datetime labels under the volume area; the last
// one always shows the right edge of the window.
func datetimeAxis(store *dataset.Store, l viewport.Layout, s viewport.State, cfg Config) []Text {
	area := l.Volume
	n := int(area.Width/l.Config.DatetimeLabelSpacing) + 1
	dist := area.Width / float64(n)
	ixStep := s.Count() / n

	out := make([]Text, 0, n+1)
	for i := 0; i <= n; i++ {
		ix := s.Left + i*ixStep
		if i == n {
			ix = s.Right
		}
		dt := store.Bar(ix).Datetime
		out = append(out, Text{
			Kind:  TextAxis,
			Pos:   transform.Point{X: area.X + float64(i)*dist - cfg.AxisXLabelBias, Y: area.Bottom()},
			Lines: []string{dt.Format(cfg.DateLayout), dt.Format(cfg.TimeLayout)},
		})
	}
	return out
}

func axisText(x, y float64, s string) Text {
	return Text{Kind: TextAxis, Pos: transform.Point{X: x, Y: y}, Lines: []string{s}}
}
