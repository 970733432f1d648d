package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/matcher"
	"github.com/zappabad/klinechart/internal/transform"
	"github.com/zappabad/klinechart/internal/viewport"
)

var t0 = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func at(i int) time.Time { return t0.Add(time.Duration(i) * time.Minute) }

func testLayout() viewport.LayoutConfig {
	return viewport.LayoutConfig{
		Margin:               5,
		AxisXHeight:          20,
		AxisYWidth:           90,
		HintHeight:           70,
		PriceShare:           0.7,
		InfoWidth:            80,
		InfoHeight:           300,
		PriceLabelSpacing:    30,
		DatetimeLabelSpacing: 300,
		LabelDensity:         5,
	}
}

type fixture struct {
	store *dataset.Store
	geom  *geometry.Geometry
	mgr   *viewport.Manager
}

func newFixture(t *testing.T, lc viewport.LayoutConfig) fixture {
	t.Helper()
	bars := make([]dataset.Bar, 100)
	for i := range bars {
		open, close := 100.0, 101.0
		if i%2 == 1 {
			open, close = 101, 100
		}
		bars[i] = dataset.Bar{Datetime: at(i), Open: open, High: 102, Low: 99, Close: close, Volume: float64(10 + i)}
	}
	execs := []dataset.Execution{
		{Datetime: at(10), Direction: dataset.DirectionLong, Price: 100, Volume: 2},
		{Datetime: at(20), Direction: dataset.DirectionShort, Price: 101, Volume: 2},
		{Datetime: at(90), Direction: dataset.DirectionShort, Price: 100, Volume: 1},
		{Datetime: at(95), Direction: dataset.DirectionLong, Price: 101, Volume: 1},
	}
	store, err := dataset.NewStore(bars, execs)
	require.NoError(t, err)

	geom, err := geometry.Build(store, matcher.Match(store.Executions()))
	require.NoError(t, err)

	mgr := viewport.NewManager(store, lc)
	mgr.Resize(1000, 600)
	return fixture{store: store, geom: geom, mgr: mgr}
}

func (f fixture) compose() Frame {
	return Compose(f.store, f.geom, f.mgr, DefaultConfig())
}

func layers(fr Frame) []Layer {
	out := make([]Layer, 0, len(fr.Draws))
	for _, d := range fr.Draws {
		out = append(out, d.Layer)
	}
	return out
}

func texts(fr Frame, kind TextKind) []Text {
	var out []Text
	for _, t := range fr.Texts {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func TestComposeDrawOrder(t *testing.T) {
	f := newFixture(t, testLayout())
	fr := f.compose()

	assert.Equal(t, []Layer{
		LayerChartFrame, LayerPriceFrame, LayerVolumeFrame,
		LayerCandleUp, LayerCandleDown, LayerCandleDownWick,
		LayerTradeProfit, LayerTradeLoss,
		LayerSell, LayerCover, LayerBuy, LayerShort,
		LayerVolumeUp, LayerVolumeDown,
		LayerSellLabels, LayerCoverLabels, LayerBuyLabels, LayerShortLabels,
	}, layers(fr))
}

func TestComposeCameras(t *testing.T) {
	f := newFixture(t, testLayout())
	fr := f.compose()
	l := f.mgr.Layout()

	for _, d := range fr.Draws {
		switch d.Layer {
		case LayerChartFrame, LayerPriceFrame, LayerVolumeFrame:
			assert.Equal(t, transform.Identity, d.Camera, d.Layer.String())
			assert.Equal(t, l.Screen, d.Viewport, d.Layer.String())
		case LayerVolumeUp, LayerVolumeDown, LayerVolumeFlat:
			assert.Equal(t, transform.VolumeCamera(0, 99, 109), d.Camera, d.Layer.String())
			assert.Equal(t, l.Volume, d.Viewport, d.Layer.String())
		default:
			assert.Equal(t, transform.PriceCamera(0, 99, 99, 102), d.Camera, d.Layer.String())
			assert.Equal(t, l.Price, d.Viewport, d.Layer.String())
		}
	}
}

func TestComposeFrameOutline(t *testing.T) {
	f := newFixture(t, testLayout())
	fr := f.compose()

	chart := fr.Draws[0]
	require.Equal(t, LineStrip, chart.Primitive)
	require.Len(t, chart.Vertices, 5)
	x, y := transform.ScreenToClip(transform.Point{X: 5, Y: 5}, 1000, 600)
	assert.Equal(t, geometry.Vertex{X: x, Y: y}, chart.Vertices[0])
	assert.Equal(t, chart.Vertices[0], chart.Vertices[4])
}

func TestComposeLabelDensity(t *testing.T) {
	lc := testLayout()
	lc.LabelDensity = 0.1 // 900 * 0.1 = 90 visible bars at most
	f := newFixture(t, lc)
	fr := f.compose()

	for _, d := range fr.Draws {
		assert.NotEqual(t, Labels, d.Primitive, d.Layer.String())
	}

	f.mgr.SetState(viewport.State{Left: 0, Right: 59})
	fr = f.compose()
	assert.Contains(t, layers(fr), LayerBuyLabels)
}

func TestComposeCullsOffscreenLabels(t *testing.T) {
	f := newFixture(t, testLayout())
	f.mgr.SetState(viewport.State{Left: 0, Right: 59})
	fr := f.compose()

	got := layers(fr)
	assert.Contains(t, got, LayerBuyLabels)
	assert.Contains(t, got, LayerSellLabels)
	assert.NotContains(t, got, LayerShortLabels)
	assert.NotContains(t, got, LayerCoverLabels)

	for _, d := range fr.Draws {
		switch d.Layer {
		case LayerSellLabels:
			assert.Equal(t, -24.0, d.LabelOffset)
			assert.Equal(t, "2", d.Labels[0].Text)
		case LayerBuyLabels:
			assert.Equal(t, 6.0, d.LabelOffset)
		}
	}
}

func TestComposeAxes(t *testing.T) {
	f := newFixture(t, testLayout())
	fr := f.compose()
	l := f.mgr.Layout()

	axis := texts(fr, TextAxis)
	// price: int(350/30)+1 = 12 steps, 13 labels
	// volume: int(150/30)+1 = 6 labels
	// datetime: int(900/300)+1 = 4 steps, 5 labels
	require.Len(t, axis, 13+6+5)

	assert.Equal(t, []string{"99.00"}, axis[0].Lines)
	assert.Equal(t, []string{"102.00"}, axis[12].Lines)
	assert.Equal(t, l.Price.Right(), axis[0].Pos.X)
	assert.InDelta(t, l.Price.Bottom()-8, axis[0].Pos.Y, 1e-9)

	assert.Equal(t, []string{"0"}, axis[13].Lines)

	dates := axis[19:]
	assert.Equal(t, []string{"2024-01-02", "09:30"}, dates[0].Lines)
	assert.Equal(t, []string{"2024-01-02", "09:55"}, dates[1].Lines)
	assert.Equal(t, []string{"2024-01-02", "11:09"}, dates[4].Lines)
	assert.InDelta(t, l.Volume.X-30, dates[0].Pos.X, 1e-9)
}

func TestComposeLegend(t *testing.T) {
	f := newFixture(t, testLayout())
	fr := f.compose()

	assert.Len(t, texts(fr, TextLegendProfit), 1)
	assert.Len(t, texts(fr, TextLegendLoss), 1)
	long := texts(fr, TextLegendLong)
	require.Len(t, long, 2)
	assert.Equal(t, 600.0-70+10+20, long[0].Pos.Y)
	assert.Equal(t, 10.0, long[0].Pos.X)
	assert.Equal(t, 220.0, long[1].Pos.X)
}

func TestComposeCursor(t *testing.T) {
	f := newFixture(t, testLayout())

	fr := f.compose()
	assert.NotContains(t, layers(fr), LayerCursorLine)
	assert.Empty(t, texts(fr, TextInfo))

	// 9 units per bar: x=50 is bar 5, y=100 is inside the price area
	f.mgr.PointerMove(50, 100)
	fr = f.compose()

	got := layers(fr)
	assert.Equal(t, []Layer{LayerCursorLine, LayerCursorLabel, LayerCursorLine, LayerCursorLabel, LayerInfoBox}, got[len(got)-5:])

	cursor := texts(fr, TextCursor)
	require.Len(t, cursor, 2)
	assert.Equal(t, []string{"2024-01-02", "09:35"}, cursor[0].Lines)

	info := texts(fr, TextInfo)
	require.Len(t, info, 1)
	assert.Equal(t, []string{
		"Date", "2024-01-02",
		"Time", "09:35",
		"Open", "101",
		"High", "102",
		"Low", "99",
		"Close", "100",
		"Volume", "15",
	}, info[0].Lines)
	assert.Equal(t, f.mgr.Layout().InfoBox(false).X, info[0].Pos.X)
}

func TestComposeCursorVolume(t *testing.T) {
	f := newFixture(t, testLayout())
	f.mgr.PointerMove(500, 430)
	fr := f.compose()

	cursor := texts(fr, TextCursor)
	require.Len(t, cursor, 2)
	// 430 is halfway up the 355..505 volume area
	assert.Equal(t, []string{"55"}, cursor[1].Lines)
}
