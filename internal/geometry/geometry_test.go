package geometry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/matcher"
)

var t0 = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func minute(i int) time.Time { return t0.Add(time.Duration(i) * time.Minute) }

func testBars() []dataset.Bar {
	return []dataset.Bar{
		{Datetime: minute(0), Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},  // up
		{Datetime: minute(1), Open: 11, High: 11.5, Low: 8, Close: 9, Volume: 200}, // down
		{Datetime: minute(2), Open: 9, High: 10, Low: 8.5, Close: 9, Volume: 50},   // flat
		{Datetime: minute(3), Open: 9, High: 14, Low: 9, Close: 13, Volume: 300},   // up
	}
}

func testStore(t *testing.T) *dataset.Store {
	t.Helper()
	store, err := dataset.NewStore(testBars(), nil)
	require.NoError(t, err)
	return store
}

func TestClassify(t *testing.T) {
	bars := testBars()
	assert.Equal(t, ClassUp, Classify(bars[0]))
	assert.Equal(t, ClassDown, Classify(bars[1]))
	assert.Equal(t, ClassFlat, Classify(bars[2]))
}

func TestBuildCandles(t *testing.T) {
	c := BuildCandles(testBars())

	require.Len(t, c.Up, 2*12)
	require.Len(t, c.Down, 6)
	require.Len(t, c.DownWick, 2)
	require.Len(t, c.Flat, 4)

	// first up bar: top edge at close, wick from high to close
	assert.Equal(t, Vertex{-0.4, 11}, c.Up[0])
	assert.Equal(t, Vertex{0.4, 11}, c.Up[1])
	assert.Equal(t, Vertex{0, 12}, c.Up[8])
	assert.Equal(t, Vertex{0, 11}, c.Up[9])
	assert.Equal(t, Vertex{0, 9}, c.Up[10])
	assert.Equal(t, Vertex{0, 10}, c.Up[11])

	// down body spans close..open at x=1
	for _, v := range c.Down {
		assert.InDelta(t, 1, v.X, HalfWidth+1e-6)
		assert.True(t, v.Y == 9 || v.Y == 11)
	}
	assert.Equal(t, []Vertex{{1, 11.5}, {1, 8}}, c.DownWick)

	assert.Equal(t, []Vertex{{1.6, 9}, {2.4, 9}, {2, 10}, {2, 8.5}}, c.Flat)
}

func TestBuildVolumes(t *testing.T) {
	v := BuildVolumes(testBars())

	require.Len(t, v.Up, 2*8)
	require.Len(t, v.Down, 6)
	require.Len(t, v.Flat, 8)

	for _, p := range v.Down {
		assert.True(t, p.Y == 0 || p.Y == 200)
	}
	assert.Equal(t, Vertex{1.6, 50}, v.Flat[0])
	assert.Equal(t, Vertex{2.4, 0}, v.Flat[3])
}

func TestBuildTradeMarks(t *testing.T) {
	store := testStore(t)
	pairs := []matcher.TradePair{
		{OpenDatetime: minute(0), OpenPrice: 10, CloseDatetime: minute(3), ClosePrice: 13, Direction: dataset.DirectionLong, Volume: 2},
		{OpenDatetime: minute(1), OpenPrice: 10, CloseDatetime: minute(2), ClosePrice: 9.5, Direction: dataset.DirectionShort, Volume: 0.5},
		{OpenDatetime: minute(1), OpenPrice: 10, CloseDatetime: minute(3), ClosePrice: 12, Direction: dataset.DirectionShort, Volume: 1},
	}

	tm, err := BuildTradeMarks(store, pairs)
	require.NoError(t, err)

	assert.Equal(t, []PairIndex{{0, 3}, {1, 2}, {1, 3}}, tm.Pairs)
	assert.Equal(t, []Vertex{{0, 10}, {3, 13}, {1, 10}, {2, 9.5}}, tm.Profit)
	assert.Equal(t, []Vertex{{1, 10}, {3, 12}}, tm.Loss)

	// long: buy at open bar low, sell at close bar high
	assert.Equal(t, []Vertex{{0, 9}, {0, 9}, {0, 9}}, tm.Buy)
	assert.Equal(t, []Vertex{{3, 14}, {3, 14}, {3, 14}}, tm.Sell)
	// short: short at open bar high, cover at close bar low
	require.Len(t, tm.Short, 2*MarkerVertices)
	assert.Equal(t, Vertex{1, 11.5}, tm.Short[0])
	require.Len(t, tm.Cover, 2*MarkerVertices)
	assert.Equal(t, Vertex{2, 8.5}, tm.Cover[0])
	assert.Equal(t, Vertex{3, 9}, tm.Cover[3])

	require.Len(t, tm.BuyLabels, 1)
	assert.Equal(t, "2", tm.BuyLabels[0].Text)
	assert.Equal(t, "0.5", tm.ShortLabels[0].Text)
	assert.Equal(t, "1", tm.CoverLabels[1].Text)
}

func TestBuildTradeMarksNotFound(t *testing.T) {
	store := testStore(t)
	pairs := []matcher.TradePair{
		{OpenDatetime: minute(0), CloseDatetime: minute(0).Add(30 * time.Second), Direction: dataset.DirectionLong, Volume: 1},
	}
	_, err := BuildTradeMarks(store, pairs)
	require.ErrorIs(t, err, ErrDatetimeNotFound)
}

func TestBuildTradeMarksOutOfOrder(t *testing.T) {
	store := testStore(t)
	pairs := []matcher.TradePair{
		{OpenDatetime: minute(2), OpenPrice: 9, CloseDatetime: minute(3), ClosePrice: 13, Direction: dataset.DirectionLong, Volume: 1},
		// opens before the previous pair; the forward scan alone would miss it
		{OpenDatetime: minute(0), OpenPrice: 10, CloseDatetime: minute(1), ClosePrice: 9, Direction: dataset.DirectionLong, Volume: 1},
	}
	tm, err := BuildTradeMarks(store, pairs)
	require.NoError(t, err)
	assert.Equal(t, []PairIndex{{2, 3}, {0, 1}}, tm.Pairs)
}

func TestBuild(t *testing.T) {
	store := testStore(t)
	g, err := Build(store, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, g.Candles.Up)
	assert.NotEmpty(t, g.Volumes.Down)
	assert.Empty(t, g.Trades.Profit)
}
