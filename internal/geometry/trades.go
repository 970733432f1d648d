package geometry

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/matcher"
)

// MarkerVertices is the number of vertices emitted per marker. All three
// sit on the anchor; the marker shader spreads them into an arrow.
const MarkerVertices = 3

// TradeMarks are the trade overlay layers.
//
// Profit and Loss are line lists connecting the open and close of each pair.
// Buy/Sell mark long opens/closes, Short/Cover mark short opens/closes.
// Long opens and short closes sit on the bar low, long closes and short
// opens on the bar high.
type TradeMarks struct {
	Profit []Vertex
	Loss   []Vertex

	Buy   []Vertex
	Sell  []Vertex
	Short []Vertex
	Cover []Vertex

	BuyLabels   []Label
	SellLabels  []Label
	ShortLabels []Label
	CoverLabels []Label

	// Pairs holds the bar indices of each pair, in pair order.
	Pairs []PairIndex
}

// PairIndex locates one trade pair on the x axis.
type PairIndex struct {
	Open  int
	Close int
}

// BuildTradeMarks locates each pair in the history and emits its overlay.
func BuildTradeMarks(store *dataset.Store, pairs []matcher.TradePair) (TradeMarks, error) {
	var tm TradeMarks
	idx := newIndexer(store.Bars())
	tm.Pairs = make([]PairIndex, 0, len(pairs))

	start := 0
	for i, p := range pairs {
		openIx, ok := idx.find(p.OpenDatetime, start)
		if !ok {
			return TradeMarks{}, notFound("open", i, p.OpenDatetime)
		}
		closeIx, ok := idx.find(p.CloseDatetime, start)
		if !ok {
			return TradeMarks{}, notFound("close", i, p.CloseDatetime)
		}
		start = openIx
		tm.Pairs = append(tm.Pairs, PairIndex{Open: openIx, Close: closeIx})

		open := Vertex{float32(openIx), float32(p.OpenPrice)}
		closing := Vertex{float32(closeIx), float32(p.ClosePrice)}
		if p.Profitable() {
			tm.Profit = append(tm.Profit, open, closing)
		} else {
			tm.Loss = append(tm.Loss, open, closing)
		}

		text := decimal.NewFromFloat(p.Volume).String()
		openBar, closeBar := store.Bar(openIx), store.Bar(closeIx)
		if p.Direction == dataset.DirectionLong {
			openAt := Vertex{float32(openIx), float32(openBar.Low)}
			closeAt := Vertex{float32(closeIx), float32(closeBar.High)}
			tm.Buy = appendMarker(tm.Buy, openAt)
			tm.Sell = appendMarker(tm.Sell, closeAt)
			tm.BuyLabels = append(tm.BuyLabels, Label{openAt, text})
			tm.SellLabels = append(tm.SellLabels, Label{closeAt, text})
		} else {
			openAt := Vertex{float32(openIx), float32(openBar.High)}
			closeAt := Vertex{float32(closeIx), float32(closeBar.Low)}
			tm.Short = appendMarker(tm.Short, openAt)
			tm.Cover = appendMarker(tm.Cover, closeAt)
			tm.ShortLabels = append(tm.ShortLabels, Label{openAt, text})
			tm.CoverLabels = append(tm.CoverLabels, Label{closeAt, text})
		}
	}
	return tm, nil
}

func appendMarker(dst []Vertex, at Vertex) []Vertex {
	for i := 0; i < MarkerVertices; i++ {
		dst = append(dst, at)
	}
	return dst
}

// indexer maps datetimes to bar indices. Lookups scan forward from a seed,
// which is linear overall when pairs arrive in open-time order. A miss
// falls back to an exact-match table built on first use, so out of order
// pairs still resolve.
type indexer struct {
	bars  []dataset.Bar
	table map[int64]int
}

func newIndexer(bars []dataset.Bar) *indexer {
	return &indexer{bars: bars}
}

func (x *indexer) find(dt time.Time, start int) (int, bool) {
	for i := max(start, 0); i < len(x.bars); i++ {
		if x.bars[i].Datetime.Equal(dt) {
			return i, true
		}
	}
	if x.table == nil {
		x.table = make(map[int64]int, len(x.bars))
		for i := len(x.bars) - 1; i >= 0; i-- {
			x.table[x.bars[i].Datetime.Unix()] = i
		}
	}
	i, ok := x.table[dt.Unix()]
	return i, ok
}
