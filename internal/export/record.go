// Package export writes matched trade pairs to disk for analysis outside
// the chart.
package export

import (
	"time"

	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/matcher"
)

// Record is one trade pair as stored on disk. Times are local wall-clock
// seconds, matching the binary input files.
type Record struct {
	OpenTime   int64   `json:"open_time" parquet:"open_time"`
	OpenPrice  float64 `json:"open_price" parquet:"open_price"`
	CloseTime  int64   `json:"close_time" parquet:"close_time"`
	ClosePrice float64 `json:"close_price" parquet:"close_price"`
	Direction  string  `json:"direction" parquet:"direction,dict"`
	Volume     float64 `json:"volume" parquet:"volume"`
	Profitable bool    `json:"profitable" parquet:"profitable"`
	PnL        float64 `json:"pnl" parquet:"pnl"`
}

// Records converts pairs in order; loc is the zone the datetimes were
// decoded with.
func Records(pairs []matcher.TradePair, loc *time.Location) []Record {
	out := make([]Record, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Record{
			OpenTime:   dataset.UnixFromLocal(p.OpenDatetime, loc),
			OpenPrice:  p.OpenPrice,
			CloseTime:  dataset.UnixFromLocal(p.CloseDatetime, loc),
			ClosePrice: p.ClosePrice,
			Direction:  p.Direction.String(),
			Volume:     p.Volume,
			Profitable: p.Profitable(),
			PnL:        pnl(p),
		})
	}
	return out
}

func pnl(p matcher.TradePair) float64 {
	d := p.ClosePrice - p.OpenPrice
	if p.Direction == dataset.DirectionShort {
		d = -d
	}
	return d * p.Volume
}
