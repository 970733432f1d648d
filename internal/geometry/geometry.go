// Package geometry turns bars, volumes and trade pairs into vertex lists in
// data space: x is the bar index, y is price (or volume). The result is built
// once at startup and never modified; only the camera applied to it changes.
package geometry

import (
	"errors"
	"fmt"
	"time"

	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/matcher"
)

// HalfWidth is half of a candle body, in index units.
const HalfWidth = 0.4

// ErrDatetimeNotFound means a trade pair references a datetime that is not
// present in the bar history. The two input files disagree.
var ErrDatetimeNotFound = errors.New("trade datetime not found in history")

// Vertex is a point in data space.
type Vertex struct {
	X, Y float32
}

// Label is text anchored at a data space point.
type Label struct {
	Anchor Vertex
	Text   string
}

// Class is the direction of a single bar.
type Class uint8

const (
	ClassUp Class = iota
	ClassDown
	ClassFlat
)

func (c Class) String() string {
	switch c {
	case ClassUp:
		return "UP"
	case ClassDown:
		return "DOWN"
	case ClassFlat:
		return "FLAT"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the class of b from its open and close.
func Classify(b dataset.Bar) Class {
	switch {
	case b.Close > b.Open:
		return ClassUp
	case b.Close < b.Open:
		return ClassDown
	default:
		return ClassFlat
	}
}

// Geometry holds every static layer of the chart.
type Geometry struct {
	Candles Candles
	Volumes Volumes
	Trades  TradeMarks
}

// Build produces all layers for store and pairs.
func Build(store *dataset.Store, pairs []matcher.TradePair) (*Geometry, error) {
	trades, err := BuildTradeMarks(store, pairs)
	if err != nil {
		return nil, err
	}
	return &Geometry{
		Candles: BuildCandles(store.Bars()),
		Volumes: BuildVolumes(store.Bars()),
		Trades:  trades,
	}, nil
}

func notFound(which string, pair int, dt time.Time) error {
	return fmt.Errorf("pair %d %s %s: %w", pair, which, dt.Format(time.DateTime), ErrDatetimeNotFound)
}
