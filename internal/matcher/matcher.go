// Package matcher pairs opening and closing executions from a trade log
// into closed trades using FIFO inventory matching.
package matcher

import (
	"time"

	"github.com/zappabad/klinechart/internal/dataset"
)

// Epsilon absorbs floating point residue left by repeated volume subtraction.
const Epsilon = 1e-10

// TradePair is one closed trade: an opening execution (or part of one)
// matched against a later execution of the opposite direction.
type TradePair struct {
	OpenDatetime  time.Time
	OpenPrice     float64
	CloseDatetime time.Time
	ClosePrice    float64
	Direction     dataset.Direction // direction of the opening leg
	Volume        float64
}

// Profitable reports whether the pair closed at or better than it opened.
func (p TradePair) Profitable() bool {
	switch p.Direction {
	case dataset.DirectionLong:
		return p.ClosePrice >= p.OpenPrice
	case dataset.DirectionShort:
		return p.ClosePrice <= p.OpenPrice
	default:
		return false
	}
}

// Inventory is the volume still open at the end of the log, per direction.
type Inventory struct {
	Long      float64
	Short     float64
	LongLots  int
	ShortLots int
}

// Match converts executions, in arrival order, into trade pairs.
func Match(executions []dataset.Execution) []TradePair {
	pairs, _ := MatchWithInventory(executions)
	return pairs
}

// MatchWithInventory is Match that also reports unmatched open volume.
// Pairs are emitted in the arrival order of the closing executions.
func MatchWithInventory(executions []dataset.Execution) ([]TradePair, Inventory) {
	var long, short lotQueue
	queueFor := func(d dataset.Direction) *lotQueue {
		if d == dataset.DirectionLong {
			return &long
		}
		return &short
	}

	pairs := make([]TradePair, 0, len(executions)/2)
	for _, e := range executions {
		same := queueFor(e.Direction)
		opposite := queueFor(e.Direction.Opposite())

		remaining := e.Volume
		for remaining > Epsilon && !opposite.empty() {
			o := opposite.peek()
			matched := min(o.remaining, remaining)

			pairs = append(pairs, TradePair{
				OpenDatetime:  o.exec.Datetime,
				OpenPrice:     o.exec.Price,
				CloseDatetime: e.Datetime,
				ClosePrice:    e.Price,
				Direction:     o.exec.Direction,
				Volume:        matched,
			})

			o.remaining -= matched
			opposite.total -= matched
			remaining -= matched
			if o.remaining <= Epsilon {
				opposite.total -= o.remaining
				opposite.popHead()
			}
		}

		if remaining > Epsilon {
			same.push(&openLot{exec: e, remaining: remaining})
		}
	}

	inv := Inventory{
		Long:      long.total,
		Short:     short.total,
		LongLots:  long.len,
		ShortLots: short.len,
	}
	return pairs, inv
}
