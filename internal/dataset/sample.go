package dataset

import (
	"math"
	"math/rand"
	"time"
)

// SampleConfig controls GenerateSample.
type SampleConfig struct {
	Start     time.Time
	Interval  time.Duration
	Bars      int
	BasePrice float64
	Trades    int
	Seed      int64
}

// DefaultSampleConfig returns a SampleConfig producing a few days of one-minute bars.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		Start:     time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Interval:  time.Minute,
		Bars:      2000,
		BasePrice: 3500,
		Trades:    120,
		Seed:      69420,
	}
}

// GenerateSample builds a random-walk history and a trade log whose
// executions land exactly on bar datetimes.
func GenerateSample(cfg SampleConfig) ([]Bar, []Execution) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	bars := make([]Bar, 0, cfg.Bars)
	price := cfg.BasePrice

	for i := 0; i < cfg.Bars; i++ {
		open := price
		change := (rng.Float64() - 0.5) * 0.004 * price
		price += change
		closePrice := price
		if i%17 == 0 {
			closePrice = open
		}

		high := math.Max(open, closePrice) + rng.Float64()*math.Abs(change)
		low := math.Min(open, closePrice) - rng.Float64()*math.Abs(change)

		bars = append(bars, Bar{
			Datetime: cfg.Start.Add(time.Duration(i) * cfg.Interval),
			Open:     round2(open),
			High:     round2(high),
			Low:      round2(low),
			Close:    round2(closePrice),
			Volume:   float64(100 + rng.Intn(900)),
		})
	}

	executions := make([]Execution, 0, cfg.Trades)
	if cfg.Bars == 0 {
		return bars, executions
	}
	ix := 0
	for i := 0; i < cfg.Trades; i++ {
		ix += 1 + rng.Intn(max(1, 2*cfg.Bars/max(1, cfg.Trades)))
		if ix >= cfg.Bars {
			break
		}
		b := bars[ix]
		dir := DirectionLong
		if rng.Intn(2) == 1 {
			dir = DirectionShort
		}
		executions = append(executions, Execution{
			Datetime:  b.Datetime,
			Direction: dir,
			Price:     round2(b.Low + rng.Float64()*(b.High-b.Low)),
			Volume:    float64(1 + rng.Intn(5)),
		})
	}
	return bars, executions
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
