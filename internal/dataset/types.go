package dataset

import "time"

// Direction is the side of an execution: long (buy) or short (sell).
type Direction uint8

const (
	DirectionLong  Direction = 1
	DirectionShort Direction = 2
)

func (d Direction) String() string {
	switch d {
	case DirectionLong:
		return "LONG"
	case DirectionShort:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	if d == DirectionLong {
		return DirectionShort
	}
	return DirectionLong
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool { return d == DirectionLong || d == DirectionShort }

// Bar is one OHLCV candlestick. Its position in the history is its x coordinate.
type Bar struct {
	Datetime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// Execution is one raw fill from the trade log.
type Execution struct {
	Datetime  time.Time
	Direction Direction
	Price     float64
	Volume    float64
}

// LocalDatetime converts a unix timestamp into a wall-clock value in loc,
// truncated to the second. The result carries no zone so two timestamps
// with the same local date and time compare equal.
func LocalDatetime(unix int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(unix, 0).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// UnixFromLocal is the inverse of LocalDatetime for unambiguous wall-clock values.
func UnixFromLocal(dt time.Time, loc *time.Location) int64 {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(dt.Year(), dt.Month(), dt.Day(), dt.Hour(), dt.Minute(), dt.Second(), 0, loc).Unix()
}
