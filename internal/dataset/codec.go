package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// FormatVersion is the only file version this package understands.
const FormatVersion uint64 = 0

const (
	headerSize        = 16
	historyRecordSize = 48
	tradeRecordSize   = 25

	// upper bound on slice preallocation taken from an untrusted header
	maxPrealloc = 1 << 20
)

type historyRecord struct {
	Timestamp uint64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

type tradeRecord struct {
	Timestamp uint64
	Direction uint8
	Price     float64
	Volume    float64
}

func readHeader(r io.Reader) (uint64, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("header: %w", corrupt(err))
	}
	if v := binary.LittleEndian.Uint64(hdr[0:8]); v != FormatVersion {
		return 0, fmt.Errorf("version %d: %w", v, ErrUnsupportedVersion)
	}
	return binary.LittleEndian.Uint64(hdr[8:16]), nil
}

func corrupt(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated input", ErrCorruptData)
	}
	return err
}

// trailing fails when anything follows the last declared record.
func trailing(br *bufio.Reader) error {
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	n, err := io.Copy(io.Discard, br)
	if err != nil {
		return err
	}
	return fmt.Errorf("%d trailing bytes: %w", n, ErrCorruptData)
}

// ReadHistory decodes a history file. Timestamps are converted into wall-clock
// values in loc (see LocalDatetime).
func ReadHistory(r io.Reader, loc *time.Location) ([]Bar, error) {
	br := bufio.NewReader(r)
	count, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	bars := make([]Bar, 0, min(count, maxPrealloc))

	var rec [historyRecordSize]byte
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("bar %d of %d: %w", i, count, corrupt(err))
		}
		h := decodeHistory(rec[:])
		bars = append(bars, Bar{
			Datetime: LocalDatetime(int64(h.Timestamp), loc),
			Open:     h.Open,
			High:     h.High,
			Low:      h.Low,
			Close:    h.Close,
			Volume:   h.Volume,
		})
	}
	if err := trailing(br); err != nil {
		return nil, fmt.Errorf("history after %d bars: %w", count, err)
	}
	return bars, nil
}

// ReadTrades decodes a trades file.
func ReadTrades(r io.Reader, loc *time.Location) ([]Execution, error) {
	br := bufio.NewReader(r)
	count, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	executions := make([]Execution, 0, min(count, maxPrealloc))

	var rec [tradeRecordSize]byte
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("trade %d of %d: %w", i, count, corrupt(err))
		}
		t := decodeTrade(rec[:])
		dir := Direction(t.Direction)
		if !dir.Valid() {
			return nil, fmt.Errorf("trade %d: direction byte %d: %w", i, t.Direction, ErrCorruptData)
		}
		executions = append(executions, Execution{
			Datetime:  LocalDatetime(int64(t.Timestamp), loc),
			Direction: dir,
			Price:     t.Price,
			Volume:    t.Volume,
		})
	}
	if err := trailing(br); err != nil {
		return nil, fmt.Errorf("trades after %d executions: %w", count, err)
	}
	return executions, nil
}

func decodeHistory(b []byte) historyRecord {
	le := binary.LittleEndian
	return historyRecord{
		Timestamp: le.Uint64(b[0:8]),
		Open:      math.Float64frombits(le.Uint64(b[8:16])),
		High:      math.Float64frombits(le.Uint64(b[16:24])),
		Low:       math.Float64frombits(le.Uint64(b[24:32])),
		Close:     math.Float64frombits(le.Uint64(b[32:40])),
		Volume:    math.Float64frombits(le.Uint64(b[40:48])),
	}
}

func decodeTrade(b []byte) tradeRecord {
	le := binary.LittleEndian
	return tradeRecord{
		Timestamp: le.Uint64(b[0:8]),
		Direction: b[8],
		Price:     math.Float64frombits(le.Uint64(b[9:17])),
		Volume:    math.Float64frombits(le.Uint64(b[17:25])),
	}
}

func writeHeader(w io.Writer, count int) error {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint64(hdr[0:8], FormatVersion)
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(count))
	_, err := w.Write(hdr[:])
	return err
}

// WriteHistory encodes bars in the history file layout. Datetimes are
// interpreted as wall-clock values in loc.
func WriteHistory(w io.Writer, bars []Bar, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, len(bars)); err != nil {
		return err
	}
	le := binary.LittleEndian
	var rec [historyRecordSize]byte
	for _, b := range bars {
		le.PutUint64(rec[0:8], uint64(UnixFromLocal(b.Datetime, loc)))
		le.PutUint64(rec[8:16], math.Float64bits(b.Open))
		le.PutUint64(rec[16:24], math.Float64bits(b.High))
		le.PutUint64(rec[24:32], math.Float64bits(b.Low))
		le.PutUint64(rec[32:40], math.Float64bits(b.Close))
		le.PutUint64(rec[40:48], math.Float64bits(b.Volume))
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTrades encodes executions in the trades file layout.
func WriteTrades(w io.Writer, executions []Execution, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, len(executions)); err != nil {
		return err
	}
	le := binary.LittleEndian
	var rec [tradeRecordSize]byte
	for _, e := range executions {
		le.PutUint64(rec[0:8], uint64(UnixFromLocal(e.Datetime, loc)))
		rec[8] = byte(e.Direction)
		le.PutUint64(rec[9:17], math.Float64bits(e.Price))
		le.PutUint64(rec[17:25], math.Float64bits(e.Volume))
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
