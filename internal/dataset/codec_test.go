package dataset

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBars() []Bar {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []Bar{
		{Datetime: t0, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Datetime: t0.Add(time.Minute), Open: 11, High: 11.5, Low: 10, Close: 10.5, Volume: 250},
		{Datetime: t0.Add(2 * time.Minute), Open: 10.5, High: 13, Low: 10.5, Close: 10.5, Volume: 80},
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	bars := sampleBars()

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, bars, time.UTC))
	require.Equal(t, headerSize+len(bars)*historyRecordSize, buf.Len())

	got, err := ReadHistory(&buf, time.UTC)
	require.NoError(t, err)
	require.Equal(t, bars, got)
}

func TestTradesRoundTrip(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	execs := []Execution{
		{Datetime: t0, Direction: DirectionLong, Price: 100, Volume: 10},
		{Datetime: t0.Add(time.Minute), Direction: DirectionShort, Price: 110, Volume: 6},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, execs, time.UTC))
	require.Equal(t, headerSize+len(execs)*tradeRecordSize, buf.Len())

	got, err := ReadTrades(&buf, time.UTC)
	require.NoError(t, err)
	require.Equal(t, execs, got)
}

func TestReadRejectsVersion(t *testing.T) {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint64(hdr[0:8], 1)

	_, err := ReadHistory(bytes.NewReader(hdr[:]), time.UTC)
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = ReadTrades(bytes.NewReader(hdr[:]), time.UTC)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestReadCorrupt(t *testing.T) {
	var full bytes.Buffer
	require.NoError(t, WriteHistory(&full, sampleBars(), time.UTC))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"short header", full.Bytes()[:10]},
		{"truncated record", full.Bytes()[:headerSize+historyRecordSize+7]},
		{"trailing bytes", append(bytes.Clone(full.Bytes()), 1, 2, 3, 4, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHistory(bytes.NewReader(tt.data), time.UTC)
			require.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestReadTradesTrailingBytes(t *testing.T) {
	execs := []Execution{
		{Datetime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Direction: DirectionLong, Price: 100, Volume: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, execs, time.UTC))
	buf.Write([]byte{0, 0, 0})

	_, err := ReadTrades(&buf, time.UTC)
	require.ErrorIs(t, err, ErrCorruptData)
	assert.Contains(t, err.Error(), "3 trailing bytes")
}

func TestReadTradesBadDirection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, []Execution{
		{Datetime: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Direction: DirectionLong, Price: 1, Volume: 1},
	}, time.UTC))
	data := buf.Bytes()
	data[headerSize+8] = 7

	_, err := ReadTrades(bytes.NewReader(data), time.UTC)
	require.ErrorIs(t, err, ErrCorruptData)
}

func TestLocalDatetimeEquality(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	dt := LocalDatetime(1700000000, loc)

	assert.Equal(t, time.UTC, dt.Location())
	assert.Equal(t, 0, dt.Nanosecond())
	assert.Equal(t, int64(1700000000), UnixFromLocal(dt, loc))
	assert.Equal(t, dt, LocalDatetime(1700000000, loc))
	assert.Equal(t, 6, dt.Hour()) // 22:13:20 UTC
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	history := filepath.Join(dir, "history.dat")
	trades := filepath.Join(dir, "trades.dat")

	writeFile := func(path string, fn func(*bytes.Buffer) error) {
		var buf bytes.Buffer
		require.NoError(t, fn(&buf))
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	}

	t.Run("ok", func(t *testing.T) {
		writeFile(history, func(b *bytes.Buffer) error { return WriteHistory(b, sampleBars(), time.UTC) })
		writeFile(trades, func(b *bytes.Buffer) error { return WriteTrades(b, nil, time.UTC) })

		store, err := Load(history, trades, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 3, store.BarCount())
		assert.Equal(t, 2, store.LastIndex())
		assert.Empty(t, store.Executions())
	})

	t.Run("empty history", func(t *testing.T) {
		writeFile(history, func(b *bytes.Buffer) error { return WriteHistory(b, nil, time.UTC) })

		_, err := Load(history, trades, time.UTC)
		require.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.dat"), trades, time.UTC)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
