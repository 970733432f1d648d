/*
Command gendata writes a synthetic bar history and execution log in the
chart's binary format, for trying the chart without real data.

Usage:

	gendata -dir ./data -bars 5000 -trades 300
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zappabad/klinechart/internal/config"
	"github.com/zappabad/klinechart/internal/dataset"
)

func main() {
	cfg := config.FromEnv()
	sample := dataset.DefaultSampleConfig()
	flag.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "output directory")
	flag.IntVar(&sample.Bars, "bars", sample.Bars, "number of bars")
	flag.IntVar(&sample.Trades, "trades", sample.Trades, "number of executions")
	flag.Float64Var(&sample.BasePrice, "price", sample.BasePrice, "starting price")
	flag.Int64Var(&sample.Seed, "seed", sample.Seed, "random seed")
	flag.DurationVar(&sample.Interval, "interval", sample.Interval, "bar interval")
	flag.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone of the stored timestamps")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data directory")
	}

	bars, execs := dataset.GenerateSample(sample)

	if err := writeFile(cfg.HistoryPath(), func(f *os.File) error { return dataset.WriteHistory(f, bars, loc) }); err != nil {
		log.Fatal().Err(err).Msg("failed to write history")
	}
	if err := writeFile(cfg.TradesPath(), func(f *os.File) error { return dataset.WriteTrades(f, execs, loc) }); err != nil {
		log.Fatal().Err(err).Msg("failed to write trades")
	}

	log.Info().
		Int("bars", len(bars)).
		Int("executions", len(execs)).
		Str("dir", cfg.DataDir).
		Msg("sample data written")
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
