/*
Command pairs matches the execution log into trade pairs and writes them
as JSON or Parquet without opening the chart.

Usage:

	pairs -format parquet -out pairs.parquet
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
	"github.com/zappabad/klinechart/internal/export"
	"github.com/zappabad/klinechart/internal/matcher"
)

func main() {
	cfg := config.FromEnv()
	format := flag.String("format", "json", "output format: json or parquet")
	out := flag.String("out", "", "output file (default pairs.<ext> in the data directory)")
	flag.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "directory holding the data files")
	flag.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "bar history file")
	flag.StringVar(&cfg.TradesFile, "trades", cfg.TradesFile, "execution log file")
	flag.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone of the stored timestamps")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	logger, closer, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open log")
	}

	path, err := run(cfg, *format, *out, logger)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.DataDir).Msg("export failed")
		closer.Close()
		os.Exit(1)
	}
	logger.Info().Str("path", path).Msg("pairs written")
	closer.Close()
}

// run matches the executions in the data directory and writes the pairs,
// returning the output path.
func run(cfg config.Config, format, out string, logger zerolog.Logger) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}
	saver, err := export.NewSaver(format)
	if err != nil {
		return "", err
	}
	loc, err := cfg.Location()
	if err != nil {
		return "", fmt.Errorf("invalid time zone: %w", err)
	}

	store, err := dataset.Load(cfg.HistoryPath(), cfg.TradesPath(), loc)
	if err != nil {
		return "", fmt.Errorf("load data: %w", err)
	}

	pairs, inv := matcher.MatchWithInventory(store.Executions())
	if inv.Long > matcher.Epsilon || inv.Short > matcher.Epsilon {
		logger.Warn().
			Float64("long", inv.Long).
			Float64("short", inv.Short).
			Msg("open inventory left unmatched")
	}

	path := out
	if path == "" {
		path = filepath.Join(cfg.DataDir, "pairs."+saver.Extension())
	}
	if err := saver.Save(export.Records(pairs, loc), path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info().
		Int("executions", len(store.Executions())).
		Int("pairs", len(pairs)).
		Msg("pairs matched")
	return path, nil
}
