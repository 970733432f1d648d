/*
Command chart opens the candlestick chart in the terminal.

It loads the bar history and execution log from the data directory, matches
the executions into trade pairs and shows bars, volume and trades with
mouse pan, wheel zoom and an inspection cursor.

Usage:

	chart -dir ~/vnpyrs -tz Asia/Shanghai

Every flag falls back to the matching KLINE_* environment variable.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zappabad/klinechart/internal/config"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/geometry"
	"github.com/zappabad/klinechart/internal/matcher"
	"github.com/zappabad/klinechart/tui"
	"github.com/zappabad/klinechart/tui/panels"
)

func main() {
	cfg := config.FromEnv()
	flag.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "directory holding the data files")
	flag.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "bar history file")
	flag.StringVar(&cfg.TradesFile, "trades", cfg.TradesFile, "execution log file")
	flag.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone of the stored timestamps")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (the terminal is taken by the chart)")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("chart failed")
	}
}

// run loads the data and blocks until the chart exits. The log file is
// opened only once loading has succeeded and is closed before run returns.
func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}

	store, err := dataset.Load(cfg.HistoryPath(), cfg.TradesPath(), loc)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	pairs, inv := matcher.MatchWithInventory(store.Executions())
	geom, err := geometry.Build(store, pairs)
	if err != nil {
		return fmt.Errorf("build chart geometry: %w", err)
	}

	// the alt screen owns stderr while the program runs
	logger, closer, err := cfg.Logger(nil)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	logger.Info().
		Int("bars", store.BarCount()).
		Int("executions", len(store.Executions())).
		Int("pairs", len(pairs)).
		Float64("open_long", inv.Long).
		Float64("open_short", inv.Short).
		Msg("data loaded")

	model := tui.NewModel(store, pairs, geom, cfg.Apply(panels.TerminalRender()), logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("chart stopped")
		return fmt.Errorf("run chart: %w", err)
	}
	logger.Info().Msg("chart closed")
	return nil
}
