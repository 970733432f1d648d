// Package config gathers the settings shared by the binaries: where the
// dataset lives, how to read its timestamps, and where to log.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/zappabad/klinechart/internal/dataset"
	"github.com/zappabad/klinechart/internal/render"
)

// Config holds the runtime settings.
type Config struct {
	DataDir     string `validate:"required"`
	HistoryFile string `validate:"required"`
	TradesFile  string `validate:"required"`

	// Timezone used to turn stored unix seconds into wall-clock datetimes.
	// "Local" is the host zone.
	Timezone string `validate:"required,timezone"`

	LogLevel string `validate:"oneof=trace debug info warn error disabled"`
	// LogFile receives log output; empty means stderr for the headless
	// binaries and no logging for the chart.
	LogFile string

	PriceDecimals  int32 `validate:"gte=0,lte=10"`
	VolumeDecimals int32 `validate:"gte=0,lte=10"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		DataDir:     dataset.DefaultDir(),
		HistoryFile: "history.dat",
		TradesFile:  "trades.dat",
		Timezone:    "Local",
		LogLevel:    "info",

		PriceDecimals:  2,
		VolumeDecimals: 0,
	}
}

// FromEnv returns DefaultConfig with KLINE_* environment overrides applied.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.DataDir = getEnv("KLINE_DATA_DIR", cfg.DataDir)
	cfg.HistoryFile = getEnv("KLINE_HISTORY_FILE", cfg.HistoryFile)
	cfg.TradesFile = getEnv("KLINE_TRADES_FILE", cfg.TradesFile)
	cfg.Timezone = getEnv("KLINE_TIMEZONE", cfg.Timezone)
	cfg.LogLevel = strings.ToLower(getEnv("KLINE_LOG_LEVEL", cfg.LogLevel))
	cfg.LogFile = getEnv("KLINE_LOG_FILE", cfg.LogFile)
	cfg.PriceDecimals = getEnvInt32("KLINE_PRICE_DECIMALS", cfg.PriceDecimals)
	cfg.VolumeDecimals = getEnvInt32("KLINE_VOLUME_DECIMALS", cfg.VolumeDecimals)
	return cfg
}

func getEnvInt32(key string, def int32) int32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Apply copies the display settings onto a render config.
func (c Config) Apply(r render.Config) render.Config {
	r.PriceDecimals = c.PriceDecimals
	r.VolumeDecimals = c.VolumeDecimals
	return r
}

// HistoryPath resolves the history file against DataDir unless it is
// already absolute.
func (c Config) HistoryPath() string { return c.resolve(c.HistoryFile) }

// TradesPath resolves the trades file the same way.
func (c Config) TradesPath() string { return c.resolve(c.TradesFile) }

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Location loads the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level parses LogLevel.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger builds a logger at the configured level. Output goes to LogFile
// when set, otherwise to fallback; a nil fallback disables logging. The
// returned closer releases the log file.
func (c Config) Logger(fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}

	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		return zerolog.Nop(), closer, nil
	}
	if f, ok := out.(*os.File); ok && (f == os.Stderr || f == os.Stdout) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(c.Level()).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
