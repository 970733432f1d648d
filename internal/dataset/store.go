package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported dataset version")
	ErrCorruptData        = errors.New("corrupt dataset")
	ErrEmptyDataset       = errors.New("empty dataset")
)

// Store holds the immutable history and trade log for one session.
// It is built once at startup and only read afterwards.
type Store struct {
	bars       []Bar
	executions []Execution
}

// NewStore wraps already decoded data. At least one bar is required.
func NewStore(bars []Bar, executions []Execution) (*Store, error) {
	if len(bars) == 0 {
		return nil, ErrEmptyDataset
	}
	return &Store{bars: bars, executions: executions}, nil
}

// Load reads the history and trades files and builds a Store.
func Load(historyPath, tradesPath string, loc *time.Location) (*Store, error) {
	hf, err := os.Open(historyPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", historyPath, err)
	}
	defer hf.Close()

	bars, err := ReadHistory(hf, loc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", historyPath, err)
	}

	tf, err := os.Open(tradesPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", tradesPath, err)
	}
	defer tf.Close()

	executions, err := ReadTrades(tf, loc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tradesPath, err)
	}

	store, err := NewStore(bars, executions)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", historyPath, err)
	}
	return store, nil
}

// DefaultDir returns the directory the dataset files live in when none is
// configured: $HOME/vnpyrs, or %USERPROFILE%\vnpyrs on Windows.
func DefaultDir() string {
	home := os.Getenv("HOME")
	if runtime.GOOS == "windows" {
		if p := os.Getenv("USERPROFILE"); p != "" {
			home = p
		}
	}
	if home == "" {
		home = "."
	}
	return filepath.Join(home, "vnpyrs")
}

// BarCount returns the number of bars in the history.
func (s *Store) BarCount() int { return len(s.bars) }

// LastIndex returns the index of the most recent bar.
func (s *Store) LastIndex() int { return len(s.bars) - 1 }

// Bar returns the bar at index i.
func (s *Store) Bar(i int) Bar { return s.bars[i] }

// Bars returns the full history. Callers must not modify it.
func (s *Store) Bars() []Bar { return s.bars }

// Executions returns the raw trade log in arrival order. Callers must not modify it.
func (s *Store) Executions() []Execution { return s.executions }

// PriceRange returns the lowest low and highest high over [left, right].
func (s *Store) PriceRange(left, right int) (float64, float64) {
	left, right = s.clampRange(left, right)
	minPrice := s.bars[left].Low
	maxPrice := s.bars[left].High
	for _, b := range s.bars[left+1 : right+1] {
		if b.Low < minPrice {
			minPrice = b.Low
		}
		if b.High > maxPrice {
			maxPrice = b.High
		}
	}
	return minPrice, maxPrice
}

// MaxVolume returns the largest volume over [left, right].
func (s *Store) MaxVolume(left, right int) float64 {
	left, right = s.clampRange(left, right)
	maxVolume := s.bars[left].Volume
	for _, b := range s.bars[left+1 : right+1] {
		if b.Volume > maxVolume {
			maxVolume = b.Volume
		}
	}
	return maxVolume
}

func (s *Store) clampRange(left, right int) (int, int) {
	last := len(s.bars) - 1
	left = max(0, min(left, last))
	right = max(left, min(right, last))
	return left, right
}
