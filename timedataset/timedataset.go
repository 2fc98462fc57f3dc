// Package timedataset provides the univariate time series input type consumed
// by the preprocessor and forecaster along with simulation helpers for tests.
package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoSeriesData    = errors.New("no series observations")
	ErrNonPositiveFreq = errors.New("series frequency must be positive")
)

// Series represents a univariate time series as an ordered slice of
// observations starting at Start with a fixed Freq between points.
type Series struct {
	Start  time.Time     `json:"start"`
	Freq   time.Duration `json:"freq"`
	Target []float64     `json:"target"`
}

// NewSeries returns a Series copying the input observations.
func NewSeries(start time.Time, freq time.Duration, target []float64) (*Series, error) {
	if len(target) == 0 {
		return nil, ErrNoSeriesData
	}
	if freq <= 0 {
		return nil, fmt.Errorf("got frequency of %s, %w", freq, ErrNonPositiveFreq)
	}

	y := make([]float64, len(target))
	copy(y, target)
	return &Series{
		Start:  start,
		Freq:   freq,
		Target: y,
	}, nil
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Target)
}

// TimeAt returns the timestamp of the i-th observation. Indexes beyond the
// series bounds extrapolate with the series frequency so callers can derive
// forecast horizon timestamps.
func (s *Series) TimeAt(i int) time.Time {
	return s.Start.Add(time.Duration(i) * s.Freq)
}

// EndTime returns the timestamp of the last observation.
func (s *Series) EndTime() time.Time {
	return s.TimeAt(s.Len() - 1)
}

func (s *Series) Copy() *Series {
	if s == nil {
		return nil
	}
	y := make([]float64, len(s.Target))
	copy(y, s.Target)
	return &Series{
		Start:  s.Start,
		Freq:   s.Freq,
		Target: y,
	}
}

// TrimLast returns a copy of the series with the last n observations removed.
// A non-positive n returns a plain copy and trimming beyond the series length
// leaves an empty target.
func (s *Series) TrimLast(n int) *Series {
	out := s.Copy()
	if n <= 0 {
		return out
	}
	if n > len(out.Target) {
		n = len(out.Target)
	}
	out.Target = out.Target[: len(out.Target)-n : len(out.Target)-n]
	return out
}
