package preprocess

import (
	"errors"
	"math"
	"strconv"

	"github.com/treecast/treecast/timedataset"
	"gonum.org/v1/gonum/stat"
)

var ErrLagWindowSize = errors.New("lag window size must be at least 1")

// Featurizer maps a context window starting at a given index of a series to a
// flat feature vector. A negative start index means the lookback extends
// before the series beginning and implementations are expected to pad.
type Featurizer interface {
	Features(s *timedataset.Series, start int) []float64
	Names() []string
	WindowSize() int
}

// LagFeaturizer emits the mean-centered observations of the context window
// followed by the window mean, population standard deviation, and window
// length. Positions before the series start are padded with NaN markers.
type LagFeaturizer struct {
	windowSize int
}

func NewLagFeaturizer(windowSize int) (*LagFeaturizer, error) {
	if windowSize < 1 {
		return nil, ErrLagWindowSize
	}
	return &LagFeaturizer{windowSize: windowSize}, nil
}

func (l *LagFeaturizer) WindowSize() int {
	return l.windowSize
}

func (l *LagFeaturizer) Features(s *timedataset.Series, start int) []float64 {
	end := start + l.windowSize
	var pad int
	if start < 0 {
		pad = -start
		start = 0
	}
	window := s.Target[start:end]

	mean := stat.Mean(window, nil)
	stddev := stat.PopStdDev(window, nil)

	feats := make([]float64, 0, pad+len(window)+3)
	for i := 0; i < pad; i++ {
		feats = append(feats, math.NaN())
	}
	for _, v := range window {
		feats = append(feats, v-mean)
	}
	return append(feats, mean, stddev, float64(len(window)))
}

func (l *LagFeaturizer) Names() []string {
	names := make([]string, 0, l.windowSize+3)
	for i := 0; i < l.windowSize; i++ {
		names = append(names, "lag_"+strconv.Itoa(l.windowSize-i))
	}
	return append(names, "window_mean", "window_std", "window_len")
}
