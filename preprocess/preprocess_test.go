package preprocess

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treecast/treecast/timedataset"
	"gonum.org/v1/gonum/floats"
)

func newTestSeries(t *testing.T, target []float64) *timedataset.Series {
	t.Helper()
	s, err := timedataset.NewSeries(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute, target)
	require.Nil(t, err)
	return s
}

func rampSeries(t *testing.T, n int) *timedataset.Series {
	t.Helper()
	target := make([]float64, n)
	for i := range target {
		target[i] = float64(i + 1)
	}
	return newTestSeries(t, target)
}

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		expected *Options
		err      error
	}{
		"nil": {nil, NewDefaultOptions(), nil},
		"zero context window": {
			opt: &Options{ForecastHorizon: 1},
			err: ErrContextWindowSize,
		},
		"zero horizon": {
			opt: &Options{ContextWindowSize: 2},
			err: ErrForecastHorizon,
		},
		"negative ignore last": {
			opt: &Options{ContextWindowSize: 2, ForecastHorizon: 1, NIgnoreLast: -1},
			err: ErrNegativeIgnoreLast,
		},
		"stratify with unit horizon": {
			opt: &Options{ContextWindowSize: 2, ForecastHorizon: 1, StratifyTargets: true},
			err: ErrStratifyUnitHorizon,
		},
		"valid stratify": {
			opt:      &Options{ContextWindowSize: 2, ForecastHorizon: 3, StratifyTargets: true},
			expected: &Options{ContextWindowSize: 2, ForecastHorizon: 3, StratifyTargets: true},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestFromSeriesWindowCount(t *testing.T) {
	testData := map[string]struct {
		seriesLen   int
		opt         *Options
		expectedCnt int
	}{
		"enumerate all": {
			seriesLen:   10,
			opt:         &Options{ContextWindowSize: 3, ForecastHorizon: 2, NumSamples: EnumerateAll},
			expectedCnt: 6,
		},
		"single window": {
			seriesLen:   4,
			opt:         &Options{ContextWindowSize: 3, ForecastHorizon: 1, NumSamples: EnumerateAll},
			expectedCnt: 1,
		},
		"too short": {
			seriesLen:   3,
			opt:         &Options{ContextWindowSize: 3, ForecastHorizon: 1, NumSamples: EnumerateAll},
			expectedCnt: 0,
		},
		"sampled with replacement": {
			seriesLen:   20,
			opt:         &Options{ContextWindowSize: 3, ForecastHorizon: 1, NumSamples: 40},
			expectedCnt: 40,
		},
		"trimmed too short": {
			seriesLen:   5,
			opt:         &Options{ContextWindowSize: 3, ForecastHorizon: 1, NIgnoreLast: 2, NumSamples: EnumerateAll},
			expectedCnt: 0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			p, err := New(td.opt, nil)
			require.Nil(t, err)

			features, targets := p.FromSeries(rampSeries(t, td.seriesLen))
			assert.Len(t, features, td.expectedCnt)
			assert.Len(t, targets, td.expectedCnt)
		})
	}
}

func TestFromSeriesEndToEnd(t *testing.T) {
	// series 1..7 with a context window of 2 and horizon of 1 yields windows
	// starting at 0 through 4
	p, err := New(&Options{ContextWindowSize: 2, ForecastHorizon: 1, NumSamples: EnumerateAll}, nil)
	require.Nil(t, err)

	features, targets := p.FromSeries(rampSeries(t, 7))
	require.Len(t, features, 5)
	require.Len(t, targets, 5)

	expectedTargets := [][]float64{{3}, {4}, {5}, {6}, {7}}
	assert.Equal(t, expectedTargets, targets)

	for i, feats := range features {
		require.Len(t, feats, 5)
		// centered pair around the window mean
		assert.InDelta(t, -0.5, feats[0], 1e-12)
		assert.InDelta(t, 0.5, feats[1], 1e-12)
		// trailing mean, stddev, window length
		assert.InDelta(t, float64(i)+1.5, feats[2], 1e-12)
		assert.InDelta(t, 0.5, feats[3], 1e-12)
		assert.Equal(t, 2.0, feats[4])
	}
}

func TestFromSeriesStratified(t *testing.T) {
	horizon := 3
	base, err := New(&Options{ContextWindowSize: 2, ForecastHorizon: horizon, NumSamples: EnumerateAll}, nil)
	require.Nil(t, err)
	strat, err := New(&Options{ContextWindowSize: 2, ForecastHorizon: horizon, StratifyTargets: true, NumSamples: EnumerateAll}, nil)
	require.Nil(t, err)

	s := rampSeries(t, 12)
	baseFeatures, baseTargets := base.FromSeries(s)
	stratFeatures, stratTargets := strat.FromSeries(s)

	require.Len(t, stratFeatures, len(baseFeatures)*horizon)
	require.Len(t, stratTargets, len(baseTargets)*horizon)

	for i, target := range stratTargets {
		require.Len(t, target, 1)
		window := i / horizon
		offset := i % horizon

		assert.Equal(t, baseTargets[window][offset], target[0])
		// offset occupies the final feature coordinate
		feats := stratFeatures[i]
		assert.Equal(t, float64(offset), feats[len(feats)-1])
		assert.Equal(t, baseFeatures[window], feats[:len(feats)-1])
	}
}

func TestLagFeaturizerCentered(t *testing.T) {
	lag, err := NewLagFeaturizer(5)
	require.Nil(t, err)

	s := newTestSeries(t, []float64{3, 1, 4, 1, 5, 9, 2, 6})
	feats := lag.Features(s, 1)
	require.Len(t, feats, 8)

	assert.InDelta(t, 0.0, floats.Sum(feats[:5]), 1e-12)
	assert.InDelta(t, 4.0, feats[5], 1e-12)
	assert.Equal(t, 5.0, feats[7])
}

func TestLagFeaturizerNegativeStart(t *testing.T) {
	lag, err := NewLagFeaturizer(4)
	require.Nil(t, err)

	s := newTestSeries(t, []float64{2, 4, 6, 8})
	feats := lag.Features(s, -2)
	require.Len(t, feats, 7)

	assert.True(t, math.IsNaN(feats[0]))
	assert.True(t, math.IsNaN(feats[1]))
	// remaining window is the first two observations centered at 3
	assert.InDelta(t, -1.0, feats[2], 1e-12)
	assert.InDelta(t, 1.0, feats[3], 1e-12)
	assert.InDelta(t, 3.0, feats[4], 1e-12)
	assert.InDelta(t, 1.0, feats[5], 1e-12)
	assert.Equal(t, 2.0, feats[6])
}

func TestSampleCount(t *testing.T) {
	testData := map[string]struct {
		seriesLens []int
		opt        *Options
		expected   int
		err        error
	}{
		"empty collection": {
			opt: &Options{ContextWindowSize: 2, ForecastHorizon: 1},
			err: ErrEmptySeriesCollection,
		},
		"no eligible series": {
			seriesLens: []int{2, 2},
			opt:        &Options{ContextWindowSize: 5, ForecastHorizon: 1},
			err:        ErrNoEligibleSeries,
		},
		"single short series enumerates": {
			seriesLens: []int{10},
			opt:        &Options{ContextWindowSize: 2, ForecastHorizon: 1},
			expected:   EnumerateAll,
		},
		"budget split across many series": {
			seriesLens: manyLens(1000, 500),
			opt:        &Options{ContextWindowSize: 2, ForecastHorizon: 1},
			expected:   400,
		},
		"more eligible series than budget": {
			seriesLens: manyLens(500_000, 4),
			opt:        &Options{ContextWindowSize: 2, ForecastHorizon: 1},
			expected:   1,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			collection := make([]*timedataset.Series, 0, len(td.seriesLens))
			for _, n := range td.seriesLens {
				collection = append(collection, rampSeries(t, n))
			}

			p, err := New(td.opt, nil)
			require.Nil(t, err)

			numSamples, err := p.SampleCount(collection)
			if td.err != nil {
				assert.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, numSamples)
		})
	}
}

func manyLens(n, seriesLen int) []int {
	lens := make([]int, n)
	for i := range lens {
		lens[i] = seriesLen
	}
	return lens
}

func TestFromCollection(t *testing.T) {
	p, err := New(&Options{ContextWindowSize: 2, ForecastHorizon: 1}, nil)
	require.Nil(t, err)

	collection := []*timedataset.Series{
		rampSeries(t, 7),
		rampSeries(t, 2), // too short, contributes nothing
		rampSeries(t, 5),
	}

	features, targets, err := p.FromCollection(collection)
	require.Nil(t, err)

	// sample count resolves to EnumerateAll so output is deterministic
	assert.Len(t, features, 8)
	assert.Len(t, targets, 8)
}

func TestFeatureNames(t *testing.T) {
	lag, err := NewLagFeaturizer(2)
	require.Nil(t, err)

	p, err := New(&Options{ContextWindowSize: 2, ForecastHorizon: 3, StratifyTargets: true}, lag)
	require.Nil(t, err)

	expected := []string{"lag_2", "lag_1", "window_mean", "window_std", "window_len", "horizon_offset"}
	assert.Equal(t, expected, p.FeatureNames())
}
