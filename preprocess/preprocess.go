// Package preprocess slices univariate time series into flat lists of
// (feature, target) pairs consumable by a downstream tree-based or linear
// estimator. Feature extraction is pluggable through the Featurizer interface.
package preprocess

import (
	"log/slog"
	"math/rand"
	"slices"

	"github.com/treecast/treecast/timedataset"
)

// CollectionSampleBudget bounds the total number of samples drawn from a
// series collection when picking a per-series sample count.
const CollectionSampleBudget = 400_000

// MaxSamplesPerSeriesFactor caps the per-series sample count at this multiple
// of the number of eligible series.
const MaxSamplesPerSeriesFactor = 1000

// Preprocessor converts series into supervised samples. It holds no state
// across calls; all results are returned explicitly. A single instance may be
// shared only for read-only use since the underlying random source is not
// synchronized.
type Preprocessor struct {
	opt        *Options
	featurizer Featurizer
}

// New returns a Preprocessor using the provided options and featurizer. A nil
// featurizer defaults to lag features over the configured context window.
func New(opt *Options, featurizer Featurizer) (*Preprocessor, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if featurizer == nil {
		featurizer, err = NewLagFeaturizer(opt.ContextWindowSize)
		if err != nil {
			return nil, err
		}
	}
	return &Preprocessor{
		opt:        opt,
		featurizer: featurizer,
	}, nil
}

// Options returns the validated options backing this preprocessor.
func (p *Preprocessor) Options() *Options {
	return p.opt
}

// FeatureNames labels each feature column in emitted feature vectors. In
// stratified mode the horizon offset occupies the final column.
func (p *Preprocessor) FeatureNames() []string {
	names := slices.Clone(p.featurizer.Names())
	if p.opt.StratifyTargets {
		names = append(names, "horizon_offset")
	}
	return names
}

// FromSeries cuts a single series into feature and target rows using the
// configured NumSamples. A series too short for even one window yields empty
// output rather than an error.
func (p *Preprocessor) FromSeries(s *timedataset.Series) ([][]float64, [][]float64) {
	return p.fromSeries(s, p.opt.NumSamples)
}

func (p *Preprocessor) fromSeries(s *timedataset.Series, numSamples int) ([][]float64, [][]float64) {
	trimmed := s
	if p.opt.NIgnoreLast > 0 {
		trimmed = s.TrimLast(p.opt.NIgnoreLast)
	}

	maxWindows := trimmed.Len() - p.opt.ContextWindowSize - p.opt.ForecastHorizon + 1
	if maxWindows < 1 {
		return nil, nil
	}

	var starts []int
	if numSamples > 0 {
		// sampling with replacement may draw duplicate windows which acts as
		// bootstrap weighting of the training set
		starts = make([]int, numSamples)
		for i := range starts {
			starts[i] = rand.Intn(maxWindows)
		}
	} else {
		starts = make([]int, maxWindows)
		for i := range starts {
			starts[i] = i
		}
	}

	var features [][]float64
	var targets [][]float64
	for _, start := range starts {
		feats := p.featurizer.Features(trimmed, start)
		targetStart := start + p.opt.ContextWindowSize
		if p.opt.StratifyTargets {
			for offset := 0; offset < p.opt.ForecastHorizon; offset++ {
				stratified := make([]float64, 0, len(feats)+1)
				stratified = append(stratified, feats...)
				stratified = append(stratified, float64(offset))
				features = append(features, stratified)
				targets = append(targets, []float64{trimmed.Target[targetStart+offset]})
			}
			continue
		}
		features = append(features, feats)
		targets = append(targets, slices.Clone(trimmed.Target[targetStart:targetStart+p.opt.ForecastHorizon]))
	}
	return features, targets
}

// FromCollection computes a single per-series sample count for the whole
// collection and concatenates the per-series results.
func (p *Preprocessor) FromCollection(collection []*timedataset.Series) ([][]float64, [][]float64, error) {
	numSamples, err := p.SampleCount(collection)
	if err != nil {
		return nil, nil, err
	}

	var features [][]float64
	var targets [][]float64
	for _, s := range collection {
		seriesFeatures, seriesTargets := p.fromSeries(s, numSamples)
		features = append(features, seriesFeatures...)
		targets = append(targets, seriesTargets...)
	}
	slog.Info("done preprocessing series collection",
		"num_series", len(collection),
		"samples_per_series", numSamples,
		"datapoints", len(features),
	)
	return features, targets, nil
}

// SampleCount picks the number of windows to draw from each series in the
// collection, bounding the total sample volume by CollectionSampleBudget.
// EnumerateAll is returned once the per-series budget exceeds the longest
// series, at which point full enumeration is cheaper than sampling.
func (p *Preprocessor) SampleCount(collection []*timedataset.Series) (int, error) {
	if len(collection) == 0 {
		return 0, ErrEmptySeriesCollection
	}

	var numEligible int
	var maxSeriesLen int
	for _, s := range collection {
		if s.Len()-p.opt.ContextWindowSize-p.opt.ForecastHorizon >= 0 {
			numEligible++
		}
		maxSeriesLen = max(maxSeriesLen, s.Len())
	}
	if numEligible == 0 {
		return 0, ErrNoEligibleSeries
	}

	numSamples := CollectionSampleBudget / numEligible
	if maxDraws := numEligible * MaxSamplesPerSeriesFactor; maxDraws < numSamples {
		numSamples = maxDraws
	}
	switch {
	case numSamples == 0:
		numSamples = 1
	case numSamples > maxSeriesLen:
		numSamples = EnumerateAll
	}
	return numSamples, nil
}
