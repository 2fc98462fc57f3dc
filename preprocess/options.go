package preprocess

import (
	"errors"
)

const (
	DefaultContextWindowSize = 10
	DefaultForecastHorizon   = 1

	// EnumerateAll is the sample count signalling that every valid context
	// window should be emitted in order instead of sampling.
	EnumerateAll = -1
)

var (
	ErrContextWindowSize    = errors.New("context window size must be at least 1")
	ErrForecastHorizon      = errors.New("forecast horizon must be at least 1")
	ErrNegativeIgnoreLast   = errors.New("number of trailing points to ignore must not be negative")
	ErrStratifyUnitHorizon  = errors.New("cannot stratify targets with a forecast horizon of 1")
	ErrNoEligibleSeries     = errors.New("no series long enough to produce a context window")
	ErrEmptySeriesCollection = errors.New("empty series collection")
)

// Options configures how time series are cut into supervised samples.
type Options struct {
	// ContextWindowSize is the number of trailing observations used as model
	// input for each sample.
	ContextWindowSize int `json:"context_window_size"`

	// ForecastHorizon is the number of future steps targeted by each sample.
	ForecastHorizon int `json:"forecast_horizon"`

	// StratifyTargets expands each context window into ForecastHorizon
	// samples. Each sample's feature vector carries one extra trailing
	// coordinate holding the horizon offset and its target is the single
	// observation at that offset.
	StratifyTargets bool `json:"stratify_targets"`

	// NIgnoreLast removes the given number of trailing observations from each
	// series before windowing, e.g. to hold out an evaluation range.
	NIgnoreLast int `json:"n_ignore_last"`

	// NumSamples is the number of context windows drawn per series with
	// replacement. A non-positive value enumerates every valid window
	// deterministically.
	NumSamples int `json:"num_samples"`
}

// NewDefaultOptions returns preprocessing options enumerating all windows with
// a single step horizon.
func NewDefaultOptions() *Options {
	return &Options{
		ContextWindowSize: DefaultContextWindowSize,
		ForecastHorizon:   DefaultForecastHorizon,
		NumSamples:        EnumerateAll,
	}
}

// Validate runs basic validation on the preprocessing options returning a
// default set if uninitialized.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.ContextWindowSize < 1 {
		return nil, ErrContextWindowSize
	}
	if o.ForecastHorizon < 1 {
		return nil, ErrForecastHorizon
	}
	if o.NIgnoreLast < 0 {
		return nil, ErrNegativeIgnoreLast
	}
	if o.StratifyTargets && o.ForecastHorizon == 1 {
		return nil, ErrStratifyUnitHorizon
	}
	return o, nil
}
