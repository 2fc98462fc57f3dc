package treecast

import (
	"errors"

	"github.com/treecast/treecast/models"
	"github.com/treecast/treecast/preprocess"
)

var ErrQuantileOutOfBounds = errors.New("quantile must be within (0, 1)")

// OutlierOptions configures the Tukey fence filtering of training targets
// before submodel fitting.
type OutlierOptions struct {
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

func NewDefaultOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures a forecaster. If no preprocessing options are provided a
// default is used.
type Options struct {
	Preprocess *preprocess.Options `json:"preprocess_options"`

	// Quantiles are the probability levels forecast alongside the point
	// estimate, each within (0, 1).
	Quantiles []float64 `json:"quantiles"`

	// UseOLS fits submodels with ordinary least squares instead of the
	// default coordinate descent lasso. OLS requires a well conditioned
	// feature matrix.
	UseOLS bool `json:"use_ols"`

	// Regularization is the lasso L1 multiplier. Ignored with UseOLS.
	Regularization float64 `json:"regularization"`

	// CalendarFeatures appends calendar features of the forecast origin to
	// each context window.
	CalendarFeatures bool `json:"calendar_features"`

	// Outliers optionally drops training windows whose targets fall outside
	// the Tukey fences before fitting.
	Outliers *OutlierOptions `json:"outlier_options"`
}

// NewDefaultOptions returns a default set of forecaster options forecasting
// the 0.1, 0.5 and 0.9 quantiles.
func NewDefaultOptions() *Options {
	return &Options{
		Preprocess: preprocess.NewDefaultOptions(),
		Quantiles:  []float64{0.1, 0.5, 0.9},
	}
}

// Validate runs basic validation on forecaster options returning a default
// set if uninitialized.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	popt, err := o.Preprocess.Validate()
	if err != nil {
		return nil, err
	}
	o.Preprocess = popt

	if len(o.Quantiles) == 0 {
		o.Quantiles = []float64{0.1, 0.5, 0.9}
	}
	for _, q := range o.Quantiles {
		if q <= 0 || q >= 1 {
			return nil, ErrQuantileOutOfBounds
		}
	}
	return o, nil
}

// newFeaturizer builds the feature extraction strategy described by the
// options. Both fitting and prediction derive their featurizer from here so a
// forecaster restored from a serialized model featurizes identically.
func (o *Options) newFeaturizer() (preprocess.Featurizer, error) {
	lag, err := preprocess.NewLagFeaturizer(o.Preprocess.ContextWindowSize)
	if err != nil {
		return nil, err
	}
	if !o.CalendarFeatures {
		return lag, nil
	}
	return preprocess.NewCalendarFeaturizer(lag, nil)
}

func (o *Options) newSubmodel() (models.Model, error) {
	if o.UseOLS {
		return models.NewOLSRegression(nil)
	}
	// tighter tolerance than the lasso default since collinear lag columns
	// slow the coordinate descent convergence
	return models.NewLassoRegression(&models.LassoOptions{
		Lambda:       o.Regularization,
		Iterations:   models.DefaultIterations,
		Tolerance:    1e-8,
		FitIntercept: true,
	})
}
