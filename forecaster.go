// Package treecast fits quantile forecasts of univariate time series by
// windowing the input into supervised samples and training one linear
// submodel per horizon step. Uncertainty bands come from the empirical
// quantiles of the training residuals.
package treecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/treecast/treecast/models"
	"github.com/treecast/treecast/preprocess"
	"github.com/treecast/treecast/stats"
	"github.com/treecast/treecast/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoTrainingSamples = errors.New("no training samples produced from series collection")
	ErrSeriesTooShort    = errors.New("series shorter than the context window")
	ErrNoModelWeights    = errors.New("no model weights set, forecaster must be fit first")
	ErrNoOptionsInModel  = errors.New("no options set in model")
)

// Forecaster fits per-step quantile forecast models and can be used to
// generate forecasts. Not safe for concurrent use while fitting.
type Forecaster struct {
	opt        *Options
	featurizer preprocess.Featurizer

	steps []StepWeights
}

// New creates a new instance of a Forecaster using the provided options. If
// no options are provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	featurizer, err := opt.newFeaturizer()
	if err != nil {
		return nil, err
	}
	return &Forecaster{
		opt:        opt,
		featurizer: featurizer,
	}, nil
}

// NewFromModel creates a new instance of Forecaster from a pre-existing
// model generated from a previous forecaster call to Model(). The returned
// forecaster predicts immediately without retraining.
func NewFromModel(model Model) (*Forecaster, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	f, err := New(model.Options)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize from model options, %w", err)
	}
	if len(model.Steps) == 0 {
		return nil, ErrNoModelWeights
	}
	f.steps = model.Steps
	return f, nil
}

// Fit preprocesses the series collection into supervised samples and fits
// one submodel per forecast horizon step. In stratified mode a single
// submodel is fit across all horizon offsets and folded into per-step
// weights.
func (f *Forecaster) Fit(collection ...*timedataset.Series) error {
	pre, err := preprocess.New(f.opt.Preprocess, f.featurizer)
	if err != nil {
		return fmt.Errorf("unable to initialize preprocessor, %w", err)
	}

	features, targets, err := pre.FromCollection(collection)
	if err != nil {
		return fmt.Errorf("unable to preprocess series collection, %w", err)
	}
	if len(features) == 0 {
		return ErrNoTrainingSamples
	}

	if f.opt.Outliers != nil {
		features, targets = filterOutlierRows(features, targets, f.opt.Outliers)
		if len(features) == 0 {
			return ErrNoTrainingSamples
		}
	}

	x, err := models.NewDenseFromRows(features)
	if err != nil {
		return fmt.Errorf("unable to build design matrix, %w", err)
	}

	if f.opt.Preprocess.StratifyTargets {
		return f.fitStratified(x, targets)
	}
	return f.fitPerStep(x, targets)
}

// fitPerStep trains an independent submodel for each horizon step against
// the step's target column.
func (f *Forecaster) fitPerStep(x *mat.Dense, targets [][]float64) error {
	horizon := f.opt.Preprocess.ForecastHorizon
	m, _ := x.Dims()

	steps := make([]StepWeights, 0, horizon)
	for step := 0; step < horizon; step++ {
		yArr := make([]float64, m)
		for i, target := range targets {
			yArr[i] = target[step]
		}
		y := mat.NewDense(m, 1, yArr)

		submodel, err := f.opt.newSubmodel()
		if err != nil {
			return err
		}
		if err := submodel.Fit(x, y); err != nil {
			return fmt.Errorf("unable to fit submodel for step %d, %w", step, err)
		}

		predicted, err := submodel.Predict(x)
		if err != nil {
			return fmt.Errorf("unable to compute training residuals for step %d, %w", step, err)
		}
		residuals := make([]float64, m)
		floats.SubTo(residuals, yArr, predicted)

		resQuantiles, err := stats.Quantiles(f.opt.Quantiles, residuals)
		if err != nil {
			return fmt.Errorf("unable to compute residual quantiles for step %d, %w", step, err)
		}

		steps = append(steps, StepWeights{
			Intercept:         submodel.Intercept(),
			Coef:              submodel.Coef(),
			ResidualQuantiles: resQuantiles,
		})
	}
	f.steps = steps
	return nil
}

// fitStratified trains a single submodel over all horizon offsets where the
// offset occupies the final feature column, then folds the offset
// coefficient into a per-step intercept so prediction follows the same path
// as the per-step fit.
func (f *Forecaster) fitStratified(x *mat.Dense, targets [][]float64) error {
	horizon := f.opt.Preprocess.ForecastHorizon
	m, n := x.Dims()

	yArr := make([]float64, m)
	for i, target := range targets {
		yArr[i] = target[0]
	}
	y := mat.NewDense(m, 1, yArr)

	submodel, err := f.opt.newSubmodel()
	if err != nil {
		return err
	}
	if err := submodel.Fit(x, y); err != nil {
		return fmt.Errorf("unable to fit stratified submodel, %w", err)
	}

	predicted, err := submodel.Predict(x)
	if err != nil {
		return fmt.Errorf("unable to compute stratified training residuals, %w", err)
	}
	residuals := make([]float64, m)
	floats.SubTo(residuals, yArr, predicted)

	coef := submodel.Coef()
	offsetCoef := coef[n-1]
	lagCoef := coef[:n-1]

	// outlier filtering may have dropped rows so the horizon offset is read
	// from the final design matrix column rather than the row position
	offsetResiduals := make([][]float64, horizon)
	for i := 0; i < m; i++ {
		offset := int(x.At(i, n-1))
		offsetResiduals[offset] = append(offsetResiduals[offset], residuals[i])
	}

	steps := make([]StepWeights, 0, horizon)
	for step := 0; step < horizon; step++ {
		resQuantiles, err := stats.Quantiles(f.opt.Quantiles, offsetResiduals[step])
		if err != nil {
			return fmt.Errorf("unable to compute residual quantiles for offset %d, %w", step, err)
		}

		stepCoef := make([]float64, len(lagCoef))
		copy(stepCoef, lagCoef)
		steps = append(steps, StepWeights{
			Intercept:         submodel.Intercept() + offsetCoef*float64(step),
			Coef:              stepCoef,
			ResidualQuantiles: resQuantiles,
		})
	}
	f.steps = steps
	return nil
}

// filterOutlierRows drops samples whose target falls outside the Tukey
// fences of any horizon step.
func filterOutlierRows(features, targets [][]float64, opt *OutlierOptions) ([][]float64, [][]float64) {
	if len(targets) == 0 {
		return features, targets
	}
	horizon := len(targets[0])

	drop := make(map[int]struct{})
	col := make([]float64, len(targets))
	for step := 0; step < horizon; step++ {
		for i, target := range targets {
			col[i] = target[step]
		}
		for _, idx := range stats.DetectOutliers(col, opt.LowerPercentile, opt.UpperPercentile, opt.TukeyFactor) {
			drop[idx] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return features, targets
	}

	keptFeatures := make([][]float64, 0, len(features)-len(drop))
	keptTargets := make([][]float64, 0, len(targets)-len(drop))
	for i := range features {
		if _, exists := drop[i]; exists {
			continue
		}
		keptFeatures = append(keptFeatures, features[i])
		keptTargets = append(keptTargets, targets[i])
	}
	return keptFeatures, keptTargets
}

// Predict generates a point forecast with quantile bands for the horizon
// immediately following the end of the input series.
func (f *Forecaster) Predict(s *timedataset.Series) (*Results, error) {
	if len(f.steps) == 0 {
		return nil, ErrNoModelWeights
	}
	contextWindow := f.opt.Preprocess.ContextWindowSize
	if s.Len() < contextWindow {
		return nil, fmt.Errorf("got %d observations with a context window of %d, %w", s.Len(), contextWindow, ErrSeriesTooShort)
	}

	feats := f.featurizer.Features(s, s.Len()-contextWindow)
	for i, val := range feats {
		if math.IsNaN(val) {
			feats[i] = 0.0
		}
	}

	horizon := len(f.steps)
	res := &Results{
		Point:     make([]float64, 0, horizon),
		Quantiles: make([]QuantileForecast, len(f.opt.Quantiles)),
	}
	for qi, q := range f.opt.Quantiles {
		res.Quantiles[qi] = QuantileForecast{
			Quantile: q,
			Values:   make([]float64, 0, horizon),
		}
	}

	for step, w := range f.steps {
		if len(w.Coef) != len(feats) {
			return nil, fmt.Errorf("got %d features but step %d has %d coefficients, %w",
				len(feats), step, len(w.Coef), models.ErrFeatureLenMismatch)
		}
		point := w.Intercept + floats.Dot(w.Coef, feats)

		res.T = append(res.T, s.TimeAt(s.Len()+step))
		res.Point = append(res.Point, point)
		for qi := range f.opt.Quantiles {
			res.Quantiles[qi].Values = append(res.Quantiles[qi].Values, point+w.ResidualQuantiles[qi])
		}
	}
	return res, nil
}

// Model generates a serializable representation of the fit options and
// per-step weights. This can be used to initialize a new Forecaster for
// immediate predictions skipping the training step.
func (f *Forecaster) Model() (Model, error) {
	if len(f.steps) == 0 {
		return Model{}, ErrNoModelWeights
	}
	return Model{
		Options:       f.opt,
		FeatureLabels: f.featurizer.Names(),
		Steps:         f.steps,
	}, nil
}

// Backtest forecasts the trailing horizon of every series in the collection
// using only the preceding observations and scores the forecasts against the
// held out values.
func (f *Forecaster) Backtest(collection []*timedataset.Series) (*BacktestScores, error) {
	horizon := f.opt.Preprocess.ForecastHorizon

	var actual []float64
	var point []float64
	quantilePreds := make([][]float64, len(f.opt.Quantiles))

	for i, s := range collection {
		if s.Len() < f.opt.Preprocess.ContextWindowSize+horizon {
			continue
		}
		input := s.TrimLast(horizon)
		res, err := f.Predict(input)
		if err != nil {
			return nil, fmt.Errorf("unable to predict series %d, %w", i, err)
		}

		actual = append(actual, s.Target[s.Len()-horizon:]...)
		point = append(point, res.Point...)
		for qi := range quantilePreds {
			quantilePreds[qi] = append(quantilePreds[qi], res.Quantiles[qi].Values...)
		}
	}
	if len(actual) == 0 {
		return nil, ErrNoTrainingSamples
	}

	nd, err := ND(point, actual)
	if err != nil {
		return nil, err
	}
	scores := &BacktestScores{
		ND:                   nd,
		WeightedQuantileLoss: make([]QuantileLossScore, 0, len(f.opt.Quantiles)),
	}
	for qi, q := range f.opt.Quantiles {
		wql, err := WeightedQuantileLoss(q, quantilePreds[qi], actual)
		if err != nil {
			return nil, err
		}
		scores.WeightedQuantileLoss = append(scores.WeightedQuantileLoss, QuantileLossScore{
			Quantile: q,
			Loss:     wql,
		})
	}
	return scores, nil
}
