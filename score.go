package treecast

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrResLenMismatch = errors.New("predicted and actual have different lengths")
	ErrNoObservations = errors.New("no observations to score")
	ErrZeroDenom      = errors.New("actual values sum to zero absolute mass")
)

// Scores aggregates pointwise accuracy measures of a forecast against
// observed values.
type Scores struct {
	MSE  float64 `json:"mse"`  // mean squared error
	MAPE float64 `json:"mape"` // mean absolute percent error
	ND   float64 `json:"nd"`   // normalized deviation
}

// QuantileLossScore pairs a probability level with its weighted quantile
// loss.
type QuantileLossScore struct {
	Quantile float64 `json:"quantile"`
	Loss     float64 `json:"loss"`
}

// BacktestScores aggregates the accuracy of held out forecasts across a
// series collection.
type BacktestScores struct {
	ND                   float64             `json:"nd"`
	WeightedQuantileLoss []QuantileLossScore `json:"weighted_quantile_loss"`
}

func NewScores(predicted, actual []float64) (*Scores, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	nd, err := ND(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute normalized deviation, %w", err)
	}
	return &Scores{
		MSE:  mse,
		MAPE: mape,
		ND:   nd,
	}, nil
}

func MSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoObservations
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
	}
	mse /= float64(len(actual))
	return mse, nil
}

func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoObservations
	}

	mape := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
	}
	mape /= float64(len(actual))
	return mape, nil
}

// ND computes the normalized deviation, the summed absolute error divided by
// the summed absolute actuals.
func ND(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoObservations
	}

	num := 0.0
	denom := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		num += math.Abs(actual[i] - predicted[i])
		denom += math.Abs(actual[i])
	}
	if denom == 0 {
		return 0, ErrZeroDenom
	}
	return num / denom, nil
}

// QuantileLoss computes the summed pinball loss at probability level q
// scaled by 2 so the 0.5 level matches the summed absolute error.
func QuantileLoss(q float64, predicted, actual []float64) (float64, error) {
	if q <= 0 || q >= 1 {
		return 0, ErrQuantileOutOfBounds
	}
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoObservations
	}

	loss := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		diff := actual[i] - predicted[i]
		if diff > 0 {
			loss += 2.0 * q * diff
		} else {
			loss += 2.0 * (1.0 - q) * -diff
		}
	}
	return loss, nil
}

// WeightedQuantileLoss computes the quantile loss at probability level q
// normalized by the summed absolute actuals.
func WeightedQuantileLoss(q float64, predicted, actual []float64) (float64, error) {
	loss, err := QuantileLoss(q, predicted, actual)
	if err != nil {
		return 0, err
	}

	denom := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		denom += math.Abs(actual[i])
	}
	if denom == 0 {
		return 0, ErrZeroDenom
	}
	return loss / denom, nil
}
