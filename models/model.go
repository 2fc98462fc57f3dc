// Package models is a collection of linear regression fitting implementations
// used as the per-step submodels of the quantile forecaster.
package models

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
)

type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
