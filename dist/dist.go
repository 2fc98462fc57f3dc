// Package dist provides the parametric output distributions of the forecaster
// along with bijective transforms and a serializable representation. Only the
// statistical surface is covered here; parameter estimation belongs to the
// wrapped models.
package dist

import (
	"errors"
	"math"
)

var (
	ErrUnknownDistType  = errors.New("unknown distribution type")
	ErrBinLenMismatch   = errors.New("bin centers and probabilities must have the same length")
	ErrNoBins           = errors.New("no bins provided")
	ErrNoCategories     = errors.New("no category probabilities provided")
	ErrZeroScale        = errors.New("bijection scale must be non-zero")
	ErrNoBijectionParts = errors.New("bijection output requires both a domain map and a constructor")
)

// Distribution exposes the first two moments and the quantile function of a
// univariate probability distribution.
type Distribution interface {
	Mean() float64
	StdDev() float64
	Variance() float64
	Quantile(p float64) float64
}

// discreteQuantile returns the smallest non-negative integer k with
// cdf(k) >= p, searching up to limit.
func discreteQuantile(p float64, limit int, cdf func(k int) float64) float64 {
	for k := 0; k <= limit; k++ {
		if cdf(k) >= p {
			return float64(k)
		}
	}
	return float64(limit)
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1 && !math.IsNaN(p)
}
