// Package stats holds the order-statistic helpers shared by the forecaster.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var ErrNoData = errors.New("no data to compute quantiles from")

// Quantile computes the p-th quantile of xs with linear interpolation,
// ignoring NaN entries. The input slice is left untouched.
func Quantile(p float64, xs []float64) (float64, error) {
	sorted := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sorted = append(sorted, x)
	}
	if len(sorted) == 0 {
		return 0, ErrNoData
	}
	sort.Float64s(sorted)

	p = math.Min(math.Max(p, 0.0), 1.0)
	return stat.Quantile(p, stat.LinInterp, sorted, nil), nil
}

// Quantiles computes one quantile per requested probability over a single
// sorted pass of xs.
func Quantiles(ps, xs []float64) ([]float64, error) {
	sorted := make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sorted = append(sorted, x)
	}
	if len(sorted) == 0 {
		return nil, ErrNoData
	}
	sort.Float64s(sorted)

	res := make([]float64, 0, len(ps))
	for _, p := range ps {
		p = math.Min(math.Max(p, 0.0), 1.0)
		res = append(res, stat.Quantile(p, stat.LinInterp, sorted, nil))
	}
	return res, nil
}

// DetectOutliers returns the indexes of values falling outside the Tukey
// fences spanned by the lower and upper percentiles.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	bounds, err := Quantiles([]float64{lowerPerc, upperPerc}, y)
	if err != nil {
		return nil
	}
	lower, upper := bounds[0], bounds[1]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
