package treecast

import "time"

// QuantileForecast holds the forecast values of a single probability level
// over the horizon.
type QuantileForecast struct {
	Quantile float64   `json:"quantile"`
	Values   []float64 `json:"values"`
}

// Results holds the point forecast along with the quantile bands for each
// horizon step after the end of the input series.
type Results struct {
	T         []time.Time        `json:"time"`
	Point     []float64          `json:"point"`
	Quantiles []QuantileForecast `json:"quantiles"`
}

// Quantile returns the forecast values of the requested probability level or
// false if the level was not configured at fit time.
func (r *Results) Quantile(q float64) ([]float64, bool) {
	for _, qf := range r.Quantiles {
		if qf.Quantile == q {
			return qf.Values, true
		}
	}
	return nil, false
}
