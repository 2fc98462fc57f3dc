package treecast

// StepWeights holds the linear weights and residual quantiles of a single
// forecast horizon step. ResidualQuantiles aligns with Options.Quantiles.
type StepWeights struct {
	Intercept         float64   `json:"intercept"`
	Coef              []float64 `json:"coefficients"`
	ResidualQuantiles []float64 `json:"residual_quantiles"`
}

// Model is a serializable representation of a fit forecaster. Restoring a
// forecaster from a model with NewFromModel reproduces the predictions of
// the forecaster that generated it.
type Model struct {
	Options       *Options      `json:"options"`
	FeatureLabels []string      `json:"feature_labels"`
	Steps         []StepWeights `json:"step_models"`
}
