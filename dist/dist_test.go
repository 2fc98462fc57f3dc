package dist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBinned(t *testing.T) *Binned {
	t.Helper()
	b, err := NewBinned(
		[]float64{1e-300, 0.3, 0.1, 0.05, 0.2, 0.1, 0.25},
		[]float64{-5, -3, -1.2, -0.5, 0, 0.1, 0.2},
	)
	require.Nil(t, err)
	return b
}

func mustCategorical(t *testing.T) *Categorical {
	t.Helper()
	c, err := NewCategorical([]float64{1e-300, 0.3, 0.1, 0.05, 0.2, 0.1, 0.25})
	require.Nil(t, err)
	return c
}

func distCases(t *testing.T) map[string]struct {
	dist           Distribution
	expectedMean   float64
	expectedStdDev float64
} {
	t.Helper()
	return map[string]struct {
		dist           Distribution
		expectedMean   float64
		expectedStdDev float64
	}{
		"gaussian": {
			dist:           Gaussian{Mu: 1000.0, Sigma: 0.1},
			expectedMean:   1000.0,
			expectedStdDev: 0.1,
		},
		"gaussian negative": {
			dist:           Gaussian{Mu: -1000.0, Sigma: 1.0},
			expectedMean:   -1000.0,
			expectedStdDev: 1.0,
		},
		"gamma": {
			dist:           Gamma{Alpha: 2.5, Beta: 1.5},
			expectedMean:   2.5 / 1.5,
			expectedStdDev: math.Sqrt(2.5) / 1.5,
		},
		"beta": {
			dist:           Beta{Alpha: 2.5, Beta: 1.5},
			expectedMean:   0.625,
			expectedStdDev: math.Sqrt(2.5 * 1.5 / (16.0 * 5.0)),
		},
		"laplace": {
			dist:           Laplace{Mu: 1000.0, B: 0.1},
			expectedMean:   1000.0,
			expectedStdDev: 0.1 * math.Sqrt2,
		},
		"student t": {
			dist:           StudentT{Mu: 1000.0, Sigma: 1.0, Nu: 4.2},
			expectedMean:   1000.0,
			expectedStdDev: math.Sqrt(4.2 / 2.2),
		},
		"negative binomial": {
			dist:           NegativeBinomial{Mu: 1000.0, Alpha: 1.0},
			expectedMean:   1000.0,
			expectedStdDev: math.Sqrt(1000.0 * 1001.0),
		},
		"uniform": {
			dist:           Uniform{Low: 1000.0, High: 2000.0},
			expectedMean:   1500.0,
			expectedStdDev: 1000.0 / math.Sqrt(12.0),
		},
		"poisson": {
			dist:           Poisson{Rate: 1000.0},
			expectedMean:   1000.0,
			expectedStdDev: math.Sqrt(1000.0),
		},
		"binned": {
			dist:           mustBinned(t),
			expectedMean:   -0.985,
			expectedStdDev: math.Sqrt(2.8675 - 0.985*0.985),
		},
		"categorical": {
			dist:           mustCategorical(t),
			expectedMean:   3.45,
			expectedStdDev: math.Sqrt(15.85 - 3.45*3.45),
		},
	}
}

func TestDistributionMoments(t *testing.T) {
	for name, td := range distCases(t) {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, td.expectedMean, td.dist.Mean(), 1e-9)
			assert.InDelta(t, td.expectedStdDev, td.dist.StdDev(), 1e-9)
			assert.InDelta(t, td.expectedStdDev*td.expectedStdDev, td.dist.Variance(), 1e-9)
		})
	}
}

func TestDistributionSerdeRoundTrip(t *testing.T) {
	tol := 1e-11
	for name, td := range distCases(t) {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(td.dist)
			require.Nil(t, err)

			restored, err := Unmarshal(data)
			require.Nil(t, err)

			assert.InDelta(t, td.dist.Mean(), restored.Mean(), tol)
			assert.InDelta(t, td.dist.StdDev(), restored.StdDev(), tol)
			assert.InDelta(t, td.dist.Variance(), restored.Variance(), tol)
		})
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type":"dirichlet","params":{}}`))
	assert.ErrorIs(t, err, ErrUnknownDistType)
}

func TestGaussianQuantile(t *testing.T) {
	g := Gaussian{Mu: 0.0, Sigma: 1.0}
	assert.InDelta(t, 0.0, g.Quantile(0.5), 1e-12)
	assert.InDelta(t, 1.2815515655446004, g.Quantile(0.9), 1e-9)
}

func TestDiscreteQuantiles(t *testing.T) {
	po := Poisson{Rate: 4.0}
	assert.InDelta(t, 4.0, po.Quantile(0.5), 1e-12)
	assert.True(t, math.IsNaN(po.Quantile(1.5)))

	nb := NegativeBinomial{Mu: 4.0, Alpha: 0.5}
	med := nb.Quantile(0.5)
	assert.GreaterOrEqual(t, med, 0.0)
	assert.InDelta(t, nb.CDF(int(med)), 0.5, 0.5)
	assert.GreaterOrEqual(t, nb.CDF(int(med)), 0.5)
}

func TestBinnedQuantile(t *testing.T) {
	b := mustBinned(t)
	assert.Equal(t, -5.0, b.Quantile(0.0))
	assert.Equal(t, -3.0, b.Quantile(0.25))
	assert.Equal(t, 0.2, b.Quantile(1.0))
}
