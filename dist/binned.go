package dist

import (
	"math"
)

// Binned is a discrete distribution placing probability mass on a fixed set
// of bin centers.
type Binned struct {
	BinProbs   []float64 `json:"bin_probs"`
	BinCenters []float64 `json:"bin_centers"`
}

// NewBinned validates and returns a binned distribution. Probabilities are
// normalized to sum to one.
func NewBinned(binProbs, binCenters []float64) (*Binned, error) {
	if len(binProbs) == 0 {
		return nil, ErrNoBins
	}
	if len(binProbs) != len(binCenters) {
		return nil, ErrBinLenMismatch
	}

	var total float64
	for _, p := range binProbs {
		total += p
	}
	probs := make([]float64, len(binProbs))
	for i, p := range binProbs {
		probs[i] = p / total
	}
	centers := make([]float64, len(binCenters))
	copy(centers, binCenters)

	return &Binned{
		BinProbs:   probs,
		BinCenters: centers,
	}, nil
}

func (b *Binned) Mean() float64 {
	var mean float64
	for i, p := range b.BinProbs {
		mean += p * b.BinCenters[i]
	}
	return mean
}

func (b *Binned) Variance() float64 {
	mean := b.Mean()
	var sqMean float64
	for i, p := range b.BinProbs {
		sqMean += p * b.BinCenters[i] * b.BinCenters[i]
	}
	return sqMean - mean*mean
}

func (b *Binned) StdDev() float64 {
	return math.Sqrt(b.Variance())
}

// Quantile returns the first bin center where the cumulative probability
// reaches p.
func (b *Binned) Quantile(p float64) float64 {
	if !validProb(p) {
		return math.NaN()
	}
	var cum float64
	for i, prob := range b.BinProbs {
		cum += prob
		if cum >= p {
			return b.BinCenters[i]
		}
	}
	return b.BinCenters[len(b.BinCenters)-1]
}

// Categorical is a discrete distribution over the integer values
// 0 through len(Probs)-1.
type Categorical struct {
	Probs []float64 `json:"probs"`
}

// NewCategorical validates and returns a categorical distribution.
// Probabilities are normalized to sum to one.
func NewCategorical(probs []float64) (*Categorical, error) {
	if len(probs) == 0 {
		return nil, ErrNoCategories
	}
	var total float64
	for _, p := range probs {
		total += p
	}
	normalized := make([]float64, len(probs))
	for i, p := range probs {
		normalized[i] = p / total
	}
	return &Categorical{Probs: normalized}, nil
}

func (c *Categorical) binned() Binned {
	centers := make([]float64, len(c.Probs))
	for i := range centers {
		centers[i] = float64(i)
	}
	return Binned{
		BinProbs:   c.Probs,
		BinCenters: centers,
	}
}

func (c *Categorical) Mean() float64 {
	b := c.binned()
	return b.Mean()
}

func (c *Categorical) Variance() float64 {
	b := c.binned()
	return b.Variance()
}

func (c *Categorical) StdDev() float64 {
	b := c.binned()
	return b.StdDev()
}

func (c *Categorical) Quantile(p float64) float64 {
	b := c.binned()
	return b.Quantile(p)
}
