package dist

import "math"

// TransformedDistribution applies a chain of bijections to a base
// distribution. Quantiles map exactly through the monotone forwards; moments
// are exact when every transform is affine and otherwise approximated by
// integrating the quantile function.
type TransformedDistribution struct {
	Base       Distribution
	Transforms []Bijection
}

const quantileGridSize = 2048

func NewTransformed(base Distribution, transforms ...Bijection) *TransformedDistribution {
	return &TransformedDistribution{
		Base:       base,
		Transforms: transforms,
	}
}

func (t *TransformedDistribution) Quantile(p float64) float64 {
	x := t.Base.Quantile(p)
	for _, bij := range t.Transforms {
		x = bij.Forward(x)
	}
	return x
}

func (t *TransformedDistribution) Mean() float64 {
	if loc, scale, ok := t.affineFold(); ok {
		return loc + scale*t.Base.Mean()
	}
	mean, _ := t.gridMoments()
	return mean
}

func (t *TransformedDistribution) Variance() float64 {
	if _, scale, ok := t.affineFold(); ok {
		return scale * scale * t.Base.Variance()
	}
	_, variance := t.gridMoments()
	return variance
}

func (t *TransformedDistribution) StdDev() float64 {
	variance := t.Variance()
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// affineFold collapses the transform chain into a single location and scale
// when every transform is affine.
func (t *TransformedDistribution) affineFold() (float64, float64, bool) {
	loc, scale := 0.0, 1.0
	for _, bij := range t.Transforms {
		aff, ok := bij.(*AffineBijection)
		if !ok {
			return 0, 0, false
		}
		loc = aff.Loc + aff.Scale*loc
		scale *= aff.Scale
	}
	return loc, scale, true
}

// gridMoments approximates mean and variance with a midpoint rule over the
// transformed quantile function.
func (t *TransformedDistribution) gridMoments() (float64, float64) {
	var mean, sqMean float64
	for i := 0; i < quantileGridSize; i++ {
		p := (float64(i) + 0.5) / quantileGridSize
		v := t.Quantile(p)
		mean += v
		sqMean += v * v
	}
	mean /= quantileGridSize
	sqMean /= quantileGridSize
	return mean, sqMean - mean*mean
}
