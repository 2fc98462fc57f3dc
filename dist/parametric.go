package dist

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is a normal distribution parameterized by mean and standard
// deviation.
type Gaussian struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
}

func (g Gaussian) dist() distuv.Normal {
	return distuv.Normal{Mu: g.Mu, Sigma: g.Sigma}
}

func (g Gaussian) Mean() float64 { return g.dist().Mean() }
func (g Gaussian) StdDev() float64 { return g.dist().StdDev() }
func (g Gaussian) Variance() float64 { return g.dist().Variance() }
func (g Gaussian) Quantile(p float64) float64 { return g.dist().Quantile(p) }

// Gamma is parameterized by shape alpha and rate beta.
type Gamma struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (g Gamma) dist() distuv.Gamma {
	return distuv.Gamma{Alpha: g.Alpha, Beta: g.Beta}
}

func (g Gamma) Mean() float64 { return g.dist().Mean() }
func (g Gamma) StdDev() float64 { return g.dist().StdDev() }
func (g Gamma) Variance() float64 { return g.dist().Variance() }
func (g Gamma) Quantile(p float64) float64 { return g.dist().Quantile(p) }

// Beta is parameterized by the two shape parameters alpha and beta.
type Beta struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (b Beta) dist() distuv.Beta {
	return distuv.Beta{Alpha: b.Alpha, Beta: b.Beta}
}

func (b Beta) Mean() float64 { return b.dist().Mean() }
func (b Beta) StdDev() float64 { return b.dist().StdDev() }
func (b Beta) Variance() float64 { return b.dist().Variance() }
func (b Beta) Quantile(p float64) float64 { return b.dist().Quantile(p) }

// Laplace is parameterized by location mu and diversity b.
type Laplace struct {
	Mu float64 `json:"mu"`
	B  float64 `json:"b"`
}

func (l Laplace) dist() distuv.Laplace {
	return distuv.Laplace{Mu: l.Mu, Scale: l.B}
}

func (l Laplace) Mean() float64 { return l.dist().Mean() }
func (l Laplace) StdDev() float64 { return l.dist().StdDev() }
func (l Laplace) Variance() float64 { return l.dist().Variance() }
func (l Laplace) Quantile(p float64) float64 { return l.dist().Quantile(p) }

// StudentT is a location-scale student's t distribution with nu degrees of
// freedom. Moments exist only for nu > 2.
type StudentT struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
	Nu    float64 `json:"nu"`
}

func (s StudentT) dist() distuv.StudentsT {
	return distuv.StudentsT{Mu: s.Mu, Sigma: s.Sigma, Nu: s.Nu}
}

func (s StudentT) Mean() float64 { return s.dist().Mean() }
func (s StudentT) StdDev() float64 { return s.dist().StdDev() }
func (s StudentT) Variance() float64 { return s.dist().Variance() }
func (s StudentT) Quantile(p float64) float64 { return s.dist().Quantile(p) }

// Uniform is a continuous uniform distribution over [Low, High].
type Uniform struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (u Uniform) dist() distuv.Uniform {
	return distuv.Uniform{Min: u.Low, Max: u.High}
}

func (u Uniform) Mean() float64 { return u.dist().Mean() }
func (u Uniform) StdDev() float64 { return u.dist().StdDev() }
func (u Uniform) Variance() float64 { return u.dist().Variance() }
func (u Uniform) Quantile(p float64) float64 { return u.dist().Quantile(p) }

// Poisson is parameterized by its rate.
type Poisson struct {
	Rate float64 `json:"rate"`
}

func (po Poisson) dist() distuv.Poisson {
	return distuv.Poisson{Lambda: po.Rate}
}

func (po Poisson) Mean() float64 { return po.dist().Mean() }
func (po Poisson) StdDev() float64 { return po.dist().StdDev() }
func (po Poisson) Variance() float64 { return po.dist().Variance() }

func (po Poisson) Quantile(p float64) float64 {
	if !validProb(p) {
		return math.NaN()
	}
	d := po.dist()
	limit := int(math.Ceil(d.Mean() + 40*d.StdDev() + 10))
	return discreteQuantile(p, limit, func(k int) float64 {
		return d.CDF(float64(k))
	})
}

// NegativeBinomial is parameterized by mean mu and inverse dispersion alpha,
// giving a variance of mu * (1 + mu*alpha).
type NegativeBinomial struct {
	Mu    float64 `json:"mu"`
	Alpha float64 `json:"alpha"`
}

func (nb NegativeBinomial) Mean() float64 { return nb.Mu }

func (nb NegativeBinomial) Variance() float64 { return nb.Mu * (1 + nb.Mu*nb.Alpha) }

func (nb NegativeBinomial) StdDev() float64 { return math.Sqrt(nb.Variance()) }

// CDF evaluates the cumulative probability at k through the regularized
// incomplete beta function.
func (nb NegativeBinomial) CDF(k int) float64 {
	if k < 0 {
		return 0
	}
	r := 1 / nb.Alpha
	p := r / (r + nb.Mu)
	return mathext.RegIncBeta(r, float64(k+1), p)
}

func (nb NegativeBinomial) Quantile(p float64) float64 {
	if !validProb(p) {
		return math.NaN()
	}
	limit := int(math.Ceil(nb.Mean() + 40*nb.StdDev() + 10))
	return discreteQuantile(p, limit, nb.CDF)
}
