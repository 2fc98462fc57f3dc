package dist

import (
	"math"
)

// Bijection is a differentiable invertible transform of a scalar variable.
// Implementations must be monotonically increasing so quantiles map through
// Forward unchanged.
type Bijection interface {
	Forward(x float64) float64
	Inverse(y float64) float64
	// LogDetJacobian is the log absolute derivative of Forward at x.
	LogDetJacobian(x float64) float64
}

// AffineBijection maps x to Loc + Scale*x.
type AffineBijection struct {
	Loc   float64 `json:"loc"`
	Scale float64 `json:"scale"`
}

func NewAffineBijection(loc, scale float64) (*AffineBijection, error) {
	if scale == 0 {
		return nil, ErrZeroScale
	}
	return &AffineBijection{Loc: loc, Scale: scale}, nil
}

func (a *AffineBijection) Forward(x float64) float64 { return a.Loc + a.Scale*x }
func (a *AffineBijection) Inverse(y float64) float64 { return (y - a.Loc) / a.Scale }
func (a *AffineBijection) LogDetJacobian(x float64) float64 {
	return math.Log(math.Abs(a.Scale))
}

// ExpBijection maps the real line to the positive reals.
type ExpBijection struct{}

func (ExpBijection) Forward(x float64) float64        { return math.Exp(x) }
func (ExpBijection) Inverse(y float64) float64        { return math.Log(y) }
func (ExpBijection) LogDetJacobian(x float64) float64 { return x }

// BijectionOutput connects a network's raw output vector to a bijection. The
// domain map constrains raw outputs into valid bijection arguments and the
// constructor builds the bijection from them.
type BijectionOutput struct {
	DomainMap func(raw []float64) ([]float64, error)
	New       func(args []float64) (Bijection, error)
}

// Bijection maps the raw outputs through the domain map and constructs the
// resulting bijection.
func (b BijectionOutput) Bijection(raw []float64) (Bijection, error) {
	if b.DomainMap == nil || b.New == nil {
		return nil, ErrNoBijectionParts
	}
	args, err := b.DomainMap(raw)
	if err != nil {
		return nil, err
	}
	return b.New(args)
}
