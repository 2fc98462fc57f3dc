package dist

import (
	"fmt"

	"github.com/goccy/go-json"
)

const (
	typeGaussian         = "gaussian"
	typeGamma            = "gamma"
	typeBeta             = "beta"
	typeLaplace          = "laplace"
	typeStudentT         = "student_t"
	typeUniform          = "uniform"
	typePoisson          = "poisson"
	typeNegativeBinomial = "negative_binomial"
	typeBinned           = "binned"
	typeCategorical      = "categorical"
)

type envelope struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

// Marshal serializes a distribution into a tagged JSON envelope so it can be
// restored without knowing the concrete type up front.
func Marshal(d Distribution) ([]byte, error) {
	var name string
	switch d.(type) {
	case Gaussian, *Gaussian:
		name = typeGaussian
	case Gamma, *Gamma:
		name = typeGamma
	case Beta, *Beta:
		name = typeBeta
	case Laplace, *Laplace:
		name = typeLaplace
	case StudentT, *StudentT:
		name = typeStudentT
	case Uniform, *Uniform:
		name = typeUniform
	case Poisson, *Poisson:
		name = typePoisson
	case NegativeBinomial, *NegativeBinomial:
		name = typeNegativeBinomial
	case *Binned:
		name = typeBinned
	case *Categorical:
		name = typeCategorical
	default:
		return nil, fmt.Errorf("%T, %w", d, ErrUnknownDistType)
	}

	params, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal %s parameters, %w", name, err)
	}
	return json.Marshal(envelope{
		Type:   name,
		Params: params,
	})
}

// Unmarshal restores a distribution from its tagged JSON envelope.
func Unmarshal(data []byte) (Distribution, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unable to unmarshal distribution envelope, %w", err)
	}

	var d Distribution
	var err error
	switch env.Type {
	case typeGaussian:
		var g Gaussian
		err = json.Unmarshal(env.Params, &g)
		d = g
	case typeGamma:
		var g Gamma
		err = json.Unmarshal(env.Params, &g)
		d = g
	case typeBeta:
		var b Beta
		err = json.Unmarshal(env.Params, &b)
		d = b
	case typeLaplace:
		var l Laplace
		err = json.Unmarshal(env.Params, &l)
		d = l
	case typeStudentT:
		var s StudentT
		err = json.Unmarshal(env.Params, &s)
		d = s
	case typeUniform:
		var u Uniform
		err = json.Unmarshal(env.Params, &u)
		d = u
	case typePoisson:
		var p Poisson
		err = json.Unmarshal(env.Params, &p)
		d = p
	case typeNegativeBinomial:
		var nb NegativeBinomial
		err = json.Unmarshal(env.Params, &nb)
		d = nb
	case typeBinned:
		b := new(Binned)
		err = json.Unmarshal(env.Params, b)
		d = b
	case typeCategorical:
		c := new(Categorical)
		err = json.Unmarshal(env.Params, c)
		d = c
	default:
		return nil, fmt.Errorf("%q, %w", env.Type, ErrUnknownDistType)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal %s parameters, %w", env.Type, err)
	}
	return d, nil
}
