package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type OLSOptions struct {
	FitIntercept bool `json:"fit_intercept"`
}

// NewDefaultOLSOptions returns a default set of OLS options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		return NewDefaultOLSOptions(), nil
	}
	return o, nil
}

// OLSRegression computes ordinary least squares using QR factorization
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
}

func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit solves for the coefficients minimizing the squared error against the
// target matrix. y must be a single column with as many rows as x.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, _ := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		x = withIntercept(x)
	}
	_, n := x.Dims()

	qr := new(mat.QR)
	qr.Factorize(x)

	c := mat.NewDense(n, 1, nil)
	if err := qr.SolveTo(c, false, y); err != nil {
		return fmt.Errorf("unable to solve least squares system, %w", err)
	}

	coef := mat.Col(nil, 0, c)
	if o.opt.FitIntercept {
		o.intercept = coef[0]
		o.coef = coef[1:]
		return nil
	}
	o.coef = coef
	return nil
}

// Predict computes the estimate for each row of the design matrix.
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := o.coef
	if o.opt.FitIntercept {
		coef = append([]float64{o.intercept}, o.coef...)
		x = withIntercept(x)
	}

	_, xn := x.Dims()
	if xn != len(coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, len(coef), ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, len(coef), coef)

	var res mat.Dense
	res.Mul(coefMx, x.T())
	return res.RawRowView(0), nil
}

// Score returns the coefficient of determination of the prediction against
// the target.
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)
	return stat.RSquaredFrom(res, ySlice, nil), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}
