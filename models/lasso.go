package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLambda     = 1.0
	DefaultIterations = 1000
	DefaultTolerance  = 1e-4
)

var (
	ErrNegativeLambda     = errors.New("negative lambda")
	ErrNegativeIterations = errors.New("negative iterations")
	ErrNegativeTolerance  = errors.New("negative tolerance")
)

// LassoOptions represents input options to run the Lasso Regression
type LassoOptions struct {
	// Lambda is the L1 multiplier controlling the regularization. Must be
	// non-negative. 0.0 converges to Ordinary Least Squares.
	Lambda float64 `json:"lambda"`

	// Iterations is the maximum number of times the fit loops through training
	// all coefficients.
	Iterations int `json:"iterations"`

	// Tolerance is the smallest coefficient change relative to the largest
	// coefficient determining when to stop iterating.
	Tolerance float64 `json:"tolerance"`

	// FitIntercept adds a constant 1.0 feature as the first column if set
	FitIntercept bool `json:"fit_intercept"`
}

// NewDefaultLassoOptions returns a default set of Lasso Regression options
func NewDefaultLassoOptions() *LassoOptions {
	return &LassoOptions{
		Lambda:       DefaultLambda,
		Iterations:   DefaultIterations,
		Tolerance:    DefaultTolerance,
		FitIntercept: true,
	}
}

// Validate runs basic validation on Lasso options
func (l *LassoOptions) Validate() (*LassoOptions, error) {
	if l == nil {
		return NewDefaultLassoOptions(), nil
	}
	if l.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	if l.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if l.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if l.Iterations == 0 {
		l.Iterations = DefaultIterations
	}
	if l.Tolerance == 0 {
		l.Tolerance = DefaultTolerance
	}
	return l, nil
}

// LassoRegression computes the lasso regression using coordinate descent.
// lambda = 0 converges to OLS
type LassoRegression struct {
	opt       *LassoOptions
	coef      []float64
	intercept float64
}

func NewLassoRegression(opt *LassoOptions) (*LassoRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &LassoRegression{
		opt: opt,
	}, nil
}

// Fit runs coordinate descent minimizing the L1 penalized squared error.
func (l *LassoRegression) Fit(x, y mat.Matrix) error {
	if l.opt == nil {
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

	if l.opt.FitIntercept {
		x = withIntercept(x)
	}
	_, n := x.Dims()

	// per coordinate column views and dot products stay fixed across iterations
	xcols := make([][]float64, n)
	xdot := make([]float64, n)
	gamma := make([]float64, n)
	for j := 0; j < n; j++ {
		xcols[j] = mat.Col(nil, j, x)
		xdot[j] = floats.Dot(xcols[j], xcols[j])
		if xdot[j] == 0 {
			continue
		}
		gamma[j] = l.opt.Lambda / xdot[j]
	}
	yArr := mat.Col(nil, 0, y)

	beta := make([]float64, n)
	betaX := make([]float64, m)
	residual := make([]float64, m)

	for i := 0; i < l.opt.Iterations; i++ {
		maxCoef := 0.0
		maxUpdate := 0.0

		for j := 0; j < n; j++ {
			// all zero columns keep a zero coefficient
			if xdot[j] == 0 {
				continue
			}
			betaCurr := beta[j]
			if i != 0 && betaCurr == 0 {
				continue
			}

			floats.SubTo(residual, yArr, betaX)

			obsCol := xcols[j]
			betaNext := floats.Dot(obsCol, residual)/xdot[j] + betaCurr
			betaNext = SoftThreshold(betaNext, gamma[j])

			maxCoef = math.Max(maxCoef, math.Abs(betaNext))
			maxUpdate = math.Max(maxUpdate, math.Abs(betaNext-betaCurr))
			floats.AddScaled(betaX, betaNext-betaCurr, obsCol)
			beta[j] = betaNext
		}

		// break early once updates fall below the relative tolerance
		if maxUpdate < l.opt.Tolerance*maxCoef {
			break
		}
	}

	if l.opt.FitIntercept {
		l.intercept = beta[0]
		l.coef = beta[1:]
		return nil
	}
	l.coef = beta
	return nil
}

// Predict computes the estimate for each row of the design matrix.
func (l *LassoRegression) Predict(x mat.Matrix) ([]float64, error) {
	if l.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := l.coef
	if l.opt.FitIntercept {
		coef = append([]float64{l.intercept}, l.coef...)
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
func (l *LassoRegression) Score(x, y mat.Matrix) (float64, error) {
	if l.opt == nil {
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

	res, err := l.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)
	return stat.RSquaredFrom(res, ySlice, nil), nil
}

func (l *LassoRegression) Intercept() float64 {
	return l.intercept
}

func (l *LassoRegression) Coef() []float64 {
	c := make([]float64, len(l.coef))
	copy(c, l.coef)
	return c
}
