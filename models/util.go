package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoRows      = errors.New("no rows to build a matrix from")
	ErrColMismatch = errors.New("rows have inconsistent column counts")
)

// NewDenseFromRows builds a dense design matrix from row-major feature
// vectors. NaN entries, used as padding markers upstream, are mapped to zero
// which is the neutral value for mean-centered features.
func NewDenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	n := len(rows[0])
	x := mat.NewDense(len(rows), n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns instead of %d, %w", i, len(row), n, ErrColMismatch)
		}
		for j, val := range row {
			if math.IsNaN(val) {
				val = 0.0
			}
			x.Set(i, j, val)
		}
	}
	return x, nil
}

// withIntercept prepends a constant 1.0 column to the design matrix.
func withIntercept(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)

	var stacked mat.Dense
	stacked.Stack(onesMx, x.T())
	return stacked.T()
}

// SoftThreshold shrinks x toward zero by gamma, the proximal operator of the
// L1 penalty.
func SoftThreshold(x, gamma float64) float64 {
	res := math.Max(math.Abs(x)-gamma, 0.0)
	if x < 0 {
		return -res
	}
	return res
}
