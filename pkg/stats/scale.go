package stats

import (
	"errors"
	"fmt"
)

// ErrDegenerateFeature reports a feature column with zero variance, which
// cannot be standardized.
var ErrDegenerateFeature = errors.New("stats: zero-variance feature")

// Scaler holds per-column standardization statistics. A Scaler is an
// immutable value produced by FitScaler; Transform never mutates it.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-column mean and standard deviation over X.
// Any column with zero standard deviation yields ErrDegenerateFeature.
func FitScaler(X [][]float64) (*Scaler, error) {
	if len(X) == 0 {
		return nil, errors.New("stats: empty matrix")
	}
	r, c := len(X), len(X[0])
	s := &Scaler{
		Mean: make([]float64, c),
		Std:  make([]float64, c),
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = X[i][j]
		}
		std := Std(col)
		if std == 0 {
			return nil, fmt.Errorf("%w: column %d", ErrDegenerateFeature, j)
		}
		s.Mean[j] = Mean(col)
		s.Std[j] = std
	}
	return s, nil
}

// Transform maps each value to (v - mean) / std and returns a new matrix.
func (s *Scaler) Transform(X [][]float64) [][]float64 {
	Y := make([][]float64, len(X))
	for i, row := range X {
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = (v - s.Mean[j]) / s.Std[j]
		}
		Y[i] = out
	}
	return Y
}
