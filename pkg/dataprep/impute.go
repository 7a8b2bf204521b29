// Package dataprep fills missing values and derives the engineered feature
// columns used for modeling.
package dataprep

import (
	"errors"
	"math"

	"housepipe/pkg/stats"
)

// ErrAllMissing reports a column with no present values, for which no fill
// statistic is defined.
var ErrAllMissing = errors.New("dataprep: column has no present values")

// ImputeMean replaces NaN entries with the mean of the non-NaN entries.
// The column mean is computed over present values only.
func ImputeMean(col []float64) ([]float64, error) {
	return imputeWith(col, stats.Mean)
}

// ImputeMedian replaces NaN entries with the median of the non-NaN entries.
func ImputeMedian(col []float64) ([]float64, error) {
	return imputeWith(col, stats.Median)
}

func imputeWith(col []float64, fill func([]float64) float64) ([]float64, error) {
	present := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(col) > 0 && len(present) == 0 {
		return nil, ErrAllMissing
	}
	out := make([]float64, len(col))
	fillVal := fill(present)
	for i, v := range col {
		if math.IsNaN(v) {
			out[i] = fillVal
		} else {
			out[i] = v
		}
	}
	return out, nil
}
