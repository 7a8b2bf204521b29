package model

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"housepipe/pkg/stats"
)

func MSE(yTrue, yPred []float64) float64 {
	n := float64(len(yTrue))
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / n
}

func MAE(yTrue, yPred []float64) float64 {
	n := float64(len(yTrue))
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		if d < 0 {
			d = -d
		}
		s += d
	}
	return s / n
}

func RMSE(yTrue, yPred []float64) float64 { return math.Sqrt(MSE(yTrue, yPred)) }

// R2 is the coefficient of determination: 1 is perfect, 0 matches predicting
// the mean, negative is worse than the mean. A constant target has no
// variance to explain and scores 0.
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	if stats.Variance(yTrue) == 0 {
		return 0
	}
	return stat.RSquaredFrom(yPred, yTrue, nil)
}
