package pipeline

import (
	"housepipe/pkg/stats"
)

// vectorize standardizes the feature matrix. Scaler statistics are fit on
// the full dataset before splitting.
func vectorize(X [][]float64) ([][]float64, error) {
	scaler, err := stats.FitScaler(X)
	if err != nil {
		return nil, err
	}
	return scaler.Transform(X), nil
}
