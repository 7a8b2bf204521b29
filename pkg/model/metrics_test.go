package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestR2(t *testing.T) {
	t.Parallel()

	yTrue := []float64{1, 2, 3, 4, 5}

	// perfect predictions
	require.InDelta(t, 1, R2(yTrue, yTrue), 1e-12)

	// predicting the mean everywhere scores exactly zero
	mean := []float64{3, 3, 3, 3, 3}
	require.InDelta(t, 0, R2(yTrue, mean), 1e-12)

	// worse than the mean is negative
	bad := []float64{5, 4, 3, 2, 1}
	require.Less(t, R2(yTrue, bad), 0.0)
}

func TestR2_ConstantTarget(t *testing.T) {
	t.Parallel()

	// a constant target has zero variance; the score is 0, never NaN or -Inf
	flat := []float64{5, 5, 5}
	require.Equal(t, 0.0, R2(flat, []float64{4, 5, 6}))
	require.Equal(t, 0.0, R2(flat, flat))
}

func TestErrorMetrics(t *testing.T) {
	t.Parallel()

	yTrue := []float64{0, 0, 0, 0}
	yPred := []float64{1, -1, 2, -2}

	require.InDelta(t, 2.5, MSE(yTrue, yPred), 1e-12)
	require.InDelta(t, 1.5, MAE(yTrue, yPred), 1e-12)
	require.InDelta(t, 1.5811388300841898, RMSE(yTrue, yPred), 1e-12)
}
