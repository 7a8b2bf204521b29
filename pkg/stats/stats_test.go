package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanStd(t *testing.T) {
	t.Parallel()

	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	require.InDelta(t, 5, Mean(x), 1e-12)
	require.InDelta(t, 2, Std(x), 1e-12)
	require.Equal(t, 0.0, Mean(nil))
}

func TestMedian(t *testing.T) {
	t.Parallel()

	require.Equal(t, 3.0, Median([]float64{5, 3, 1}))
	require.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	require.Equal(t, 0.0, Median(nil))
}

func TestMinMaxSum(t *testing.T) {
	t.Parallel()

	lo, hi := MinMax([]float64{3, -2, 8, 0})
	require.Equal(t, -2.0, lo)
	require.Equal(t, 8.0, hi)
	require.Equal(t, 9.0, Sum([]float64{3, -2, 8, 0}))
}
