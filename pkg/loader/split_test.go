package loader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func makeData(n int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	return X, y
}

func TestTrainTestSplit_Sizes(t *testing.T) {
	t.Parallel()

	X, y := makeData(100)
	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, 0.2, 1)

	require.Len(t, XTest, 20)
	require.Len(t, XTrain, 80)
	require.Len(t, yTest, 20)
	require.Len(t, yTrain, 80)
}

func TestTrainTestSplit_DisjointCover(t *testing.T) {
	t.Parallel()

	X, y := makeData(57)
	XTrain, XTest, _, _ := TrainTestSplit(X, y, 0.2, 99)

	seen := map[float64]int{}
	for _, row := range XTrain {
		seen[row[0]]++
	}
	for _, row := range XTest {
		seen[row[0]]++
	}
	// every row appears exactly once across the two partitions
	require.Len(t, seen, 57)
	for _, count := range seen {
		require.Equal(t, 1, count)
	}
}

func TestTrainTestSplit_SeedReproducibility(t *testing.T) {
	t.Parallel()

	X, y := makeData(40)

	XTrain1, XTest1, yTrain1, yTest1 := TrainTestSplit(X, y, 0.25, 7)
	XTrain2, XTest2, yTrain2, yTest2 := TrainTestSplit(X, y, 0.25, 7)
	require.Equal(t, XTrain1, XTrain2)
	require.Equal(t, XTest1, XTest2)
	require.Equal(t, yTrain1, yTrain2)
	require.Equal(t, yTest1, yTest2)

	// a different seed produces a different permutation
	_, XTest3, _, _ := TrainTestSplit(X, y, 0.25, 8)
	require.NotEqual(t, XTest1, XTest3)
}
