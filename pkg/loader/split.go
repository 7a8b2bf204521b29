// Package loader partitions datasets into train and test subsets.
package loader

import "math/rand"

// TrainTestSplit splits X, y into disjoint train and test sets by ratio.
// The permutation is drawn from a private RNG seeded with seed, so the
// same seed always yields the same split.
func TrainTestSplit(X [][]float64, y []float64, testRatio float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []float64) {
	n := len(X)
	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(n)
	nTest := int(float64(n) * testRatio)
	for i, idx := range indices {
		if i < nTest {
			XTest = append(XTest, X[idx])
			yTest = append(yTest, y[idx])
		} else {
			XTrain = append(XTrain, X[idx])
			yTrain = append(yTrain, y[idx])
		}
	}
	return
}
