package model

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"housepipe/pkg/stats"
)

// RandomForestRegressor averages an ensemble of bagged regression trees.
type RandomForestRegressor struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	// Internal state
	trees []*DecisionTreeRegressor
}

// RandomForestOption functional config for RandomForestRegressor
type RandomForestOption func(*RandomForestRegressor)

func WithNEstimators(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.NEstimators = n }
}
func WithBootstrap(b bool) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.Bootstrap = b }
}
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxFeatures = k }
}
func WithForestRandomState(seed int64) RandomForestOption {
	return func(rf *RandomForestRegressor) { rf.RandomState = seed }
}

// NewRandomForestRegressor initializes the forest with sensible defaults.
func NewRandomForestRegressor(opts ...RandomForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest, one goroutine per tree. Each tree gets its own
// derived seed so runs with the same RandomState are reproducible.
func (rf *RandomForestRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}

	rf.trees = make([]*DecisionTreeRegressor, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(idx)))

			// Bootstrap sampling: an index slice, not a copy of the data.
			sampleIndices := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			tree := NewDecisionTreeRegressor(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(rf.MaxFeatures),
				WithRandomState(rf.RandomState+int64(idx)),
			)
			if err := tree.fitIndices(X, y, sampleIndices); err != nil {
				errCh <- err
				return
			}
			rf.trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// Predict returns the mean prediction across all trees.
func (rf *RandomForestRegressor) Predict(X [][]float64) []float64 {
	n := len(X)
	out := make([]float64, n)
	if len(rf.trees) == 0 {
		return out
	}

	// Fan out per tree into fixed slots; the final averaging runs in tree
	// order so results do not depend on scheduling.
	perTree := make([][]float64, len(rf.trees))
	var wg sync.WaitGroup
	for i, tree := range rf.trees {
		wg.Add(1)
		go func(i int, t *DecisionTreeRegressor) {
			defer wg.Done()
			perTree[i] = t.Predict(X)
		}(i, tree)
	}
	wg.Wait()

	for _, preds := range perTree {
		for i, v := range preds {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(rf.trees))
	}
	return out
}

// FeatureImportances sums each tree's variance-reduction totals and
// normalizes across the forest so the shares sum to 1.
func (rf *RandomForestRegressor) FeatureImportances() []float64 {
	if len(rf.trees) == 0 {
		return nil
	}
	out := make([]float64, rf.trees[0].nFeatures)
	for _, tree := range rf.trees {
		for j, v := range tree.rawImportances() {
			out[j] += v
		}
	}
	total := stats.Sum(out)
	if total == 0 {
		return out
	}
	for j := range out {
		out[j] /= total
	}
	return out
}
