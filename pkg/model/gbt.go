package model

import (
	"errors"
	"time"

	"housepipe/pkg/stats"
)

// GradientBoosting fits shallow regression trees sequentially, each on the
// residuals of the ensemble so far, scaled by a shrinkage factor. Stages
// cannot run in parallel: every tree needs the previous residuals.
type GradientBoosting struct {
	// Hyperparameters / options
	NEstimators     int
	LearnRate       float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	RandomState     int64

	// Internal state
	base  float64 // initial prediction: mean of the training target
	trees []*DecisionTreeRegressor
}

// GradientBoostingOption functional config for GradientBoosting
type GradientBoostingOption func(*GradientBoosting)

func WithNStages(n int) GradientBoostingOption {
	return func(gb *GradientBoosting) { gb.NEstimators = n }
}
func WithLearnRate(lr float64) GradientBoostingOption {
	return func(gb *GradientBoosting) { gb.LearnRate = lr }
}
func WithBoostMaxDepth(d int) GradientBoostingOption {
	return func(gb *GradientBoosting) { gb.MaxDepth = d }
}
func WithBoostRandomState(seed int64) GradientBoostingOption {
	return func(gb *GradientBoosting) { gb.RandomState = seed }
}

// NewGradientBoosting initializes the booster with sensible defaults.
func NewGradientBoosting(opts ...GradientBoostingOption) *GradientBoosting {
	gb := &GradientBoosting{
		NEstimators:     100,
		LearnRate:       0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(gb)
	}
	return gb
}

// Fit trains the boosted ensemble on X and y.
func (gb *GradientBoosting) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("gbt: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("gbt: X and y length mismatch")
	}
	if gb.LearnRate <= 0 {
		return errors.New("gbt: learn rate must be positive")
	}

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	gb.base = sum / float64(n)

	// current ensemble prediction per training row
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = gb.base
	}

	residual := make([]float64, n)
	gb.trees = make([]*DecisionTreeRegressor, 0, gb.NEstimators)
	for stage := 0; stage < gb.NEstimators; stage++ {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}

		tree := NewDecisionTreeRegressor(
			WithMaxDepth(gb.MaxDepth),
			WithMinSamplesSplit(gb.MinSamplesSplit),
			WithMinSamplesLeaf(gb.MinSamplesLeaf),
			WithRandomState(gb.RandomState+int64(stage)),
		)
		if err := tree.Fit(X, residual); err != nil {
			return err
		}
		gb.trees = append(gb.trees, tree)

		update := tree.Predict(X)
		for i := range pred {
			pred[i] += gb.LearnRate * update[i]
		}
	}
	return nil
}

// Predict returns base + lr * sum of stage outputs for each row.
func (gb *GradientBoosting) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = gb.base
	}
	for _, tree := range gb.trees {
		update := tree.Predict(X)
		for i := range out {
			out[i] += gb.LearnRate * update[i]
		}
	}
	return out
}

// FeatureImportances sums stage-tree variance reductions and normalizes
// the shares to 1.
func (gb *GradientBoosting) FeatureImportances() []float64 {
	if len(gb.trees) == 0 {
		return nil
	}
	out := make([]float64, gb.trees[0].nFeatures)
	for _, tree := range gb.trees {
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
