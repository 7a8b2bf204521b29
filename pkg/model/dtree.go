package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"housepipe/pkg/stats"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeRegressor is a CART-style regression tree. Splits are chosen
// by variance reduction; leaves predict the mean target of their samples.
type DecisionTreeRegressor struct {
	// Hyperparameters / options
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	MaxFeatures         int     // 0 => use all features, >0 => number of features to sample per split
	MinImpurityDecrease float64 // minimal variance reduction to accept a split
	RandomState         int64   // seed for feature subsampling

	// internals
	root        *dtNode
	nFeatures   int
	nSamples    int
	importances []float64 // raw impurity-decrease sums, one per feature
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *dtNode
	right     *dtNode

	n     int
	value float64 // mean target of the samples at this node
}

// Option functional config
type Option func(*DecisionTreeRegressor)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeRegressor) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeRegressor) { t.MinSamplesLeaf = n }
}
func WithMaxFeatures(k int) Option { return func(t *DecisionTreeRegressor) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeRegressor) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeRegressor) { t.RandomState = seed }
}

// NewDecisionTreeRegressor returns a regressor with sensible defaults.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	d := &DecisionTreeRegressor{
		MaxDepth:            0,
		MinSamplesSplit:     2,
		MinSamplesLeaf:      1,
		MaxFeatures:         0,
		MinImpurityDecrease: 0.0,
		RandomState:         time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API: Fit / Predict / FeatureImportances
// ---------------------------

// Fit trains the tree on X (n x p) and y (n targets).
func (t *DecisionTreeRegressor) Fit(X [][]float64, y []float64) error {
	n := len(X)
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx)
}

// fitIndices trains on the given sample indices; indices may repeat, which
// is how ensembles pass bootstrap samples.
func (t *DecisionTreeRegressor) fitIndices(X [][]float64, y []float64, idx []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	if len(y) != len(X) {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}

	t.nFeatures = p
	t.nSamples = len(idx)
	t.importances = make([]float64, p)

	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.buildNode(X, y, idx, 0, rnd)
	return nil
}

// Predict returns the leaf mean for each row of X.
func (t *DecisionTreeRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = t.predictSingle(X[i])
	}
	return out
}

// FeatureImportances returns per-feature variance-reduction shares summing
// to 1 (all zeros for a stump that never split).
func (t *DecisionTreeRegressor) FeatureImportances() []float64 {
	out := make([]float64, len(t.importances))
	total := stats.Sum(t.importances)
	if total == 0 {
		return out
	}
	for i, v := range t.importances {
		out[i] = v / total
	}
	return out
}

// rawImportances exposes the unnormalized sums for ensemble aggregation.
func (t *DecisionTreeRegressor) rawImportances() []float64 {
	return t.importances
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult holds the outcome of a single feature's best split search.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

// pair is a named type for a value and its original index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeRegressor) buildNode(X [][]float64, y []float64, idx []int, depth int, rnd *rand.Rand) *dtNode {
	node := &dtNode{n: len(idx)}

	sum, sumSq := 0.0, 0.0
	for _, ii := range idx {
		v := y[ii]
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(len(idx))
	variance := sumSq/float64(len(idx)) - mean*mean
	if variance < 0 {
		variance = 0
	}
	node.value = mean

	// make leaf if pure or too few samples or depth reached
	if variance == 0 || (t.MinSamplesSplit > 0 && len(idx) < t.MinSamplesSplit) {
		node.isLeaf = true
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		node.isLeaf = true
		return node
	}

	// determine features to try
	p := t.nFeatures
	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < p; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
	}

	// Parallel search for the best split of each candidate feature. Results
	// land in a fixed slot per feature so the final pick does not depend on
	// goroutine scheduling.
	results := make([]splitResult, len(featIndices))
	var wg sync.WaitGroup
	for slot, f := range featIndices {
		wg.Add(1)
		go func(slot, f int) {
			defer wg.Done()
			results[slot] = t.findBestSplitForFeature(X, y, idx, f, variance)
		}(slot, f)
	}
	wg.Wait()

	best := splitResult{gain: 0.0, feature: -1}
	for _, r := range results {
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}

	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		node.isLeaf = true
		return node
	}

	// accepted split: record the weighted variance reduction
	t.importances[best.feature] += float64(len(idx)) / float64(t.nSamples) * best.gain

	node.isLeaf = false
	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, rnd)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, rnd)
	return node
}

// findBestSplitForFeature scans midpoint thresholds between distinct sorted
// values, tracking left/right variance with running sums.
func (t *DecisionTreeRegressor) findBestSplitForFeature(X [][]float64, y []float64, idx []int, f int, parentImpurity float64) splitResult {
	result := splitResult{gain: 0.0, feature: -1}

	sorted := make([]pair, 0, len(idx))
	for _, ii := range idx {
		sorted = append(sorted, pair{X[ii][f], ii})
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].v < sorted[b].v })

	n := len(sorted)
	totalSum, totalSumSq := 0.0, 0.0
	for _, pr := range sorted {
		v := y[pr.i]
		totalSum += v
		totalSumSq += v * v
	}

	leftSum, leftSumSq := 0.0, 0.0
	bestS := -1
	for s := 1; s < n; s++ {
		v := y[sorted[s-1].i]
		leftSum += v
		leftSumSq += v * v

		// only split between distinct values
		if sorted[s].v == sorted[s-1].v {
			continue
		}
		nL, nR := s, n-s
		if nL < t.MinSamplesLeaf || nR < t.MinSamplesLeaf {
			continue
		}

		meanL := leftSum / float64(nL)
		varL := leftSumSq/float64(nL) - meanL*meanL
		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq
		meanR := rightSum / float64(nR)
		varR := rightSumSq/float64(nR) - meanR*meanR

		weighted := varL*float64(nL)/float64(n) + varR*float64(nR)/float64(n)
		gain := parentImpurity - weighted
		if gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (sorted[s-1].v + sorted[s].v) / 2.0
			bestS = s
		}
	}

	if bestS >= 0 {
		result.leftIdx = indicesFromPairs(sorted[:bestS])
		result.rightIdx = indicesFromPairs(sorted[bestS:])
	}
	return result
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

// ---------------------------
// Prediction helper
// ---------------------------

func (t *DecisionTreeRegressor) predictSingle(x []float64) float64 {
	if t.root == nil {
		return 0
	}
	node := t.root
	for !node.isLeaf {
		val := x[node.feature]
		if math.IsNaN(val) {
			// missing: choose branch with more samples (heuristic)
			if node.left.n >= node.right.n {
				node = node.left
			} else {
				node = node.right
			}
			continue
		}
		if val <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}
