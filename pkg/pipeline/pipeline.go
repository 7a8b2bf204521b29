// Package pipeline wires the housing price stages end to end: load, clean,
// engineer, scale, split, fit, score, plot. Each stage returns a value the
// next stage consumes; nothing is held as hidden mutable state.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"housepipe/pkg/dataprep"
	"housepipe/pkg/dataset"
	"housepipe/pkg/loader"
	"housepipe/pkg/model"
	"housepipe/pkg/report"
	"housepipe/pkg/stats"
)

// Config holds every tunable of a run.
type Config struct {
	InputPath      string
	OutDir         string
	ReferenceYear  int     // year used for the age feature
	TestRatio      float64 // fraction of rows held out for testing
	Seed           int64   // split and model seeds derive from this
	Trees          int     // random forest size
	Stages         int     // boosting stages
	LearnRate      float64 // boosting shrinkage
	ImputeStrategy string  // "mean" or "median"
	ClipPercentile float64 // clip raw columns to [p, 100-p]; 0 disables
}

// DefaultConfig returns the standard run configuration.
func DefaultConfig() Config {
	return Config{
		InputPath:      "housing.csv",
		OutDir:         ".",
		ReferenceYear:  2024,
		TestRatio:      0.2,
		Seed:           42,
		Trees:          100,
		Stages:         100,
		LearnRate:      0.1,
		ImputeStrategy: "mean",
		ClipPercentile: 0,
	}
}

// Result carries the scores and artifacts of a completed run.
type Result struct {
	ForestR2    float64
	BoostR2     float64
	ForestRMSE  float64
	BoostRMSE   float64
	Features    []string
	Importances []float64 // forest importances, aligned with Features
	NumRows     int
	NumTrain    int
	NumTest     int
	ChartPaths  []string
}

// Run executes the full pipeline and returns the scores. The first failing
// stage aborts the run; nothing is retried.
func Run(cfg Config) (*Result, error) {
	tbl, err := dataset.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	loaded := tbl.NumRows()
	tbl.DropDuplicateRows()
	slog.Info("loaded dataset", "path", cfg.InputPath, "rows", loaded, "deduped", tbl.NumRows())

	impute := dataprep.ImputeMean
	if cfg.ImputeStrategy == "median" {
		impute = dataprep.ImputeMedian
	}
	for _, name := range dataset.RequiredColumns {
		col, _ := tbl.Col(name)
		filled, err := impute(col)
		if err != nil {
			return nil, fmt.Errorf("pipeline: impute %s: %w", name, err)
		}
		if cfg.ClipPercentile > 0 {
			filled = stats.ClipOutliers(filled, cfg.ClipPercentile, 100-cfg.ClipPercentile)
		}
		if err := tbl.SetCol(name, filled); err != nil {
			return nil, err
		}
	}

	if err := dataprep.Derive(tbl, cfg.ReferenceYear); err != nil {
		return nil, err
	}

	X, err := tbl.Matrix(dataprep.FeatureColumns...)
	if err != nil {
		return nil, err
	}
	prices, _ := tbl.Col(dataprep.TargetColumn)

	scaled, err := vectorize(X)
	if err != nil {
		return nil, err
	}

	XTrain, XTest, yTrain, yTest := loader.TrainTestSplit(scaled, prices, cfg.TestRatio, cfg.Seed)
	slog.Info("split dataset", "train", len(XTrain), "test", len(XTest))

	forest := model.NewRandomForestRegressor(
		model.WithNEstimators(cfg.Trees),
		model.WithBootstrap(true),
		model.WithForestRandomState(cfg.Seed),
	)
	if err := forest.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("pipeline: forest fit: %w", err)
	}
	forestPred := forest.Predict(XTest)

	boost := model.NewGradientBoosting(
		model.WithNStages(cfg.Stages),
		model.WithLearnRate(cfg.LearnRate),
		model.WithBoostRandomState(cfg.Seed),
	)
	if err := boost.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("pipeline: boosting fit: %w", err)
	}
	boostPred := boost.Predict(XTest)

	res := &Result{
		ForestR2:    model.R2(yTest, forestPred),
		BoostR2:     model.R2(yTest, boostPred),
		ForestRMSE:  model.RMSE(yTest, forestPred),
		BoostRMSE:   model.RMSE(yTest, boostPred),
		Features:    dataprep.FeatureColumns,
		Importances: forest.FeatureImportances(),
		NumRows:     tbl.NumRows(),
		NumTrain:    len(XTrain),
		NumTest:     len(XTest),
	}
	slog.Info("scored models",
		"forest_r2", fmt.Sprintf("%.4f", res.ForestR2),
		"boost_r2", fmt.Sprintf("%.4f", res.BoostR2))

	charts := []struct {
		name   string
		render func(string) error
	}{
		{"price_distribution.png", func(p string) error { return report.PriceHistogram(prices, p) }},
		{"feature_importance.png", func(p string) error {
			return report.ImportanceBars(res.Features, res.Importances, p)
		}},
		{"actual_vs_predicted.png", func(p string) error {
			return report.PredictionScatter(yTest, forestPred, p)
		}},
	}
	for _, c := range charts {
		path := filepath.Join(cfg.OutDir, c.name)
		if err := c.render(path); err != nil {
			return nil, err
		}
		res.ChartPaths = append(res.ChartPaths, path)
	}

	return res, nil
}
