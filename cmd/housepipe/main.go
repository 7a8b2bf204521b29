package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"housepipe/pkg/pipeline"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --input      : Path to input CSV file. Default = housing.csv
// --out        : Directory for chart PNGs. Default = current directory
// --year       : Reference year for the age feature. Default = 2024
// --test-ratio : Fraction of rows held out for testing. Default = 0.2
// --seed       : Seed for the split and both models. Default = 42
// --trees      : Number of random forest trees. Default = 100
// --stages     : Number of boosting stages. Default = 100
// --learn-rate : Boosting shrinkage. Default = 0.1
// --impute     : Missing value strategy: "mean" or "median"
// --clip       : Clip raw columns to the [p, 100-p] percentiles; 0 disables
//
// Example:
//   go run ./cmd/housepipe --input housing.csv --out charts --seed 7
//
// ---------------------------------------------------------------------
//

func main() {
	cfg := pipeline.DefaultConfig()
	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Path to input CSV file")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Directory for chart PNGs")
	flag.IntVar(&cfg.ReferenceYear, "year", cfg.ReferenceYear, "Reference year for the age feature")
	flag.Float64Var(&cfg.TestRatio, "test-ratio", cfg.TestRatio, "Fraction of rows held out for testing")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the split and both models")
	flag.IntVar(&cfg.Trees, "trees", cfg.Trees, "Number of random forest trees")
	flag.IntVar(&cfg.Stages, "stages", cfg.Stages, "Number of boosting stages")
	flag.Float64Var(&cfg.LearnRate, "learn-rate", cfg.LearnRate, "Boosting shrinkage")
	flag.StringVar(&cfg.ImputeStrategy, "impute", cfg.ImputeStrategy, "Missing value strategy: mean or median")
	flag.Float64Var(&cfg.ClipPercentile, "clip", cfg.ClipPercentile, "Clip raw columns to the [p, 100-p] percentiles; 0 disables")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	res, err := pipeline.Run(cfg)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Random Forest R² Score: %.4f\n", res.ForestR2)
	fmt.Printf("XGBoost R² Score: %.4f\n", res.BoostR2)
	for _, p := range res.ChartPaths {
		slog.Info("wrote chart", "path", p)
	}
}
