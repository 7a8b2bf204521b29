package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"housepipe/pkg/dataprep"
	"housepipe/pkg/dataset"
	"housepipe/pkg/stats"
)

// writeHousingCSV produces a deterministic synthetic dataset. Row 0 is
// duplicated at the end to exercise deduplication.
func writeHousingCSV(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("price,sqft_living,bedrooms,bathrooms,year_built,floors\n")
	line := func(i int) string {
		sqft := 1000 + 25*i
		bedrooms := 1 + i%5
		bathrooms := 1 + i%3
		yearBuilt := 1950 + i%70
		floors := 1 + i%3
		price := 150*sqft + 20000*bedrooms + 15000*bathrooms + 100*(yearBuilt-1950) + 5000*floors
		return fmt.Sprintf("%d,%d,%d,%d,%d,%d\n", price, sqft, bedrooms, bathrooms, yearBuilt, floors)
	}
	for i := 0; i < rows; i++ {
		b.WriteString(line(i))
	}
	b.WriteString(line(0))

	path := filepath.Join(t.TempDir(), "housing.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func testConfig(t *testing.T, rows int) Config {
	cfg := DefaultConfig()
	cfg.InputPath = writeHousingCSV(t, rows)
	cfg.OutDir = t.TempDir()
	cfg.Trees = 30
	cfg.Stages = 50
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, 120)
	res, err := Run(cfg)
	require.NoError(t, err)

	// duplicate row dropped, 80/20 disjoint cover
	require.Equal(t, 120, res.NumRows)
	require.Equal(t, 24, res.NumTest)
	require.Equal(t, 96, res.NumTrain)
	require.Equal(t, res.NumRows, res.NumTrain+res.NumTest)

	// the target is strongly determined by the features
	require.Greater(t, res.ForestR2, 0.5)
	require.Greater(t, res.BoostR2, 0.5)
	require.LessOrEqual(t, res.ForestR2, 1.0)
	require.LessOrEqual(t, res.BoostR2, 1.0)

	require.Equal(t, dataprep.FeatureColumns, res.Features)
	sum := 0.0
	for _, v := range res.Importances {
		sum += v
	}
	require.InDelta(t, 1, sum, 1e-9)

	require.Len(t, res.ChartPaths, 3)
	for _, p := range res.ChartPaths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestRun_DeterministicForFixedSeed(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, 90)
	a, err := Run(cfg)
	require.NoError(t, err)
	b, err := Run(cfg)
	require.NoError(t, err)

	require.Equal(t, a.ForestR2, b.ForestR2)
	require.Equal(t, a.BoostR2, b.BoostR2)
	require.Equal(t, a.Importances, b.Importances)
}

func TestRun_MissingColumn(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("price,sqft_living\n1,2\n"), 0o644))

	cfg := DefaultConfig()
	cfg.InputPath = path
	_, err := Run(cfg)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestRun_ZeroLivingArea(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "zero.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"price,sqft_living,bedrooms,bathrooms,year_built,floors\n"+
			"500000,0,3,2,1994,1\n"+
			"300000,1500,2,1,2000,2\n"), 0o644))

	cfg := DefaultConfig()
	cfg.InputPath = path
	_, err := Run(cfg)
	require.ErrorIs(t, err, dataprep.ErrInvalidValue)
}

func TestRun_DegenerateFeature(t *testing.T) {
	t.Parallel()

	// constant floors column cannot be standardized
	var b strings.Builder
	b.WriteString("price,sqft_living,bedrooms,bathrooms,year_built,floors\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,1\n", 100000+1000*i, 1000+10*i, 1+i%4, 1+i%2, 1960+i)
	}
	path := filepath.Join(t.TempDir(), "flat.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	cfg := DefaultConfig()
	cfg.InputPath = path
	_, err := Run(cfg)
	require.ErrorIs(t, err, stats.ErrDegenerateFeature)
}

func TestRun_AllMissingColumn(t *testing.T) {
	t.Parallel()

	// bedrooms is empty in every row, so no fill statistic exists
	var b strings.Builder
	b.WriteString("price,sqft_living,bedrooms,bathrooms,year_built,floors\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "%d,%d,,%d,%d,%d\n", 100000+5000*i, 1000+30*i, 1+i%3, 1950+i, 1+i%2)
	}
	path := filepath.Join(t.TempDir(), "empty_col.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	cfg := DefaultConfig()
	cfg.InputPath = path
	_, err := Run(cfg)
	require.ErrorIs(t, err, dataprep.ErrAllMissing)
	require.ErrorContains(t, err, "bedrooms")
}

func TestRun_ClipOutliers(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, 120)
	cfg.ClipPercentile = 2

	res, err := Run(cfg)
	require.NoError(t, err)
	require.Equal(t, 120, res.NumRows)
	require.Greater(t, res.ForestR2, 0.5)
}

func TestRun_MedianImpute(t *testing.T) {
	t.Parallel()

	// one missing bedrooms cell, filled by the median strategy
	var b strings.Builder
	b.WriteString("price,sqft_living,bedrooms,bathrooms,year_built,floors\n")
	for i := 0; i < 30; i++ {
		bedrooms := fmt.Sprintf("%d", 1+i%5)
		if i == 3 {
			bedrooms = ""
		}
		fmt.Fprintf(&b, "%d,%d,%s,%d,%d,%d\n",
			100000+7000*i, 1000+40*i, bedrooms, 1+i%3, 1950+i, 1+i%2)
	}
	path := filepath.Join(t.TempDir(), "gaps.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	cfg := DefaultConfig()
	cfg.InputPath = path
	cfg.OutDir = t.TempDir()
	cfg.Trees = 10
	cfg.Stages = 10
	cfg.ImputeStrategy = "median"

	res, err := Run(cfg)
	require.NoError(t, err)
	require.Equal(t, 30, res.NumRows)
}
