// Package report renders the diagnostic charts for a pipeline run.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"housepipe/pkg/stats"
)

// PriceHistogram saves a histogram of raw sale prices.
func PriceHistogram(prices []float64, filename string) error {
	p := plot.New()
	p.Title.Text = "Sale Price Distribution"
	p.X.Label.Text = "Price"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(prices), 16)
	if err != nil {
		return fmt.Errorf("report: price histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("report: save %s: %w", filename, err)
	}
	return nil
}

// ImportanceBars saves a bar chart of per-feature importance shares.
func ImportanceBars(names []string, importances []float64, filename string) error {
	if len(names) != len(importances) {
		return fmt.Errorf("report: %d names for %d importances", len(names), len(importances))
	}
	p := plot.New()
	p.Title.Text = "Feature Importances (Random Forest)"
	p.Y.Label.Text = "Importance"

	bars, err := plotter.NewBarChart(plotter.Values(importances), vg.Points(24))
	if err != nil {
		return fmt.Errorf("report: importance bars: %w", err)
	}
	bars.Color = color.RGBA{R: 200, G: 120, B: 40, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -0.8

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("report: save %s: %w", filename, err)
	}
	return nil
}

// PredictionScatter saves an actual-vs-predicted scatter with a y=x
// reference line.
func PredictionScatter(actual, predicted []float64, filename string) error {
	if len(actual) != len(predicted) {
		return fmt.Errorf("report: %d actual for %d predicted", len(actual), len(predicted))
	}
	p := plot.New()
	p.Title.Text = "Actual vs Predicted Price"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"

	pts := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("report: prediction scatter: %w", err)
	}
	s.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	p.Add(s)

	// y = x reference across the actual range
	lo, hi := stats.MinMax(actual)
	line, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return fmt.Errorf("report: reference line: %w", err)
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("report: save %s: %w", filename, err)
	}
	return nil
}
