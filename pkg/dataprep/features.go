package dataprep

import (
	"errors"
	"fmt"

	"housepipe/pkg/dataset"
)

// ErrInvalidValue reports a row whose values make a derived feature
// undefined, such as a zero living area.
var ErrInvalidValue = errors.New("dataprep: invalid value")

// TargetColumn is the prediction target.
const TargetColumn = "price"

// FeatureColumns is the fixed, ordered feature set used for modeling.
// The order must match between scaler fitting and prediction.
var FeatureColumns = []string{
	"sqft_living",
	"bedrooms",
	"bathrooms",
	"age",
	"price_per_sqft",
	"total_rooms",
	"floors",
}

// Derive appends the engineered columns to the table:
//
//	age            = refYear - year_built
//	price_per_sqft = price / sqft_living
//	total_rooms    = bedrooms + bathrooms
//
// A zero sqft_living makes price_per_sqft undefined and fails with
// ErrInvalidValue rather than producing Inf.
func Derive(t *dataset.Table, refYear int) error {
	price, ok := t.Col("price")
	if !ok {
		return fmt.Errorf("dataprep: no price column")
	}
	sqft, ok := t.Col("sqft_living")
	if !ok {
		return fmt.Errorf("dataprep: no sqft_living column")
	}
	bedrooms, ok := t.Col("bedrooms")
	if !ok {
		return fmt.Errorf("dataprep: no bedrooms column")
	}
	bathrooms, ok := t.Col("bathrooms")
	if !ok {
		return fmt.Errorf("dataprep: no bathrooms column")
	}
	yearBuilt, ok := t.Col("year_built")
	if !ok {
		return fmt.Errorf("dataprep: no year_built column")
	}

	n := t.NumRows()
	age := make([]float64, n)
	ppsf := make([]float64, n)
	rooms := make([]float64, n)
	for i := 0; i < n; i++ {
		if sqft[i] == 0 {
			return fmt.Errorf("%w: sqft_living is zero at row %d", ErrInvalidValue, i)
		}
		age[i] = float64(refYear) - yearBuilt[i]
		ppsf[i] = price[i] / sqft[i]
		rooms[i] = bedrooms[i] + bathrooms[i]
	}

	if err := t.AddCol("age", age); err != nil {
		return err
	}
	if err := t.AddCol("price_per_sqft", ppsf); err != nil {
		return err
	}
	return t.AddCol("total_rooms", rooms)
}
