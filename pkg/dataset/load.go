package dataset

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// ErrMissingColumn reports an input file that lacks a required column.
var ErrMissingColumn = errors.New("dataset: missing required column")

// RequiredColumns are the raw columns every input file must provide.
var RequiredColumns = []string{
	"price",
	"sqft_living",
	"bedrooms",
	"bathrooms",
	"year_built",
	"floors",
}

// Load reads a delimited file into a Table holding the required columns.
// Cells that fail to parse as numbers come back as NaN and are imputed
// downstream.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Error() != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, df.Error())
	}

	have := make(map[string]struct{}, len(df.Names()))
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}

	t := &Table{}
	for _, name := range RequiredColumns {
		if _, ok := have[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		// gota maps NA and unparseable cells to NaN here.
		t.Names = append(t.Names, name)
		t.Cols = append(t.Cols, df.Col(name).Float())
	}
	return t, nil
}
