// Package dataset loads delimited housing data into an in-memory column table.
package dataset

import (
	"fmt"
)

// Table is a column-major view of the loaded data. Missing entries are
// represented as math.NaN in the column slices.
type Table struct {
	Names []string
	Cols  [][]float64
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return len(t.Cols[0])
}

// Col returns the column with the given name.
func (t *Table) Col(name string) ([]float64, bool) {
	for i, n := range t.Names {
		if n == name {
			return t.Cols[i], true
		}
	}
	return nil, false
}

// SetCol replaces the named column. The replacement must have the same length.
func (t *Table) SetCol(name string, vals []float64) error {
	for i, n := range t.Names {
		if n != name {
			continue
		}
		if len(vals) != len(t.Cols[i]) {
			return fmt.Errorf("dataset: column %s length %d != %d", name, len(vals), len(t.Cols[i]))
		}
		t.Cols[i] = vals
		return nil
	}
	return fmt.Errorf("dataset: no column %s", name)
}

// AddCol appends a new column to the table.
func (t *Table) AddCol(name string, vals []float64) error {
	if t.NumRows() != 0 && len(vals) != t.NumRows() {
		return fmt.Errorf("dataset: column %s length %d != %d", name, len(vals), t.NumRows())
	}
	if _, ok := t.Col(name); ok {
		return fmt.Errorf("dataset: duplicate column %s", name)
	}
	t.Names = append(t.Names, name)
	t.Cols = append(t.Cols, vals)
	return nil
}

// Matrix extracts the named columns as a row-major matrix, in the given order.
func (t *Table) Matrix(names ...string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		c, ok := t.Col(name)
		if !ok {
			return nil, fmt.Errorf("dataset: no column %s", name)
		}
		cols[i] = c
	}
	X := make([][]float64, t.NumRows())
	for i := range X {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c[i]
		}
		X[i] = row
	}
	return X, nil
}

// DropDuplicateRows removes rows that are exact duplicates of an earlier row,
// preserving first occurrences and row order.
func (t *Table) DropDuplicateRows() {
	n := t.NumRows()
	seen := make(map[string]struct{}, n)
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		key := ""
		for _, c := range t.Cols {
			key += fmt.Sprintf("%v|", c[i])
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == n {
		return
	}
	for ci, c := range t.Cols {
		out := make([]float64, 0, len(keep))
		for _, i := range keep {
			out = append(out, c[i])
		}
		t.Cols[ci] = out
	}
}
