package dataset

import (
	"fmt"
	"strings"
)

// ============================================================================
// DATASET: Ordered, named, equal-length columns
// ============================================================================
// The loader builds a Dataset once per upload. Everything downstream
// (classifier, renderer, dashboard) reads it and never writes to it.
// ============================================================================

// Dataset is an in-memory table of named columns that align by row position.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a Dataset from columns in the given order.
// Column names must be unique and non-empty; all columns must have the same length.
func New(columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if strings.TrimSpace(col.name) == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := ds.index[col.name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.name)
		}
		if i == 0 {
			ds.rows = col.Len()
		} else if col.Len() != ds.rows {
			return nil, fmt.Errorf("column %q has %d values, want %d", col.name, col.Len(), ds.rows)
		}
		ds.index[col.name] = i
		ds.columns = append(ds.columns, col)
	}

	return ds, nil
}

// MustNew is New for fixtures; it panics on an invalid layout.
func MustNew(columns ...Column) *Dataset {
	ds, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Names returns column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Has reports whether a column with this exact name exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Columns returns all columns in dataset order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Rows returns up to limit rows as text, one slice per row in column
// order. A limit of zero or less returns every row.
func (d *Dataset) Rows(limit int) [][]string {
	n := d.rows
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([][]string, n)
	for i := range out {
		row := make([]string, len(d.columns))
		for j, c := range d.columns {
			row[j] = c.Label(i)
		}
		out[i] = row
	}
	return out
}
