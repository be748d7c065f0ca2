package schema

import (
	"github.com/spektr-org/vizdeck/dataset"
)

// Classify partitions the dataset's columns into numeric and categorical.
// It is a stable partition: each output keeps the dataset's column order.
// Every column lands in exactly one class. Empty classes are not an error.
func Classify(ds *dataset.Dataset) Schema {
	var s Schema
	if ds == nil {
		return s
	}

	for i, col := range ds.Columns() {
		tag := ColumnTag{Name: col.Name(), Position: i, Kind: col.Kind()}
		s.tags = append(s.tags, tag)

		switch tag.Kind {
		case dataset.Numeric:
			s.numeric = append(s.numeric, tag.Name)
		default:
			s.categorical = append(s.categorical, tag.Name)
		}
	}

	return s
}
