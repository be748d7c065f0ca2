package schema

import (
	"encoding/json"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// SCHEMA: Per-column kind tags for a loaded dataset
// ============================================================================
// Computed once by Classify and reused: the dashboard reads it to decide
// which chart each column gets. A Schema never changes after it is built.
// ============================================================================

// ColumnTag is the classification of one column.
type ColumnTag struct {
	Name     string       `json:"name"`
	Position int          `json:"position"`
	Kind     dataset.Kind `json:"kind"`
}

// Schema is the immutable result of classifying a dataset.
type Schema struct {
	tags        []ColumnTag
	numeric     []string
	categorical []string
}

// Tags returns one tag per column in dataset order.
func (s Schema) Tags() []ColumnTag {
	out := make([]ColumnTag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Numeric returns numeric column names in dataset order.
func (s Schema) Numeric() []string { return cloneStrings(s.numeric) }

// Categorical returns non-numeric column names in dataset order.
func (s Schema) Categorical() []string { return cloneStrings(s.categorical) }

// Len returns the number of classified columns.
func (s Schema) Len() int { return len(s.tags) }

// IsEmpty is true when neither class has any column.
func (s Schema) IsEmpty() bool {
	return len(s.numeric) == 0 && len(s.categorical) == 0
}

// KindOf returns the kind recorded for a column.
func (s Schema) KindOf(name string) (dataset.Kind, bool) {
	for _, t := range s.tags {
		if t.Name == name {
			return t.Kind, true
		}
	}
	return dataset.Categorical, false
}

// MarshalJSON encodes the tags and both class lists. Empty classes encode
// as [] rather than null.
func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Columns     []ColumnTag `json:"columns"`
		Numeric     []string    `json:"numeric"`
		Categorical []string    `json:"categorical"`
	}{s.Tags(), s.Numeric(), s.Categorical()})
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
