package dataset

import (
	"math"
	"strconv"
)

// Kind is the value kind of a column, fixed when the column is built.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// MarshalText lets Kind appear as "numeric"/"categorical" in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Column is one named, single-kind series of values.
// Numeric columns hold float64 (NaN = missing); categorical columns hold
// strings ("" = missing). Column values are shared with the dataset and
// only ever exposed through copies.
type Column struct {
	name string
	kind Kind
	nums []float64
	strs []string
}

// NumericColumn builds a numeric column. Integers are stored as float64.
func NumericColumn(name string, values ...float64) Column {
	nums := make([]float64, len(values))
	copy(nums, values)
	return Column{name: name, kind: Numeric, nums: nums}
}

// CategoricalColumn builds a categorical column.
func CategoricalColumn(name string, values ...string) Column {
	strs := make([]string, len(values))
	copy(strs, values)
	return Column{name: name, kind: Categorical, strs: strs}
}

func (c Column) Name() string { return c.name }
func (c Column) Kind() Kind   { return c.kind }

// Len returns the number of values.
func (c Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.strs)
}

// IsNumeric reports whether the column holds numbers.
func (c Column) IsNumeric() bool { return c.kind == Numeric }

// Float returns the i-th value of a numeric column, NaN otherwise.
func (c Column) Float(i int) float64 {
	if c.kind != Numeric || i < 0 || i >= len(c.nums) {
		return math.NaN()
	}
	return c.nums[i]
}

// Floats returns a copy of a numeric column's values, or nil for categorical.
func (c Column) Floats() []float64 {
	if c.kind != Numeric {
		return nil
	}
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out
}

// Label returns the i-th value rendered as text.
// Missing values come back as "".
func (c Column) Label(i int) string {
	if i < 0 || i >= c.Len() {
		return ""
	}
	if c.kind == Categorical {
		return c.strs[i]
	}
	return FormatNumber(c.nums[i])
}

// Labels returns every value rendered as text.
func (c Column) Labels() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Label(i)
	}
	return out
}

// FormatNumber renders whole numbers without decimals and NaN as "".
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
