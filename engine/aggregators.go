package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// AGGREGATORS: Value counts, equal-width bins, five-number summary
// ============================================================================
// Pure functions over plain slices. The draw routines call these first and
// hand the results both to the plotting library and to ChartData.
// ============================================================================

// numericValues returns the column as float64s, or an error when the
// column holds categorical data.
func numericValues(ds *dataset.Dataset, name string) ([]float64, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if !col.IsNumeric() {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return col.Floats(), nil
}

// dropNaN returns the finite, non-missing values in order.
func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// ValueCounts groups a column by distinct value. Slices are ordered by
// count descending; ties keep first-appearance order. Missing values are
// not counted. Percentages sum to 100 within float rounding.
func ValueCounts(col dataset.Column) []Slice {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, label := range col.Labels() {
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	total := 0
	slices := make([]Slice, len(order))
	for i, label := range order {
		slices[i] = Slice{Label: label, Count: counts[label]}
		total += counts[label]
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Count > slices[j].Count
	})

	for i := range slices {
		slices[i].Percent = float64(slices[i].Count) / float64(total) * 100
	}
	return slices
}

// EqualWidthBins buckets values into n bins spanning [min, max].
// A constant series gets the range [v-0.5, v+0.5] so bins keep a width.
func EqualWidthBins(values []float64, n int) []Bin {
	values = dropNaN(values)
	if len(values) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}

	lo, hi := minMax(values)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	bins[n-1].Max = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}
	return bins
}

// Summarize computes min, Q1, median, Q3 and max. Quartiles use linear
// interpolation between the closest ranks.
func Summarize(values []float64) (FiveNumber, error) {
	sorted := dropNaN(values)
	if len(sorted) == 0 {
		return FiveNumber{}, fmt.Errorf("no numeric values to summarize")
	}
	sort.Float64s(sorted)

	return FiveNumber{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		N:      len(sorted),
	}, nil
}

// quantile expects sorted input.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// RoundTo2 rounds to two decimals for labels.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
