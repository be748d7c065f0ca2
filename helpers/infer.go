package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// KIND INFERENCE: Raw cells → typed columns
// ============================================================================
// A column is numeric when every non-null cell parses as a number.
// Null markers are allowed in either kind and become NaN / "".
// Anything else (dates, booleans, free text) stays categorical.
// ============================================================================

var nullMarkers = map[string]bool{
	"":     true,
	"null": true,
	"NULL": true,
	"N/A":  true,
	"n/a":  true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
}

func isNull(s string) bool {
	return nullMarkers[strings.TrimSpace(s)]
}

// parseNumber accepts integers and floats, with surrounding whitespace.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// detectKind inspects every cell of a column.
// A column that is entirely null is categorical.
func detectKind(cells []string) dataset.Kind {
	seen := 0
	for _, c := range cells {
		if isNull(c) {
			continue
		}
		if _, ok := parseNumber(c); !ok {
			return dataset.Categorical
		}
		seen++
	}
	if seen == 0 {
		return dataset.Categorical
	}
	return dataset.Numeric
}

// buildColumn converts raw cells into a typed column.
func buildColumn(name string, cells []string) dataset.Column {
	if detectKind(cells) == dataset.Numeric {
		nums := make([]float64, len(cells))
		for i, c := range cells {
			if v, ok := parseNumber(c); ok && !isNull(c) {
				nums[i] = v
			} else {
				nums[i] = math.NaN()
			}
		}
		return dataset.NumericColumn(name, nums...)
	}

	strs := make([]string, len(cells))
	for i, c := range cells {
		if !isNull(c) {
			strs[i] = strings.TrimSpace(c)
		}
	}
	return dataset.CategoricalColumn(name, strs...)
}

// buildDataset turns a header and row-major cells into a Dataset.
// Short rows are padded with nulls; extra cells beyond the header are dropped.
// Blank headers become "Unnamed: i" and repeated names get ".1", ".2" suffixes.
func buildDataset(headers []string, rows [][]string) (*dataset.Dataset, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("file has no columns")
	}

	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if names[i] == "" {
			names[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}
	names = dedupeNames(names)

	columns := make([]dataset.Column, len(names))
	for ci, name := range names {
		cells := make([]string, len(rows))
		for ri, row := range rows {
			if ci < len(row) {
				cells[ri] = row[ci]
			}
		}
		columns[ci] = buildColumn(name, cells)
	}

	return dataset.New(columns...)
}

// dedupeNames keeps the first occurrence of a name and renames later ones
// to name.1, name.2, ..., skipping suffixes already taken.
func dedupeNames(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	next := make(map[string]int)

	for i, name := range names {
		candidate := name
		for taken[candidate] {
			next[name]++
			candidate = fmt.Sprintf("%s.%d", name, next[name])
		}
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}
