package engine

import (
	"strings"
)

// ============================================================================
// CHART KINDS: Closed set of supported visualizations
// ============================================================================
// Each kind has a stable tag ("bar"), the label the upload UI shows
// ("Bar Chart"), and whether the rendering rule reads the x column.
// ============================================================================

// ChartKind is one of the seven supported chart kinds.
type ChartKind int

const (
	Bar ChartKind = iota
	HorizontalBar
	Line
	Pie
	Histogram
	BoxPlot
	Area
)

type kindInfo struct {
	tag   string
	label string
	usesX bool
}

var kindTable = [...]kindInfo{
	Bar:           {tag: "bar", label: "Bar Chart", usesX: true},
	HorizontalBar: {tag: "horizontal_bar", label: "Horizontal Bar Chart", usesX: true},
	Line:          {tag: "line", label: "Line Graph", usesX: true},
	Pie:           {tag: "pie", label: "Pie Chart"},
	Histogram:     {tag: "histogram", label: "Histogram"},
	BoxPlot:       {tag: "box_plot", label: "Box Plot"},
	Area:          {tag: "area", label: "Area Plot"},
}

// Kinds returns every supported kind in menu order.
func Kinds() []ChartKind {
	out := make([]ChartKind, len(kindTable))
	for i := range kindTable {
		out[i] = ChartKind(i)
	}
	return out
}

// Valid reports whether k is one of the supported kinds.
func (k ChartKind) Valid() bool {
	return k >= 0 && int(k) < len(kindTable)
}

// String returns the kind's tag, e.g. "horizontal_bar".
func (k ChartKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindTable[k].tag
}

// Label returns the human-facing name, e.g. "Horizontal Bar Chart".
func (k ChartKind) Label() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindTable[k].label
}

// UsesX reports whether the rendering rule reads the x column.
// Kinds that don't (pie, histogram, box_plot, area) only need y.
func (k ChartKind) UsesX() bool {
	return k.Valid() && kindTable[k].usesX
}

// ParseChartKind accepts a tag ("box_plot") or a UI label ("Box Plot").
// Matching ignores case and surrounding whitespace; "-" and " " are
// treated like "_" for tags.
func ParseChartKind(s string) (ChartKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	tagForm := strings.NewReplacer(" ", "_", "-", "_").Replace(norm)

	for i, info := range kindTable {
		if tagForm == info.tag || norm == strings.ToLower(info.label) {
			return ChartKind(i), nil
		}
	}
	return 0, &ValidationError{Field: "kind", Value: s, Reason: "unsupported chart kind"}
}

// MarshalText encodes the kind as its tag.
func (k ChartKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a tag or label.
func (k *ChartKind) UnmarshalText(text []byte) error {
	parsed, err := ParseChartKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
