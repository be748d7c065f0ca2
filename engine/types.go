package engine

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// VIZDECK ENGINE TYPES
// ============================================================================
// ChartRequest:   what the caller asks for (kind + columns)
// ChartArtifact:  the rendered, immutable chart handed back to the caller
// ChartData:      the numbers behind the picture (points, slices, bins, box)
// DashboardLayout: one Panel per dataset column plus the stacked figure
// ============================================================================

// ChartRequest selects a chart kind and the columns it reads.
// YColumn is always required. XColumn is required for bar,
// horizontal_bar and line; other kinds ignore it, but a non-empty
// XColumn must still name an existing column.
type ChartRequest struct {
	Kind    ChartKind `json:"kind"`
	XColumn string    `json:"x,omitempty"`
	YColumn string    `json:"y"`
}

// ============================================================================
// CHART DATA: geometry computed while rendering
// ============================================================================

// Point is one plotted (x, y) pair. Label is the x value as text.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Slice is one pie wedge.
type Slice struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Bin is one equal-width histogram bucket [Min, Max).
// The last bin also includes Max.
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// FiveNumber is the box plot summary.
type FiveNumber struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	N      int     `json:"n"`
}

// ChartData holds whichever geometry the chart kind produced.
type ChartData struct {
	Points  []Point     `json:"points,omitempty"`
	Slices  []Slice     `json:"slices,omitempty"`
	Bins    []Bin       `json:"bins,omitempty"`
	Summary *FiveNumber `json:"summary,omitempty"`
}

func (d ChartData) clone() ChartData {
	out := ChartData{
		Points: append([]Point(nil), d.Points...),
		Slices: append([]Slice(nil), d.Slices...),
		Bins:   append([]Bin(nil), d.Bins...),
	}
	if d.Summary != nil {
		s := *d.Summary
		out.Summary = &s
	}
	return out
}

// ============================================================================
// CHART ARTIFACT
// ============================================================================

// ChartArtifact is a rendered chart. It cannot be modified once built;
// every accessor hands out a copy.
type ChartArtifact struct {
	id     uuid.UUID
	kind   ChartKind
	title  string
	xLabel string
	yLabel string
	format Format
	width  int
	height int
	image  []byte
	data   ChartData
}

func (a *ChartArtifact) ID() uuid.UUID    { return a.id }
func (a *ChartArtifact) Kind() ChartKind  { return a.kind }
func (a *ChartArtifact) Title() string    { return a.title }
func (a *ChartArtifact) XLabel() string   { return a.xLabel }
func (a *ChartArtifact) YLabel() string   { return a.yLabel }
func (a *ChartArtifact) Format() Format   { return a.format }
func (a *ChartArtifact) Size() (int, int) { return a.width, a.height }
func (a *ChartArtifact) Data() ChartData  { return a.data.clone() }

// ContentType returns the MIME type of Bytes.
func (a *ChartArtifact) ContentType() string { return a.format.ContentType() }

// Bytes returns a copy of the encoded image.
func (a *ChartArtifact) Bytes() []byte {
	return append([]byte(nil), a.image...)
}

type artifactJSON struct {
	ID     string    `json:"id"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"xLabel,omitempty"`
	YLabel string    `json:"yLabel,omitempty"`
	Format Format    `json:"format"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Data   ChartData `json:"data"`
	Image  []byte    `json:"image,omitempty"` // base64 in JSON
}

// MarshalJSON exposes the artifact's metadata and base64 image.
func (a *ChartArtifact) MarshalJSON() ([]byte, error) {
	return json.Marshal(artifactJSON{
		ID:     a.id.String(),
		Kind:   a.kind,
		Title:  a.title,
		XLabel: a.xLabel,
		YLabel: a.yLabel,
		Format: a.format,
		Width:  a.width,
		Height: a.height,
		Data:   a.data,
		Image:  a.image,
	})
}

// ============================================================================
// DASHBOARD TYPES
// ============================================================================

// Panel is one chart in a dashboard together with the column it shows.
type Panel struct {
	Column   string         `json:"column"`
	Kind     dataset.Kind   `json:"kind"`
	Artifact *ChartArtifact `json:"artifact"`
}

// DashboardLayout is the ordered set of panels (numeric columns first,
// then categorical, each in dataset order) and the figure that stacks
// them vertically.
type DashboardLayout struct {
	panels []Panel
	figure []byte
	width  int
	height int
}

// Panels returns the panels in display order.
func (l *DashboardLayout) Panels() []Panel {
	return append([]Panel(nil), l.panels...)
}

// Len returns the number of panels (grid rows).
func (l *DashboardLayout) Len() int { return len(l.panels) }

// Figure returns a copy of the composed PNG.
func (l *DashboardLayout) Figure() []byte {
	return append([]byte(nil), l.figure...)
}

// Size returns the composed figure's pixel size.
func (l *DashboardLayout) Size() (int, int) { return l.width, l.height }

// MarshalJSON lists panels with their artifacts; the composed figure is omitted.
func (l *DashboardLayout) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Panels []Panel `json:"panels"`
		Width  int     `json:"width"`
		Height int     `json:"height"`
	}{l.panels, l.width, l.height})
}
