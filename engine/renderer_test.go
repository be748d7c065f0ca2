package engine

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// FIXTURES
// ============================================================================

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func staffDataset() *dataset.Dataset {
	return dataset.MustNew(
		dataset.NumericColumn("age", 25, 30, 35),
		dataset.CategoricalColumn("dept", "eng", "eng", "sales"),
	)
}

func salesDataset() *dataset.Dataset {
	return dataset.MustNew(
		dataset.CategoricalColumn("region", "North", "South", "East", "West", "North", "South"),
		dataset.NumericColumn("month", 1, 2, 3, 4, 5, 6),
		dataset.NumericColumn("revenue", 120.5, 98, 143.25, math.NaN(), 110, 87.75),
		dataset.NumericColumn("units", 12, 9, 15, 7, 11, 8),
	)
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestRenderMissingColumnsFailValidation(t *testing.T) {
	ds := staffDataset()

	tests := []struct {
		name string
		req  ChartRequest
	}{
		{"unknown y", ChartRequest{Kind: Bar, XColumn: "dept", YColumn: "salary"}},
		{"unknown x", ChartRequest{Kind: Bar, XColumn: "team", YColumn: "age"}},
		{"unknown x on pie", ChartRequest{Kind: Pie, XColumn: "team", YColumn: "dept"}},
		{"unknown y on histogram", ChartRequest{Kind: Histogram, YColumn: "height"}},
		{"missing y", ChartRequest{Kind: Area, XColumn: "age"}},
		{"missing x for line", ChartRequest{Kind: Line, YColumn: "age"}},
		{"missing x for horizontal bar", ChartRequest{Kind: HorizontalBar, YColumn: "age"}},
		{"invalid kind", ChartRequest{Kind: ChartKind(42), XColumn: "age", YColumn: "age"}},
		{"case sensitive names", ChartRequest{Kind: Line, XColumn: "Age", YColumn: "age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art, err := Render(ds, tt.req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
			if art != nil {
				t.Error("no artifact should be produced on validation failure")
			}
		})
	}
}

func TestRenderNilDataset(t *testing.T) {
	_, err := Render(nil, ChartRequest{Kind: Pie, YColumn: "dept"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for nil dataset, got %v", err)
	}
}

func TestRenderYOnlyKindsIgnoreMissingX(t *testing.T) {
	ds := salesDataset()
	for _, kind := range []ChartKind{Pie, Histogram, BoxPlot, Area} {
		art, err := Render(ds, ChartRequest{Kind: kind, YColumn: "units"})
		if err != nil {
			t.Errorf("%s without x: unexpected error %v", kind, err)
			continue
		}
		if art.Kind() != kind {
			t.Errorf("artifact kind = %s, want %s", art.Kind(), kind)
		}
	}
}

// ============================================================================
// RENDERING
// ============================================================================

func TestRenderEveryKindProducesPNG(t *testing.T) {
	ds := salesDataset()

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			req := ChartRequest{Kind: kind, XColumn: "region", YColumn: "revenue"}
			if kind == Pie {
				req.YColumn = "region"
			}

			art, err := Render(ds, req, WithSize(400, 300))
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !bytes.HasPrefix(art.Bytes(), pngMagic) {
				t.Error("artifact is not a PNG image")
			}
			if art.Format() != PNG || art.ContentType() != "image/png" {
				t.Errorf("format = %s (%s), want png", art.Format(), art.ContentType())
			}
			if w, h := art.Size(); w != 400 || h != 300 {
				t.Errorf("size = %dx%d, want 400x300", w, h)
			}
			if art.ID().String() == "" {
				t.Error("artifact has no ID")
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	ds := salesDataset()
	for _, req := range []ChartRequest{
		{Kind: Line, XColumn: "month", YColumn: "units"},
		{Kind: Pie, YColumn: "region"},
	} {
		art, err := Render(ds, req, WithFormat(SVG))
		if err != nil {
			t.Fatalf("%s: Render failed: %v", req.Kind, err)
		}
		if !strings.Contains(string(art.Bytes()), "<svg") {
			t.Errorf("%s: expected SVG output", req.Kind)
		}
		if art.ContentType() != "image/svg+xml" {
			t.Errorf("%s: content type = %s", req.Kind, art.ContentType())
		}
	}
}

func TestRenderTitlesAndAxisLabels(t *testing.T) {
	ds := staffDataset()

	tests := []struct {
		req    ChartRequest
		title  string
		xLabel string
		yLabel string
	}{
		{ChartRequest{Kind: Bar, XColumn: "dept", YColumn: "age"}, "bar of age against dept", "dept", "age"},
		{ChartRequest{Kind: HorizontalBar, XColumn: "dept", YColumn: "age"}, "horizontal_bar of age against dept", "age", "dept"},
		{ChartRequest{Kind: Line, XColumn: "age", YColumn: "age"}, "line of age against age", "age", "age"},
		{ChartRequest{Kind: Pie, XColumn: "age", YColumn: "dept"}, "pie of dept", "", ""},
		{ChartRequest{Kind: Histogram, YColumn: "age"}, "histogram of age", "age", "Count"},
		{ChartRequest{Kind: BoxPlot, YColumn: "age"}, "box_plot of age", "", "age"},
		{ChartRequest{Kind: Area, YColumn: "age"}, "area of age", "Index", "age"},
	}

	for _, tt := range tests {
		art, err := Render(ds, tt.req)
		if err != nil {
			t.Errorf("%s: Render failed: %v", tt.req.Kind, err)
			continue
		}
		if art.Title() != tt.title {
			t.Errorf("%s: title = %q, want %q", tt.req.Kind, art.Title(), tt.title)
		}
		if art.XLabel() != tt.xLabel || art.YLabel() != tt.yLabel {
			t.Errorf("%s: labels = (%q, %q), want (%q, %q)",
				tt.req.Kind, art.XLabel(), art.YLabel(), tt.xLabel, tt.yLabel)
		}
	}
}

func TestRenderTitleOverride(t *testing.T) {
	art, err := Render(staffDataset(), ChartRequest{Kind: Histogram, YColumn: "age"}, WithTitle("Ages"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if art.Title() != "Ages" {
		t.Errorf("title = %q, want Ages", art.Title())
	}
}

func TestRenderLineWithSameColumnOnBothAxes(t *testing.T) {
	art, err := Render(staffDataset(), ChartRequest{Kind: Line, XColumn: "age", YColumn: "age"})
	if err != nil {
		t.Fatalf("x == y should be legal, got %v", err)
	}

	points := art.Data().Points
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, p := range points {
		if p.X != p.Y {
			t.Errorf("point %d = (%v, %v), want identity", i, p.X, p.Y)
		}
		if i > 0 && p.X <= points[i-1].X {
			t.Errorf("points not monotonic at %d: %v after %v", i, p.X, points[i-1].X)
		}
	}
}

func TestRenderLineCategoricalXUsesPositions(t *testing.T) {
	art, err := Render(staffDataset(), ChartRequest{Kind: Line, XColumn: "dept", YColumn: "age"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	points := art.Data().Points
	want := []Point{{"eng", 0, 25}, {"eng", 1, 30}, {"sales", 2, 35}}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestRenderBarOneBarPerRow(t *testing.T) {
	art, err := Render(salesDataset(), ChartRequest{Kind: Bar, XColumn: "region", YColumn: "revenue"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	points := art.Data().Points
	// Row 3 has a missing revenue and is skipped
	if len(points) != 5 {
		t.Fatalf("got %d bars, want 5", len(points))
	}
	if points[0].Label != "North" || points[0].Y != 120.5 {
		t.Errorf("first bar = %+v, want North/120.5", points[0])
	}
	if points[3].Label != "North" || points[3].Y != 110 {
		t.Errorf("fourth bar = %+v, want North/110", points[3])
	}
}

func TestRenderAreaStartsAtRowIndex(t *testing.T) {
	art, err := Render(salesDataset(), ChartRequest{Kind: Area, XColumn: "region", YColumn: "units"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, p := range art.Data().Points {
		if p.X != float64(i) {
			t.Errorf("point %d has x=%v, want row index %d", i, p.X, i)
		}
	}
}

func TestRenderPieSumsToHundred(t *testing.T) {
	art, err := Render(staffDataset(), ChartRequest{Kind: Pie, XColumn: "age", YColumn: "dept"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	slices := art.Data().Slices
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}
	if slices[0].Label != "eng" || slices[0].Count != 2 {
		t.Errorf("first slice = %+v, want eng x2", slices[0])
	}
	if slices[1].Label != "sales" || slices[1].Count != 1 {
		t.Errorf("second slice = %+v, want sales x1", slices[1])
	}

	sum := 0.0
	for _, s := range slices {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("slice percentages sum to %v, want 100", sum)
	}
}

func TestRenderPieOnNumericColumn(t *testing.T) {
	ds := dataset.MustNew(dataset.NumericColumn("score", 1, 2, 2, 3, 3, 3))
	art, err := Render(ds, ChartRequest{Kind: Pie, YColumn: "score"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	slices := art.Data().Slices
	if slices[0].Label != "3" || slices[0].Count != 3 {
		t.Errorf("largest slice = %+v, want 3 x3", slices[0])
	}
}

func TestRenderHistogramBins(t *testing.T) {
	ds := dataset.MustNew(dataset.NumericColumn("v", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	art, err := Render(ds, ChartRequest{Kind: Histogram, YColumn: "v"}, WithBins(5))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	bins := art.Data().Bins
	if len(bins) != 5 {
		t.Fatalf("got %d bins, want 5", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 11 {
		t.Errorf("bin counts sum to %d, want 11", total)
	}
}

func TestRenderBoxPlotSummary(t *testing.T) {
	ds := dataset.MustNew(dataset.NumericColumn("v", 7, 1, 3, 5, 9))
	art, err := Render(ds, ChartRequest{Kind: BoxPlot, YColumn: "v"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	got := art.Data().Summary
	want := FiveNumber{Min: 1, Q1: 3, Median: 5, Q3: 7, Max: 9, N: 5}
	if got == nil || *got != want {
		t.Errorf("summary = %+v, want %+v", got, want)
	}
}

// ============================================================================
// RENDER ERRORS
// ============================================================================

func TestRenderNumericRulesRejectCategoricalData(t *testing.T) {
	ds := staffDataset()

	for _, kind := range []ChartKind{Histogram, BoxPlot, Bar, HorizontalBar, Line, Area} {
		art, err := Render(ds, ChartRequest{Kind: kind, XColumn: "dept", YColumn: "dept"})
		if err == nil {
			t.Errorf("%s on categorical y: expected error", kind)
			continue
		}
		if !errors.Is(err, ErrRender) {
			t.Errorf("%s: expected ErrRender, got %v", kind, err)
		}
		var rerr *RenderError
		if !errors.As(err, &rerr) {
			t.Errorf("%s: expected *RenderError, got %T", kind, err)
			continue
		}
		if rerr.Unwrap() == nil || !strings.Contains(rerr.Error(), "not numeric") {
			t.Errorf("%s: render error should carry its cause, got %q", kind, rerr.Error())
		}
		if art != nil {
			t.Errorf("%s: no artifact expected on failure", kind)
		}
	}
}

func TestRenderAllMissingValuesFails(t *testing.T) {
	ds := dataset.MustNew(dataset.NumericColumn("v", math.NaN(), math.NaN()))
	_, err := Render(ds, ChartRequest{Kind: Histogram, YColumn: "v"})
	if !errors.Is(err, ErrRender) {
		t.Errorf("expected ErrRender for all-NaN column, got %v", err)
	}
}

func TestRenderRecoversFromPanics(t *testing.T) {
	saved := renderers[Area]
	renderers[Area] = func(*dataset.Dataset, ChartRequest, frame, *config) (rendered, error) {
		panic("boom")
	}
	defer func() { renderers[Area] = saved }()

	art, err := Render(staffDataset(), ChartRequest{Kind: Area, YColumn: "age"})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender after panic, got %v", err)
	}
	if art != nil {
		t.Error("no artifact expected after panic")
	}
}

func TestRenderLeavesDatasetUntouched(t *testing.T) {
	ds := salesDataset()
	before := snapshot(ds)

	for _, kind := range Kinds() {
		Render(ds, ChartRequest{Kind: kind, XColumn: "region", YColumn: "revenue"})
	}

	after := snapshot(ds)
	if before != after {
		t.Errorf("dataset changed during rendering:\nbefore %s\nafter  %s", before, after)
	}
}

func TestArtifactIsImmutable(t *testing.T) {
	art, err := Render(staffDataset(), ChartRequest{Kind: Pie, YColumn: "dept"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img := art.Bytes()
	img[0] = 0
	data := art.Data()
	data.Slices[0].Count = 99

	if !bytes.HasPrefix(art.Bytes(), pngMagic) {
		t.Error("artifact image changed through Bytes()")
	}
	if art.Data().Slices[0].Count != 2 {
		t.Error("artifact data changed through Data()")
	}
}

// ============================================================================
// CHART KINDS
// ============================================================================

func TestParseChartKind(t *testing.T) {
	tests := []struct {
		input string
		want  ChartKind
	}{
		{"bar", Bar},
		{"Bar Chart", Bar},
		{"horizontal_bar", HorizontalBar},
		{"Horizontal Bar Chart", HorizontalBar},
		{"horizontal-bar", HorizontalBar},
		{"Line Graph", Line},
		{" PIE ", Pie},
		{"histogram", Histogram},
		{"box plot", BoxPlot},
		{"Area Plot", Area},
	}
	for _, tt := range tests {
		got, err := ParseChartKind(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseChartKind(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}

	for _, bad := range []string{"", "Stacked Bar Chart", "scatter"} {
		if _, err := ParseChartKind(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseChartKind(%q) should fail validation, got %v", bad, err)
		}
	}
}

func TestChartKindText(t *testing.T) {
	if len(Kinds()) != 7 {
		t.Errorf("expected 7 kinds, got %d", len(Kinds()))
	}
	for _, k := range Kinds() {
		text, _ := k.MarshalText()
		var back ChartKind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Errorf("kind %s did not survive text encoding: %v", k, err)
		}
	}
	if ChartKind(-1).Valid() || ChartKind(-1).String() != "unknown" {
		t.Error("negative kind should be invalid")
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func snapshot(ds *dataset.Dataset) string {
	var b strings.Builder
	for _, col := range ds.Columns() {
		b.WriteString(col.Name())
		b.WriteString(":")
		b.WriteString(strings.Join(col.Labels(), ","))
		b.WriteString(";")
	}
	return b.String()
}
