package engine

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ============================================================================
// CHART BUILDER: Shared plot setup, palette and encoding
// ============================================================================
// gonum/plot draws every axis-based kind; go-chart draws pies. Both take
// their colors from the same palette so a dashboard looks consistent.
// ============================================================================

// screenDPI is the resolution gonum's image canvas uses by default.
const screenDPI = 96

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// paletteColor returns the i-th palette entry, wrapping around.
func paletteColor(i int) drawing.Color {
	hex := defaultColors[i%len(defaultColors)]
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// frame carries the text around a chart: title and axis labels.
type frame struct {
	title  string
	xLabel string
	yLabel string
}

// frameFor derives the title and axis labels for a request.
//
//	bar of salary against dept
//	histogram of salary
func frameFor(req ChartRequest, cfg *config) frame {
	f := frame{title: fmt.Sprintf("%s of %s", req.Kind, req.YColumn)}
	if req.Kind.UsesX() {
		f.title = fmt.Sprintf("%s of %s against %s", req.Kind, req.YColumn, req.XColumn)
	}
	if cfg.Title != "" {
		f.title = cfg.Title
	}

	switch req.Kind {
	case Bar, Line:
		f.xLabel, f.yLabel = req.XColumn, req.YColumn
	case HorizontalBar:
		f.xLabel, f.yLabel = req.YColumn, req.XColumn
	case Area:
		f.xLabel, f.yLabel = "Index", req.YColumn
	case Histogram:
		f.xLabel, f.yLabel = req.YColumn, "Count"
	case BoxPlot:
		f.yLabel = req.YColumn
	}
	return f
}

// newPlot creates a gonum plot carrying the frame's text.
func newPlot(f frame) *plot.Plot {
	p := plot.New()
	p.Title.Text = f.title
	p.X.Label.Text = f.xLabel
	p.Y.Label.Text = f.yLabel
	p.Add(plotter.NewGrid())
	return p
}

// pixels converts a pixel count to a gonum length at screenDPI.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / screenDPI
}

// encodePlot renders a gonum plot to PNG or SVG bytes.
func encodePlot(p *plot.Plot, cfg *config) ([]byte, error) {
	writer, err := p.WriterTo(pixels(cfg.Width), pixels(cfg.Height), string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot: %w", err)
	}
	return buf.Bytes(), nil
}

// barWidth spreads n bars across roughly 80% of the plot width.
func barWidth(cfg *config, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	w := pixels(cfg.Width) * 0.8 / vg.Length(n)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	if w < vg.Points(1) {
		w = vg.Points(1)
	}
	return w
}
