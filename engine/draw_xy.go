package engine

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// XY CHARTS: bar, horizontal_bar, line, area
// ============================================================================
// One row becomes one point. Rows whose y is missing are skipped.
// ============================================================================

// rendered is what every draw routine hands back to the renderer.
type rendered struct {
	image []byte
	data  ChartData
}

type drawFunc func(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error)

// xLabel returns row i's x value as text. Without an x column the row
// index is used, which is how the dashboard draws numeric panels.
func xLabel(ds *dataset.Dataset, req ChartRequest, i int) string {
	if req.XColumn == "" {
		return strconv.Itoa(i)
	}
	col, _ := ds.Column(req.XColumn)
	return col.Label(i)
}

func errNoData(column string) error {
	return fmt.Errorf("column %q has no values to plot", column)
}

// drawBars draws one bar per row: height from y, label from x.
func drawBars(horizontal bool) drawFunc {
	return func(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
		ys, err := numericValues(ds, req.YColumn)
		if err != nil {
			return rendered{}, err
		}

		var (
			heights plotter.Values
			labels  []string
			points  []Point
		)
		for i, y := range ys {
			if math.IsNaN(y) {
				continue
			}
			label := xLabel(ds, req, i)
			points = append(points, Point{Label: label, X: float64(len(heights)), Y: y})
			heights = append(heights, y)
			labels = append(labels, label)
		}
		if len(heights) == 0 {
			return rendered{}, errNoData(req.YColumn)
		}

		p := newPlot(f)
		bars, err := plotter.NewBarChart(heights, barWidth(cfg, len(heights)))
		if err != nil {
			return rendered{}, fmt.Errorf("failed to build bars: %w", err)
		}
		bars.Color = paletteColor(0)
		bars.LineStyle.Width = vg.Length(0)
		bars.Horizontal = horizontal
		p.Add(bars)

		if horizontal {
			p.NominalY(labels...)
		} else {
			p.NominalX(labels...)
		}

		img, err := encodePlot(p, cfg)
		if err != nil {
			return rendered{}, err
		}
		return rendered{image: img, data: ChartData{Points: points}}, nil
	}
}

// drawLine connects (x, y) points in row order. A numeric x column gives
// the coordinates directly; a categorical one is laid out by position.
func drawLine(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
	ys, err := numericValues(ds, req.YColumn)
	if err != nil {
		return rendered{}, err
	}
	xcol, _ := ds.Column(req.XColumn)

	var (
		xys    plotter.XYs
		labels []string
		points []Point
	)
	for i, y := range ys {
		x := float64(len(xys))
		if xcol.IsNumeric() {
			x = xcol.Float(i)
		}
		if math.IsNaN(y) || math.IsNaN(x) {
			continue
		}
		label := xLabel(ds, req, i)
		xys = append(xys, plotter.XY{X: x, Y: y})
		labels = append(labels, label)
		points = append(points, Point{Label: label, X: x, Y: y})
	}
	if len(xys) == 0 {
		return rendered{}, errNoData(req.YColumn)
	}

	p := newPlot(f)
	line, err := plotter.NewLine(xys)
	if err != nil {
		return rendered{}, fmt.Errorf("failed to build line: %w", err)
	}
	line.Color = paletteColor(0)
	line.Width = vg.Points(2)
	p.Add(line)

	marks, err := plotter.NewScatter(xys)
	if err != nil {
		return rendered{}, fmt.Errorf("failed to build markers: %w", err)
	}
	marks.Color = paletteColor(0)
	marks.Radius = vg.Points(2)
	p.Add(marks)

	if !xcol.IsNumeric() {
		p.NominalX(labels...)
	}

	img, err := encodePlot(p, cfg)
	if err != nil {
		return rendered{}, err
	}
	return rendered{image: img, data: ChartData{Points: points}}, nil
}

// drawArea fills the region between zero and y, with the row index on x.
func drawArea(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
	ys, err := numericValues(ds, req.YColumn)
	if err != nil {
		return rendered{}, err
	}

	var (
		outline plotter.XYs
		points  []Point
	)
	for i, y := range ys {
		if math.IsNaN(y) {
			continue
		}
		x := float64(i)
		outline = append(outline, plotter.XY{X: x, Y: y})
		points = append(points, Point{Label: strconv.Itoa(i), X: x, Y: y})
	}
	if len(outline) == 0 {
		return rendered{}, errNoData(req.YColumn)
	}

	// Close the outline down to the zero baseline.
	first, last := outline[0].X, outline[len(outline)-1].X
	region := make(plotter.XYs, 0, len(outline)+2)
	region = append(region, plotter.XY{X: first, Y: 0})
	region = append(region, outline...)
	region = append(region, plotter.XY{X: last, Y: 0})

	p := newPlot(f)
	fill, err := plotter.NewPolygon(region)
	if err != nil {
		return rendered{}, fmt.Errorf("failed to build area: %w", err)
	}
	fill.Color = paletteColor(0)
	fill.LineStyle.Width = vg.Length(0)
	p.Add(fill)

	edge, err := plotter.NewLine(outline)
	if err != nil {
		return rendered{}, fmt.Errorf("failed to build area edge: %w", err)
	}
	edge.Color = paletteColor(9)
	p.Add(edge)

	img, err := encodePlot(p, cfg)
	if err != nil {
		return rendered{}, err
	}
	return rendered{image: img, data: ChartData{Points: points}}, nil
}
