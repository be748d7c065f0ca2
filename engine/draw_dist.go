package engine

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// DISTRIBUTION CHARTS: histogram, box_plot
// ============================================================================
// Both read y only and need numeric data. Categorical input fails here and
// reaches the caller as a RenderError.
// ============================================================================

func drawHistogram(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
	ys, err := numericValues(ds, req.YColumn)
	if err != nil {
		return rendered{}, err
	}
	bins := EqualWidthBins(ys, cfg.Bins)
	if len(bins) == 0 {
		return rendered{}, errNoData(req.YColumn)
	}

	hb := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hb[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}

	p := newPlot(f)
	p.Add(&plotter.Histogram{
		Bins:      hb,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: paletteColor(0),
		LineStyle: plotter.DefaultLineStyle,
	})

	img, err := encodePlot(p, cfg)
	if err != nil {
		return rendered{}, err
	}
	return rendered{image: img, data: ChartData{Bins: bins}}, nil
}

// drawBoxPlot draws the box from Q1 to Q3 with the median line and
// whiskers reaching the minimum and maximum.
func drawBoxPlot(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
	ys, err := numericValues(ds, req.YColumn)
	if err != nil {
		return rendered{}, err
	}
	values := dropNaN(ys)
	summary, err := Summarize(values)
	if err != nil {
		return rendered{}, fmt.Errorf("column %q: %w", req.YColumn, err)
	}

	box, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(values))
	if err != nil {
		return rendered{}, fmt.Errorf("failed to build box plot: %w", err)
	}
	box.Quartile1 = summary.Q1
	box.Median = summary.Median
	box.Quartile3 = summary.Q3
	box.AdjLow = summary.Min
	box.AdjHigh = summary.Max
	box.Min = summary.Min
	box.Max = summary.Max
	box.Outside = nil
	box.FillColor = paletteColor(0)

	p := newPlot(f)
	p.Add(box)
	p.NominalX(req.YColumn)

	img, err := encodePlot(p, cfg)
	if err != nil {
		return rendered{}, err
	}
	return rendered{image: img, data: ChartData{Summary: &summary}}, nil
}
