package engine

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/spektr-org/vizdeck/dataset"
)

// drawPie counts y's distinct values and draws one slice per value,
// labelled with its share of the total.
func drawPie(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (rendered, error) {
	col, ok := ds.Column(req.YColumn)
	if !ok {
		return rendered{}, fmt.Errorf("column %q not found", req.YColumn)
	}
	slices := ValueCounts(col)
	if len(slices) == 0 {
		return rendered{}, errNoData(req.YColumn)
	}

	values := make([]chart.Value, len(slices))
	for i, s := range slices {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: float64(s.Count),
			Style: chart.Style{
				FillColor:   paletteColor(i),
				StrokeColor: paletteColor(i),
			},
		}
	}

	pie := chart.PieChart{
		Title:  f.title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Values: values,
	}

	provider := chart.PNG
	if cfg.Format == SVG {
		provider = chart.SVG
	}

	var buf bytes.Buffer
	if err := pie.Render(provider, &buf); err != nil {
		return rendered{}, fmt.Errorf("failed to draw pie: %w", err)
	}
	return rendered{image: buf.Bytes(), data: ChartData{Slices: slices}}, nil
}
