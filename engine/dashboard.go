package engine

import (
	"fmt"
	"log"

	"github.com/spektr-org/vizdeck/dataset"
	"github.com/spektr-org/vizdeck/schema"
)

// ============================================================================
// DASHBOARD: One panel per column, stacked vertically
// ============================================================================
// Numeric columns → bar of the column against the row index
// Categorical columns → pie of the column's value counts
// Order: every numeric panel, then every categorical panel, each group in
// dataset column order.
// ============================================================================

// BuildDashboard classifies the dataset's columns and renders one panel
// per column. A single-column dataset yields a one-panel layout.
//
// Options:
//   - WithSchema(s): reuse a classification computed at load time
//   - WithPanelSize(w, h): panel size in pixels (default 800x400)
func BuildDashboard(ds *dataset.Dataset, opts ...Option) (*DashboardLayout, error) {
	cfg := applyOptions(opts)

	var s schema.Schema
	if cfg.Schema != nil {
		s = *cfg.Schema
	} else {
		s = schema.Classify(ds)
	}

	if ds == nil || s.IsEmpty() {
		return nil, &EmptyDatasetError{}
	}

	numeric := s.Numeric()
	categorical := s.Categorical()
	total := len(numeric) + len(categorical)

	log.Printf("🖥️ vizdeck: dashboard with %d panels (%d numeric, %d categorical)",
		total, len(numeric), len(categorical))

	panelCfg := *cfg
	panelCfg.Width = cfg.PanelWidth
	panelCfg.Height = cfg.PanelHeight
	panelCfg.Format = PNG
	panelCfg.Title = ""

	panels := make([]Panel, 0, total)

	for _, col := range numeric {
		req := ChartRequest{Kind: Bar, YColumn: col}
		f := frame{title: fmt.Sprintf("Bar Graph - %s", col), xLabel: "Index", yLabel: col}
		p, err := renderPanel(ds, req, f, &panelCfg, dataset.Numeric)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	for _, col := range categorical {
		req := ChartRequest{Kind: Pie, YColumn: col}
		f := frame{title: fmt.Sprintf("Pie Chart - %s", col)}
		p, err := renderPanel(ds, req, f, &panelCfg, dataset.Categorical)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	return assembleLayout(panels)
}

// assembleLayout stacks rendered panels into the final figure. A failure
// here belongs to no single chart, so it matches ErrRender without being
// a *RenderError.
func assembleLayout(panels []Panel) (*DashboardLayout, error) {
	figure, w, h, err := composePanels(panels)
	if err != nil {
		return nil, fmt.Errorf("%w: compose dashboard: %w", ErrRender, err)
	}
	return &DashboardLayout{panels: panels, figure: figure, width: w, height: h}, nil
}

func renderPanel(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config, kind dataset.Kind) (Panel, error) {
	if !ds.Has(req.YColumn) {
		return Panel{}, &ValidationError{Field: "y", Value: req.YColumn, Reason: "column not found in dataset"}
	}
	art, err := renderChart(ds, req, f, cfg)
	if err != nil {
		return Panel{}, err
	}
	return Panel{Column: req.YColumn, Kind: kind, Artifact: art}, nil
}
