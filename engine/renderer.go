package engine

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// RENDERER: Validation + Dispatch
// ============================================================================
// Entry point: Render(dataset, request, opts...)
//
// Pipeline:
//   1. Validate kind and column names against the dataset
//   2. Derive title and axis labels
//   3. Dispatch to the draw routine registered for the kind
//   4. Wrap the image and geometry in an immutable ChartArtifact
//
// The dataset is only read. Any failure inside a draw routine, panics
// included, comes back as a *RenderError.
// ============================================================================

// renderers maps every ChartKind to its draw routine.
var renderers = map[ChartKind]drawFunc{
	Bar:           drawBars(false),
	HorizontalBar: drawBars(true),
	Line:          drawLine,
	Pie:           drawPie,
	Histogram:     drawHistogram,
	BoxPlot:       drawBoxPlot,
	Area:          drawArea,
}

// Render draws a single chart.
//
// Options:
//   - WithSize(w, h): image size in pixels (default 800x600)
//   - WithFormat(SVG): SVG instead of PNG
//   - WithBins(n): histogram bin count (default 10)
//   - WithTitle(s): override the derived title
func Render(ds *dataset.Dataset, req ChartRequest, opts ...Option) (*ChartArtifact, error) {
	cfg := applyOptions(opts)

	if err := req.validate(ds); err != nil {
		return nil, err
	}

	log.Printf("📈 vizdeck: rendering %s (y=%q x=%q) from %d rows, %s",
		req.Kind, req.YColumn, req.XColumn, ds.Len(), cfg)

	return renderChart(ds, req, frameFor(req, cfg), cfg)
}

// validate checks the request against the dataset without touching data.
func (req ChartRequest) validate(ds *dataset.Dataset) error {
	if !req.Kind.Valid() {
		return &ValidationError{Field: "kind", Value: fmt.Sprint(int(req.Kind)), Reason: "unsupported chart kind"}
	}
	if ds == nil {
		return &ValidationError{Field: "dataset", Reason: "no dataset loaded"}
	}
	if req.YColumn == "" {
		return &ValidationError{Field: "y", Reason: fmt.Sprintf("a y column is required for %s", req.Kind)}
	}
	if req.Kind.UsesX() && req.XColumn == "" {
		return &ValidationError{Field: "x", Reason: fmt.Sprintf("an x column is required for %s", req.Kind)}
	}
	if req.XColumn != "" && !ds.Has(req.XColumn) {
		return &ValidationError{Field: "x", Value: req.XColumn, Reason: "column not found in dataset"}
	}
	if !ds.Has(req.YColumn) {
		return &ValidationError{Field: "y", Value: req.YColumn, Reason: "column not found in dataset"}
	}
	return nil
}

// renderChart runs the draw routine for an already validated request.
func renderChart(ds *dataset.Dataset, req ChartRequest, f frame, cfg *config) (art *ChartArtifact, err error) {
	draw, ok := renderers[req.Kind]
	if !ok {
		return nil, &ValidationError{Field: "kind", Value: req.Kind.String(), Reason: "no renderer registered"}
	}

	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = &RenderError{Kind: req.Kind, Column: req.YColumn, Err: fmt.Errorf("panic while drawing: %v", r)}
			log.Printf("⚠️ vizdeck: %v", err)
		}
	}()

	out, drawErr := draw(ds, req, f, cfg)
	if drawErr != nil {
		rerr := &RenderError{Kind: req.Kind, Column: req.YColumn, Err: drawErr}
		log.Printf("⚠️ vizdeck: %v", rerr)
		return nil, rerr
	}

	return &ChartArtifact{
		id:     uuid.New(),
		kind:   req.Kind,
		title:  f.title,
		xLabel: f.xLabel,
		yLabel: f.yLabel,
		format: cfg.Format,
		width:  cfg.Width,
		height: cfg.Height,
		image:  out.image,
		data:   out.data,
	}, nil
}
