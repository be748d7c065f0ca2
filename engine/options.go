package engine

import (
	"fmt"
	"strings"

	"github.com/spektr-org/vizdeck/schema"
)

// ============================================================================
// ENGINE OPTIONS: Functional options for Render() and BuildDashboard()
// ============================================================================

// Format is the encoding of a rendered chart image.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" (any case). Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", &ValidationError{Field: "format", Value: s, Reason: "expected png or svg"}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Width       int // single chart, pixels
	Height      int
	PanelWidth  int // dashboard panel, pixels
	PanelHeight int
	Format      Format
	Bins        int    // histogram bin count
	Title       string // overrides the derived chart title
	Schema      *schema.Schema
}

// WithSize sets the single-chart image size in pixels.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// WithPanelSize sets the size of each dashboard panel in pixels.
func WithPanelSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.PanelWidth = width
		}
		if height > 0 {
			c.PanelHeight = height
		}
	}
}

// WithFormat selects PNG or SVG output for single charts.
// Dashboards are always composed as PNG.
func WithFormat(f Format) Option {
	return func(c *config) {
		if f == PNG || f == SVG {
			c.Format = f
		}
	}
}

// WithBins sets the number of equal-width histogram bins.
func WithBins(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.Bins = n
		}
	}
}

// WithTitle replaces the derived title of a single chart.
func WithTitle(title string) Option {
	return func(c *config) {
		c.Title = title
	}
}

// WithSchema reuses a classification computed at load time instead of
// classifying the dataset again.
func WithSchema(s schema.Schema) Option {
	return func(c *config) {
		c.Schema = &s
	}
}

// applyOptions creates a config from functional options.
// Defaults match an 8x6in figure (single chart) and 8x4in rows (dashboard) at 100 dpi.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Width:       800,
		Height:      600,
		PanelWidth:  800,
		PanelHeight: 400,
		Format:      PNG,
		Bins:        10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) String() string {
	return fmt.Sprintf("%dx%d %s bins=%d", c.Width, c.Height, c.Format, c.Bins)
}
