package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spektr-org/vizdeck/dataset"
	"github.com/spektr-org/vizdeck/engine"
	"github.com/spektr-org/vizdeck/helpers"
	"github.com/spektr-org/vizdeck/internal/config"
	"github.com/spektr-org/vizdeck/schema"
	"github.com/spektr-org/vizdeck/server"
)

// ============================================================================
// VIZDECK CLI: Charts from a CSV or XLSX file
// ============================================================================

const version = "0.3.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to a .csv or .xlsx data file")
	kindStr := flag.String("kind", "", "Chart kind: bar, horizontal_bar, line, pie, histogram, box_plot, area")
	xCol := flag.String("x", "", "X-axis column (bar, horizontal_bar, line)")
	yCol := flag.String("y", "", "Y-axis column")
	dashboard := flag.Bool("dashboard", false, "Render one panel per column and stack them into one PNG")
	classify := flag.Bool("classify", false, "Print the numeric/categorical split as JSON and exit")
	table := flag.Bool("table", false, "Write the loaded rows as CSV and exit")
	limit := flag.Int("limit", 0, "Maximum rows for --table (0 = all)")
	format := flag.String("format", "png", "Image format for single charts: png, svg")
	width := flag.Int("width", 0, "Image width in pixels (default from VIZDECK_CHART_WIDTH or 800)")
	height := flag.Int("height", 0, "Image height in pixels (default from VIZDECK_CHART_HEIGHT or 600)")
	bins := flag.Int("bins", 0, "Histogram bins (default from VIZDECK_HIST_BINS or 10)")
	dataOnly := flag.Bool("data", false, "Write the chart's plotted values as CSV instead of the image")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	serve := flag.Bool("serve", false, "Run the HTTP API (address from VIZDECK_ADDR)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `vizdeck: charts from tabular data

Usage:
  vizdeck --file sales.csv --kind bar --x region --y revenue --out revenue.png
  vizdeck --file sales.xlsx --kind histogram --y revenue --bins 20 --format svg --out hist.svg
  vizdeck --file sales.csv --dashboard --out dashboard.png
  vizdeck --file sales.csv --classify
  vizdeck --file sales.xlsx --table --limit 20
  vizdeck --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  VIZDECK_ADDR              Listen address for --serve (default :8080)
  VIZDECK_MAX_UPLOAD_MB     Upload limit for --serve (default 32)
  VIZDECK_REQUEST_TIMEOUT   Per-request timeout for --serve (default 30s)
  VIZDECK_CORS_ORIGINS      Comma-separated allowed origins (default *)
  VIZDECK_CHART_WIDTH       Default chart width (default 800)
  VIZDECK_CHART_HEIGHT      Default chart height (default 600)
  VIZDECK_HIST_BINS         Default histogram bins (default 10)

Examples:
  # Pie of a categorical column
  vizdeck --file staff.csv --kind "Pie Chart" --y dept --out dept.png

  # Data behind a chart, ready for Sheets
  vizdeck --file staff.csv --kind histogram --y age --data --out age_bins.csv
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("vizdeck %s\n", version)
		os.Exit(0)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid configuration: %v", err)
	}

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		runServer(cfg)
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	if !*dashboard && !*classify && !*table && *kindStr == "" {
		fmt.Fprintln(os.Stderr, "Error: one of --kind, --dashboard, --classify or --table is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Read data ─────────────────────────────────────────────────────────
	data, err := os.ReadFile(*filePath)
	if err != nil {
		fatalf("Failed to read file: %v", err)
	}

	ds, err := helpers.Load(filepath.Base(*filePath), data)
	if err != nil {
		fatalf("Failed to load %s: %v", *filePath, err)
	}
	log.Printf("📊 Loaded %d rows x %d columns", ds.Len(), ds.Width())

	sch := schema.Classify(ds)
	log.Printf("🔍 Classified: %d numeric, %d categorical",
		len(sch.Numeric()), len(sch.Categorical()))

	// ── Output writer ─────────────────────────────────────────────────────
	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Classify mode ─────────────────────────────────────────────────────
	if *classify {
		writeJSON(writer, sch)
		return
	}

	// ── Table mode ────────────────────────────────────────────────────────
	if *table {
		writeTable(writer, ds, *limit)
		if *outFile != "" {
			log.Printf("📄 Table written to %s", *outFile)
		}
		return
	}

	// ── Dashboard mode ────────────────────────────────────────────────────
	if *dashboard {
		layout, err := engine.BuildDashboard(ds, engine.WithSchema(sch))
		if err != nil {
			fatalf("Dashboard failed: %v", err)
		}
		w, h := layout.Size()
		log.Printf("🧩 Dashboard: %d panels, %dx%d", layout.Len(), w, h)
		writeBytes(writer, layout.Figure(), *outFile)
		return
	}

	// ── Chart mode ────────────────────────────────────────────────────────
	kind, err := engine.ParseChartKind(*kindStr)
	if err != nil {
		fatalf("%v", err)
	}
	f, err := engine.ParseFormat(*format)
	if err != nil {
		fatalf("%v", err)
	}

	opts := append(cfg.RenderOptions(),
		engine.WithFormat(f),
		engine.WithSize(*width, *height),
		engine.WithBins(*bins),
	)
	art, err := engine.Render(ds, engine.ChartRequest{Kind: kind, XColumn: *xCol, YColumn: *yCol}, opts...)
	if err != nil {
		fatalf("Render failed: %v", err)
	}
	log.Printf("🎨 %s (%s, id %s)", art.Title(), art.Format(), art.ID())

	if *dataOnly {
		writeCSV(writer, art)
		if *outFile != "" {
			log.Printf("📄 CSV written to %s", *outFile)
		}
		return
	}
	writeBytes(writer, art.Bytes(), *outFile)
}

func runServer(cfg *config.Config) {
	srv, err := server.New(cfg)
	if err != nil {
		fatalf("Failed to start server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		fatalf("Server failed: %v", err)
	}
}

// ============================================================================
// CSV OUTPUT: The plotted values, Sheets-ready
// ============================================================================

func writeCSV(w io.Writer, art *engine.ChartArtifact) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	data := art.Data()
	switch {
	case len(data.Slices) > 0:
		cw.Write([]string{"Label", "Count", "Percent"})
		for _, s := range data.Slices {
			cw.Write([]string{s.Label, fmt.Sprint(s.Count), fmtNum(s.Percent)})
		}
	case len(data.Bins) > 0:
		cw.Write([]string{"Min", "Max", "Count"})
		for _, b := range data.Bins {
			cw.Write([]string{fmtNum(b.Min), fmtNum(b.Max), fmt.Sprint(b.Count)})
		}
	case data.Summary != nil:
		s := data.Summary
		cw.Write([]string{"Min", "Q1", "Median", "Q3", "Max", "N"})
		cw.Write([]string{fmtNum(s.Min), fmtNum(s.Q1), fmtNum(s.Median), fmtNum(s.Q3), fmtNum(s.Max), fmt.Sprint(s.N)})
	default:
		xLabel, yLabel := art.XLabel(), art.YLabel()
		if xLabel == "" {
			xLabel = "Label"
		}
		if yLabel == "" {
			yLabel = "Value"
		}
		cw.Write([]string{xLabel, yLabel})
		for _, p := range data.Points {
			label := p.Label
			if label == "" {
				label = fmtNum(p.X)
			}
			cw.Write([]string{label, fmtNum(p.Y)})
		}
	}
}

// writeTable writes the header and up to limit rows of the dataset.
func writeTable(w io.Writer, ds *dataset.Dataset, limit int) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write(ds.Names())
	for _, row := range ds.Rows(limit) {
		cw.Write(row)
	}
}

// ============================================================================
// OUTPUT HELPERS
// ============================================================================

func writeJSON(w io.Writer, v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func writeBytes(w io.Writer, b []byte, path string) {
	if _, err := w.Write(b); err != nil {
		fatalf("Failed to write output: %v", err)
	}
	if path != "" {
		log.Printf("📄 %d bytes written to %s", len(b), path)
	}
}

func fmtNum(v float64) string {
	return dataset.FormatNumber(v)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
