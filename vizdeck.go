// Package vizdeck turns tabular data into charts.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/vizdeck/engine"
//	    "github.com/spektr-org/vizdeck/helpers"
//	)
//
//	ds, err := helpers.Load("sales.csv", data)
//	art, err := engine.Render(ds, engine.ChartRequest{
//	    Kind: engine.Bar, XColumn: "region", YColumn: "revenue",
//	}, engine.WithSize(1024, 768))
//
//	layout, err := engine.BuildDashboard(ds)
//	png := layout.Figure()
//
// Loading lives in helpers, column classification in schema, and
// rendering in engine. The server package exposes the same operations
// over HTTP; cmd/vizdeck exposes them on the command line.
// Nothing is persisted: every call works on the dataset it is given.
package vizdeck
