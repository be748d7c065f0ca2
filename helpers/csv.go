package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/vizdeck/dataset"
)

// ============================================================================
// CSV HELPER: Parses CSV bytes into a dataset.Dataset
// ============================================================================
// Consumer reads the file from wherever it lives (upload, disk, S3).
// This helper turns the raw bytes into typed columns.
// ============================================================================

// ParseCSV parses CSV bytes: the first record is the header, every
// following record is a row. Rows with the wrong number of fields are
// padded or truncated to the header width.
func ParseCSV(data []byte) (*dataset.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	ds, err := buildDataset(headers, rows)
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	return ds, nil
}
