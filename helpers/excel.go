package helpers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/vizdeck/dataset"
)

// ParseXLSX reads the first worksheet of an Excel workbook.
// The first row is the header, like ParseCSV.
func ParseXLSX(data []byte) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	ds, err := buildDataset(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid sheet %q: %w", sheets[0], err)
	}
	return ds, nil
}
