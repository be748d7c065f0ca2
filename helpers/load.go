package helpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spektr-org/vizdeck/dataset"
)

// Load picks a parser from the file name's extension (.csv or .xlsx).
func Load(name string, data []byte) (*dataset.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return ParseCSV(data)
	case ".xlsx":
		return ParseXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q: upload a .csv or .xlsx file", ext)
	}
}
