package document

import (
	"fmt"
	"strings"

	"github.com/feichai0017/file-extractor/internal/models"
)

// SynthesizeHeaders returns a non-empty header name for every column,
// replacing blank cells with Col_<1-based index>.
func SynthesizeHeaders(cells []string) []string {
	headers := make([]string, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Col_%d", i+1)
		}
		headers[i] = name
	}
	return headers
}

// BuildRecords pairs positional cells with header names. Extra cells beyond
// the header count are truncated, missing cells padded with the empty
// string, and rows whose values are all empty are dropped.
func BuildRecords(headers []string, rows [][]string) []models.Record {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		record := make(models.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		if record.IsBlank() {
			continue
		}
		records = append(records, record)
	}
	return records
}
