package spreadsheet

import (
	"time"
)

// Date layouts excelize emits for common cell number formats. Temporal
// values are re-serialized to ISO-8601 so downstream consumers see one
// representation regardless of workbook styling.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"01-02-06",
	"Jan-06",
	"2-Jan-06",
}

// normalizeCells re-serializes temporal cell values to ISO-8601 and leaves
// every other scalar as its string representation.
func normalizeCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = normalizeCell(cell)
	}
	return out
}

func normalizeCell(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format("2006-01-02")
			}
			return t.Format(time.RFC3339)
		}
	}
	return value
}
