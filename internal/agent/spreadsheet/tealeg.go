package spreadsheet

import (
	"context"
	"fmt"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// TealegExtractor is the alternate spreadsheet backend, tried when the
// primary backend cannot read the workbook.
type TealegExtractor struct {
	logger logger.Logger
}

func NewTealegExtractor(log logger.Logger) *TealegExtractor {
	return &TealegExtractor{logger: log}
}

func (e *TealegExtractor) Name() string { return "tealeg-xlsx" }

func (e *TealegExtractor) Extract(ctx context.Context, doc *models.Document) models.ExtractionResult {
	f, err := xlsx.OpenBinary(doc.Content)
	if err != nil {
		return models.Failed(&models.ExtractionError{Strategy: e.Name(), Err: err})
	}

	if len(f.Sheets) == 0 {
		return models.Failed(&models.ExtractionError{
			Strategy: e.Name(),
			Err:      fmt.Errorf("workbook contains no sheets"),
		})
	}

	sheets := f.Sheets
	if doc.Mode == models.ModeLight {
		sheets = sheets[:1]
	}

	tables := make([]models.Table, 0, len(sheets))
	for i, sheet := range sheets {
		rows, err := sheetRows(sheet, f.Date1904)
		if err != nil {
			return models.Failed(&models.ExtractionError{
				Strategy: e.Name(),
				Err:      fmt.Errorf("sheet %q: %w", sheet.Name, err),
			})
		}
		if table, ok := buildSheetTable(sheet.Name, i+1, rows); ok {
			tables = append(tables, table)
		}
	}

	e.logger.Debug("Workbook extracted via alternate backend",
		logger.String("filename", doc.Filename),
		logger.Int("sheets", len(sheets)),
	)

	result := models.Success(tables, "")
	result.SheetsProcessed = len(sheets)
	return result
}

// sheetRows flattens one sheet into string cells. Temporal cells are
// serialized to ISO-8601 directly from the underlying time value.
func sheetRows(sheet *xlsx.Sheet, date1904 bool) ([][]string, error) {
	rows := make([][]string, 0, sheet.MaxRow)

	err := sheet.ForEachRow(func(r *xlsx.Row) error {
		cells := make([]string, 0, sheet.MaxCol)
		cellErr := r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, cellValue(c, date1904))
			return nil
		})
		if cellErr != nil {
			return cellErr
		}
		rows = append(rows, cells)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func cellValue(c *xlsx.Cell, date1904 bool) string {
	if c.IsTime() {
		if t, err := c.GetTime(date1904); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format("2006-01-02")
			}
			return t.Format(time.RFC3339)
		}
	}
	value, err := c.FormattedValue()
	if err != nil {
		return c.Value
	}
	return value
}
