package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/feichai0017/file-extractor/internal/agent/document"
	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// ExcelizeExtractor is the primary spreadsheet backend.
type ExcelizeExtractor struct {
	logger logger.Logger
}

func NewExcelizeExtractor(log logger.Logger) *ExcelizeExtractor {
	return &ExcelizeExtractor{logger: log}
}

func (e *ExcelizeExtractor) Name() string { return "excelize" }

// Extract opens the workbook and converts each selected sheet into one
// Table: row 0 supplies headers, every later row becomes a Record.
func (e *ExcelizeExtractor) Extract(ctx context.Context, doc *models.Document) models.ExtractionResult {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	if err != nil {
		return models.Failed(&models.ExtractionError{Strategy: e.Name(), Err: err})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Failed(&models.ExtractionError{
			Strategy: e.Name(),
			Err:      fmt.Errorf("workbook contains no sheets"),
		})
	}
	if doc.Mode == models.ModeLight {
		sheets = sheets[:1]
	}

	tables := make([]models.Table, 0, len(sheets))
	for i, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return models.Failed(&models.ExtractionError{
				Strategy: e.Name(),
				Err:      fmt.Errorf("sheet %q: %w", name, err),
			})
		}
		if table, ok := buildSheetTable(name, i+1, rows); ok {
			tables = append(tables, table)
		}
	}

	e.logger.Debug("Workbook extracted",
		logger.String("filename", doc.Filename),
		logger.Int("sheets", len(sheets)),
	)

	result := models.Success(tables, "")
	result.SheetsProcessed = len(sheets)
	return result
}

// buildSheetTable converts raw sheet rows into a Table. Sheets without a
// header row yield no table; fully blank data rows are dropped.
func buildSheetTable(sheet string, index int, rows [][]string) (models.Table, bool) {
	if len(rows) == 0 {
		return models.Table{}, false
	}

	headers := document.SynthesizeHeaders(rows[0])
	if len(headers) == 0 {
		return models.Table{}, false
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		data = append(data, normalizeCells(row))
	}

	return models.Table{
		Page:    sheet,
		Index:   index,
		Headers: headers,
		Data:    document.BuildRecords(headers, data),
	}, true
}
