package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/feichai0017/file-extractor/internal/agent/document"
	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// StructuredExtractor walks a PDF page by page, accumulating plain text and
// detecting tables from glyph positions. Any library-level failure abandons
// the whole attempt so the chain can fall to the text-only extractor.
type StructuredExtractor struct {
	logger logger.Logger
}

func NewStructuredExtractor(log logger.Logger) *StructuredExtractor {
	return &StructuredExtractor{logger: log}
}

func (e *StructuredExtractor) Name() string { return "pdf-structured" }

func (e *StructuredExtractor) Extract(ctx context.Context, doc *models.Document) (result models.ExtractionResult) {
	// The PDF libraries panic on some malformed documents. The strategy
	// boundary converts that into a Failure outcome.
	defer func() {
		if r := recover(); r != nil {
			result = models.Failed(&models.ExtractionError{
				Strategy: e.Name(),
				Err:      fmt.Errorf("parser panic: %v", r),
			})
		}
	}()

	if err := e.preflight(doc.Content); err != nil {
		return models.Failed(&models.ExtractionError{Strategy: e.Name(), Err: err})
	}

	reader := bytes.NewReader(doc.Content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return models.Failed(&models.ExtractionError{Strategy: e.Name(), Err: err})
	}

	var text strings.Builder
	var tables []models.Table

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows := pageRows(page.Content().Text)
		if len(rows) == 0 {
			continue
		}

		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, r.line)
		}
		text.WriteString(fmt.Sprintf("\n--- Page %d ---\n%s\n", pageNum, strings.Join(lines, "\n")))

		tables = append(tables, detectTables(rows, pageNum)...)
	}

	e.logger.Debug("Structured PDF extraction complete",
		logger.String("filename", doc.Filename),
		logger.Int("pages", pdfReader.NumPage()),
		logger.Int("tables", len(tables)),
	)

	return models.Success(tables, strings.TrimSpace(text.String()))
}

// preflight runs relaxed pdfcpu validation so structurally broken documents
// fail here, before any layout work.
func (e *StructuredExtractor) preflight(content []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(content), conf)
	if err != nil {
		return fmt.Errorf("pdf preflight: %w", err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("pdf preflight: %w", err)
	}
	return nil
}

// detectTables finds runs of consecutive multi-cell rows on one page. A run
// is accepted as a table only when it spans at least a header row plus one
// data row and at least one record survives normalization. Tables are
// numbered by order of appearance within the page.
func detectTables(rows []textRow, pageNum int) []models.Table {
	var tables []models.Table
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			if table, ok := buildPageTable(pageNum, len(tables)+1, run); ok {
				tables = append(tables, table)
			}
		}
		run = nil
	}

	for _, r := range rows {
		if len(r.cells) >= 2 {
			run = append(run, r.cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

func buildPageTable(pageNum, index int, run [][]string) (models.Table, bool) {
	headers := document.SynthesizeHeaders(run[0])
	records := document.BuildRecords(headers, run[1:])
	if len(records) == 0 {
		return models.Table{}, false
	}
	return models.Table{
		Page:    strconv.Itoa(pageNum),
		Index:   index,
		Headers: headers,
		Data:    records,
	}, true
}
