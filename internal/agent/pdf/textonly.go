package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// TextExtractionFailedMarker replaces the accumulated text when even the
// text-only method cannot read the document. A PDF that yields no text still
// yields an envelope rather than an unrecoverable error.
const TextExtractionFailedMarker = "PDF text extraction failed"

// TextOnlyExtractor is the last PDF strategy in the chain. It reads nothing
// but concatenated page text and never returns a failure.
type TextOnlyExtractor struct {
	logger logger.Logger
}

func NewTextOnlyExtractor(log logger.Logger) *TextOnlyExtractor {
	return &TextOnlyExtractor{logger: log}
}

func (e *TextOnlyExtractor) Name() string { return "pdf-text-only" }

func (e *TextOnlyExtractor) Extract(ctx context.Context, doc *models.Document) (result models.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Text-only PDF extraction panicked",
				logger.String("filename", doc.Filename),
				logger.Any("panic", r),
			)
			result = models.TextOnly(TextExtractionFailedMarker)
		}
	}()

	reader := bytes.NewReader(doc.Content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		e.logger.Warn("Text-only PDF extraction failed to open document",
			logger.String("filename", doc.Filename),
			logger.Error(err),
		)
		return models.TextOnly(TextExtractionFailedMarker)
	}

	var text strings.Builder
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(pageText) == "" {
			continue
		}
		text.WriteString(fmt.Sprintf("\n--- Page %d ---\n%s\n", pageNum, strings.TrimSpace(pageText)))
	}

	return models.TextOnly(strings.TrimSpace(text.String()))
}
