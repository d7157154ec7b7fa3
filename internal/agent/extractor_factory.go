package agent

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/feichai0017/file-extractor/internal/agent/document"
	"github.com/feichai0017/file-extractor/internal/agent/pdf"
	"github.com/feichai0017/file-extractor/internal/agent/spreadsheet"
	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// 扩展名到格式标签的映射
var extToType = map[string]models.FileType{
	".xlsx": models.Spreadsheet,
	".xls":  models.Spreadsheet,
	".pdf":  models.PDF,
}

// Declared-type hints accepted alongside the extension.
var hintToType = map[string]models.FileType{
	"xlsx":        models.Spreadsheet,
	"xls":         models.Spreadsheet,
	"excel":       models.Spreadsheet,
	"spreadsheet": models.Spreadsheet,
	"pdf":         models.PDF,
}

// Classify maps a declared type hint and/or a filename extension to a format
// tag. The hint wins when both are present. Pure function, no side effects.
func Classify(filename, hint string) (models.FileType, error) {
	if hint != "" {
		if t, ok := hintToType[strings.ToLower(hint)]; ok {
			return t, nil
		}
	}
	if filename != "" {
		if t, ok := extToType[strings.ToLower(filepath.Ext(filename))]; ok {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: filename=%q hint=%q", models.ErrUnsupportedFormat, filename, hint)
}

// ExtractorFactory owns one fallback chain per supported format.
type ExtractorFactory struct {
	chains map[models.FileType]*document.Chain
	logger logger.Logger
}

// NewExtractorFactory wires the per-format strategy chains: excelize then
// the alternate xlsx backend for spreadsheets, structured then text-only for
// PDFs.
func NewExtractorFactory(log logger.Logger) *ExtractorFactory {
	return &ExtractorFactory{
		logger: log,
		chains: map[models.FileType]*document.Chain{
			models.Spreadsheet: document.NewChain(log,
				spreadsheet.NewExcelizeExtractor(log),
				spreadsheet.NewTealegExtractor(log),
			),
			models.PDF: document.NewChain(log,
				pdf.NewStructuredExtractor(log),
				pdf.NewTextOnlyExtractor(log),
			),
		},
	}
}

// GetChain returns the fallback chain for a format tag.
func (f *ExtractorFactory) GetChain(fileType models.FileType) (*document.Chain, error) {
	chain, ok := f.chains[fileType]
	if !ok {
		f.logger.Error("No extraction chain for format",
			logger.String("fileType", string(fileType)),
		)
		return nil, fmt.Errorf("no extraction chain for format: %s", fileType)
	}
	return chain, nil
}
