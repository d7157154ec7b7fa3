package converters

import (
	"time"

	"github.com/feichai0017/file-extractor/internal/models"
)

// Envelope is the canonical output delivered to the downstream sink. Field
// names and types are a stable contract; the internal extraction strategy
// may change, the envelope may not.
type Envelope struct {
	Type            string          `json:"type"`
	Filename        string          `json:"filename"`
	Headers         []string        `json:"headers"`
	Data            []models.Record `json:"data"`
	RecordCount     int             `json:"record_count"`
	TablesCount     *int            `json:"tables_count,omitempty"`
	SheetsProcessed *int            `json:"sheets_processed,omitempty"`
	TextExcerpt     string          `json:"text_excerpt,omitempty"`
	ProcessedAt     time.Time       `json:"processed_at"`
}

// EnvelopeBuilder normalizes any extraction outcome into one envelope shape.
type EnvelopeBuilder struct {
	excerptLimit int
}

func NewEnvelopeBuilder(excerptLimit int) *EnvelopeBuilder {
	return &EnvelopeBuilder{excerptLimit: excerptLimit}
}

// Build flattens all tables into one ordered record sequence. Headers come
// from the first non-empty table; when only raw text is available the
// envelope carries a content/source header pair and zero records. Raw text
// is truncated to a bounded excerpt.
func (b *EnvelopeBuilder) Build(doc *models.Document, result models.ExtractionResult) *Envelope {
	env := &Envelope{
		Type:        string(doc.Type),
		Filename:    doc.Filename,
		Headers:     headersFor(result),
		Data:        flattenRecords(result.Tables),
		TextExcerpt: truncate(result.Text, b.excerptLimit),
		ProcessedAt: time.Now(),
	}
	env.RecordCount = len(env.Data)

	switch doc.Type {
	case models.Spreadsheet:
		sheets := result.SheetsProcessed
		env.SheetsProcessed = &sheets
	case models.PDF:
		tables := len(result.Tables)
		env.TablesCount = &tables
	}

	return env
}

func headersFor(result models.ExtractionResult) []string {
	for _, t := range result.Tables {
		if len(t.Headers) > 0 && len(t.Data) > 0 {
			return t.Headers
		}
	}
	for _, t := range result.Tables {
		if len(t.Headers) > 0 {
			return t.Headers
		}
	}
	if result.Text != "" {
		return []string{"content", "source"}
	}
	return []string{}
}

func flattenRecords(tables []models.Table) []models.Record {
	records := make([]models.Record, 0)
	for _, t := range tables {
		records = append(records, t.Data...)
	}
	return records
}

func truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
