package models

// FileType 文档格式标签
type FileType string

const (
	Spreadsheet FileType = "spreadsheet"
	PDF         FileType = "pdf"
)

// SheetMode controls how many worksheets the spreadsheet extractors read.
type SheetMode string

const (
	// ModeLight reads the first sheet only.
	ModeLight SheetMode = "light"
	// ModeFull reads every sheet; envelope headers come from the first.
	ModeFull SheetMode = "full"
)

// Document is the immutable input to one pipeline invocation: raw bytes, the
// original filename, and the classified format tag.
type Document struct {
	Content  []byte
	Filename string
	Type     FileType
	Mode     SheetMode
}

// Record is one normalized row, keyed by header name. Column order is carried
// by the owning Table's Headers slice.
type Record map[string]string

// IsBlank reports whether every value of the record is empty.
func (r Record) IsBlank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// TextExtractionPage tags tables recovered heuristically from plain text
// rather than from page-level structure.
const TextExtractionPage = "text_extraction"

// Table is one recovered tabular structure. Page plus Index form its
// identity; Headers keep source column order, Data keeps source row order.
type Table struct {
	Page    string   `json:"page"`
	Index   int      `json:"table"`
	Headers []string `json:"headers"`
	Data    []Record `json:"data"`
}

// ResultKind discriminates the outcome of one extraction attempt.
type ResultKind string

const (
	ResultSuccess  ResultKind = "success"
	ResultTextOnly ResultKind = "text_only"
	ResultFailure  ResultKind = "failure"
)

// ExtractionResult is the tagged outcome of one strategy, so the normalizer
// has a single contract regardless of source format. Tables is populated for
// ResultSuccess, Text for ResultSuccess and ResultTextOnly, Err for
// ResultFailure.
type ExtractionResult struct {
	Kind            ResultKind
	Tables          []Table
	Text            string
	SheetsProcessed int
	Err             error
}

// Success builds a success result.
func Success(tables []Table, text string) ExtractionResult {
	return ExtractionResult{Kind: ResultSuccess, Tables: tables, Text: text}
}

// TextOnly builds a text-only result.
func TextOnly(text string) ExtractionResult {
	return ExtractionResult{Kind: ResultTextOnly, Text: text}
}

// Failed builds a failure result.
func Failed(err error) ExtractionResult {
	return ExtractionResult{Kind: ResultFailure, Err: err}
}

// RecordCount returns the number of records across all tables.
func (r ExtractionResult) RecordCount() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Data)
	}
	return n
}
