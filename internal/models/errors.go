package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned by the classifier when neither the hint
// nor the filename extension resolves to a known format. Fatal: no envelope
// is produced.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SizeExceededError rejects a document before any parsing begins.
type SizeExceededError struct {
	Size  int64
	Limit int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum limit of %d bytes", e.Size, e.Limit)
}

// ExtractionError wraps a strategy-level failure. It is recovered by falling
// to the next strategy in the chain and only surfaces when every strategy
// for the format has failed.
type ExtractionError struct {
	Strategy string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Strategy, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
