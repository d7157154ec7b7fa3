package document

import (
	"context"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/converters"
)

// DocumentProcessor runs one synchronous extraction per call and hands the
// canonical envelope to the downstream sink.
type DocumentProcessor interface {
	// ProcessDocument classifies, extracts and normalizes one document.
	// It returns an error only for unsupported formats, size-ceiling
	// violations, or when every strategy in the format's chain failed.
	ProcessDocument(ctx context.Context, content []byte, filename, typeHint string, mode models.SheetMode) (*converters.Envelope, error)

	// Deliver forwards an envelope to the configured sink. A delivery
	// failure never invalidates the extraction that produced the envelope.
	Deliver(ctx context.Context, envelope *converters.Envelope) error
}
