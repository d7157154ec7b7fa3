package handlers

import (
	"github.com/feichai0017/file-extractor/internal/service/document"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
}

func NewHandlers(
	documentService document.DocumentProcessor,
	log logger.Logger,
	sinkConfigured bool,
) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(documentService, log, sinkConfigured),
	}
}
