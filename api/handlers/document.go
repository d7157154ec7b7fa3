package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/internal/service/document"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

type DocumentHandler struct {
	service        document.DocumentProcessor
	logger         logger.Logger
	sinkConfigured bool
}

// ProcessRequest is the single ingestion contract: the caller has already
// fetched the file and submits its bytes base64-encoded.
type ProcessRequest struct {
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	Mode        string `json:"mode"`
	FileContent string `json:"file_content"`
}

// ProcessResponse reports the outcome of one processing request.
type ProcessResponse struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Delivered bool        `json:"delivered"`
	Result    interface{} `json:"result"`
}

// ErrorResponse 定义错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewDocumentHandler(service document.DocumentProcessor, log logger.Logger, sinkConfigured bool) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		logger:         log,
		sinkConfigured: sinkConfigured,
	}
}

// ProcessDocument accepts an uploaded document, runs the extraction
// pipeline and forwards the envelope to the sink. Delivery failure does not
// fail the request: the extraction already happened.
func (h *DocumentHandler) ProcessDocument(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FileContent == "" {
		h.handleError(c, http.StatusBadRequest, "No file content provided", nil)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid base64 file content", err)
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = "unknown"
	}

	requestID := uuid.New().String()
	log := h.logger.With(logger.String("requestId", requestID))

	log.Info("Processing document",
		logger.String("filename", filename),
		logger.Int("size", len(content)),
	)

	envelope, err := h.service.ProcessDocument(
		c.Request.Context(), content, filename, req.FileType, models.SheetMode(req.Mode),
	)
	if err != nil {
		var sizeErr *models.SizeExceededError
		switch {
		case errors.Is(err, models.ErrUnsupportedFormat):
			h.handleError(c, http.StatusUnsupportedMediaType, "Unsupported file format", err)
		case errors.As(err, &sizeErr):
			h.handleError(c, http.StatusRequestEntityTooLarge, "File too large", err)
		default:
			h.handleError(c, http.StatusUnprocessableEntity, "Failed to process document", err)
		}
		return
	}

	delivered := true
	if err := h.service.Deliver(c.Request.Context(), envelope); err != nil {
		delivered = false
		log.Error("Failed to deliver envelope to sink",
			logger.String("filename", filename),
			logger.Error(err),
		)
	}

	c.JSON(http.StatusOK, ProcessResponse{
		ID:        requestID,
		Status:    "processed",
		Delivered: delivered,
		Result:    envelope,
	})
}

// HealthCheck reports process health and sink configuration state.
func (h *DocumentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().Format(time.RFC3339),
		"sink_configured": h.sinkConfigured,
	})
}

// handleError 统一错误处理
func (h *DocumentHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}
