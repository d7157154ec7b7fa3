package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/feichai0017/file-extractor/internal/agent"
	svc "github.com/feichai0017/file-extractor/internal/service/document"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

type captureSink struct {
	delivered int
	err       error
}

func (s *captureSink) Deliver(ctx context.Context, payload interface{}) error {
	s.delivered++
	return s.err
}

func newTestRouter(t *testing.T, snk *captureSink) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger()
	service := svc.NewService(agent.NewExtractorFactory(log), snk, log, &svc.ServiceConfig{
		MaxFileSize:      1 << 20,
		TextExcerptLimit: 200,
	})

	h := NewHandlers(service, log, true)
	r := gin.New()
	r.GET("/health", h.Document.HealthCheck)
	r.POST("/api/v1/documents/process", h.Document.ProcessDocument)
	return r
}

func workbookBase64(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", 10}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postJSON(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessDocumentEndpoint(t *testing.T) {
	snk := &captureSink{}
	r := newTestRouter(t, snk)

	w := postJSON(r, ProcessRequest{
		Filename:    "scores.xlsx",
		FileContent: workbookBase64(t),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Delivered bool   `json:"delivered"`
		Result    struct {
			Type        string   `json:"type"`
			Headers     []string `json:"headers"`
			RecordCount int      `json:"record_count"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "processed", resp.Status)
	assert.True(t, resp.Delivered)
	assert.Equal(t, "spreadsheet", resp.Result.Type)
	assert.Equal(t, []string{"Name", "Score"}, resp.Result.Headers)
	assert.Equal(t, 1, resp.Result.RecordCount)
	assert.Equal(t, 1, snk.delivered)
}

func TestProcessDocumentMissingContent(t *testing.T) {
	r := newTestRouter(t, &captureSink{})

	w := postJSON(r, ProcessRequest{Filename: "scores.xlsx"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessDocumentInvalidBase64(t *testing.T) {
	r := newTestRouter(t, &captureSink{})

	w := postJSON(r, ProcessRequest{Filename: "scores.xlsx", FileContent: "%%% not base64 %%%"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessDocumentFileTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger()
	service := svc.NewService(agent.NewExtractorFactory(log), &captureSink{}, log, &svc.ServiceConfig{
		MaxFileSize:      16,
		TextExcerptLimit: 200,
	})
	h := NewHandlers(service, log, true)
	r := gin.New()
	r.POST("/api/v1/documents/process", h.Document.ProcessDocument)

	w := postJSON(r, ProcessRequest{
		Filename:    "scores.xlsx",
		FileContent: workbookBase64(t),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestProcessDocumentUnsupportedFormat(t *testing.T) {
	r := newTestRouter(t, &captureSink{})

	w := postJSON(r, ProcessRequest{
		Filename:    "notes.txt",
		FileContent: base64.StdEncoding.EncodeToString([]byte("hello")),
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestProcessDocumentDeliveryFailureDoesNotFailRequest(t *testing.T) {
	snk := &captureSink{err: assert.AnError}
	r := newTestRouter(t, snk)

	w := postJSON(r, ProcessRequest{
		Filename:    "scores.xlsx",
		FileContent: workbookBase64(t),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "processed", resp.Status)
	assert.False(t, resp.Delivered)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, &captureSink{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, true, resp["sink_configured"])
	assert.NotEmpty(t, resp["timestamp"])
}
