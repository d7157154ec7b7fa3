package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/feichai0017/file-extractor/pkg/logger"
)

// Sink delivers a processed envelope to the downstream consumer.
type Sink interface {
	Deliver(ctx context.Context, payload interface{}) error
}

// WebhookSink posts JSON to a configured webhook URL with a bounded timeout.
// Delivery failures are reported to the caller but never retried here: the
// extraction result stays valid regardless.
type WebhookSink struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewWebhookSink(url string, timeout time.Duration, log logger.Logger) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, payload interface{}) error {
	if s.url == "" {
		return fmt.Errorf("sink webhook URL not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	s.logger.Info("Payload delivered to sink",
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
	)

	return nil
}
