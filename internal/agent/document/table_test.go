package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

func TestSynthesizeHeaders(t *testing.T) {
	headers := SynthesizeHeaders([]string{"Name", "", "  ", "Total"})
	assert.Equal(t, []string{"Name", "Col_2", "Col_3", "Total"}, headers)
}

func TestBuildRecordsPadsAndTruncates(t *testing.T) {
	headers := []string{"A", "B", "C"}
	rows := [][]string{
		{"1", "2", "3", "ignored"}, // extra cell truncated
		{"4"},                      // short row padded
	}

	records := BuildRecords(headers, rows)
	require.Len(t, records, 2)
	assert.Equal(t, models.Record{"A": "1", "B": "2", "C": "3"}, records[0])
	assert.Equal(t, models.Record{"A": "4", "B": "", "C": ""}, records[1])
}

func TestBuildRecordsDropsBlankRows(t *testing.T) {
	headers := []string{"A", "B"}
	rows := [][]string{
		{"", ""},
		{" ", "  "},
		{"x", ""},
	}

	records := BuildRecords(headers, rows)
	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0]["A"])
}

type stubExtractor struct {
	name   string
	result models.ExtractionResult
	calls  int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Extract(ctx context.Context, doc *models.Document) models.ExtractionResult {
	s.calls++
	return s.result
}

func TestChainFallsToNextStrategy(t *testing.T) {
	failing := &stubExtractor{name: "first", result: models.Failed(errors.New("boom"))}
	succeeding := &stubExtractor{name: "second", result: models.TextOnly("recovered")}

	chain := NewChain(logger.NewTestLogger(), failing, succeeding)
	result := chain.Run(context.Background(), &models.Document{Filename: "x.pdf"})

	assert.Equal(t, models.ResultTextOnly, result.Kind)
	assert.Equal(t, "recovered", result.Text)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, succeeding.calls)
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &stubExtractor{name: "first", result: models.Success(nil, "text")}
	second := &stubExtractor{name: "second", result: models.TextOnly("unused")}

	chain := NewChain(logger.NewTestLogger(), first, second)
	result := chain.Run(context.Background(), &models.Document{Filename: "x.pdf"})

	assert.Equal(t, models.ResultSuccess, result.Kind)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestChainReturnsLastFailure(t *testing.T) {
	first := &stubExtractor{name: "first", result: models.Failed(errors.New("a"))}
	second := &stubExtractor{name: "second", result: models.Failed(errors.New("b"))}

	chain := NewChain(logger.NewTestLogger(), first, second)
	result := chain.Run(context.Background(), &models.Document{Filename: "x.pdf"})

	require.Equal(t, models.ResultFailure, result.Kind)
	assert.EqualError(t, result.Err, "b")
}
