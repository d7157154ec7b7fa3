package document

import (
	"context"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

// Extractor 提取策略接口
//
// One extraction strategy. A strategy never panics past its boundary and
// never returns a partial result on failure: the outcome is always a tagged
// ExtractionResult.
type Extractor interface {
	// Name identifies the strategy in logs and failure reasons.
	Name() string

	// Extract runs the strategy against the document bytes.
	Extract(ctx context.Context, doc *models.Document) models.ExtractionResult
}

// Chain is an ordered list of strategies tried until one yields a
// non-failure result. It replaces nested error handling with an explicit
// fallback sequence.
type Chain struct {
	strategies []Extractor
	logger     logger.Logger
}

// NewChain builds a fallback chain over the given strategies.
func NewChain(log logger.Logger, strategies ...Extractor) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     log,
	}
}

// Run tries each strategy in order. The first success or text-only outcome
// wins; when every strategy fails, the last failure is returned.
func (c *Chain) Run(ctx context.Context, doc *models.Document) models.ExtractionResult {
	var last models.ExtractionResult

	for _, s := range c.strategies {
		result := s.Extract(ctx, doc)
		if result.Kind != models.ResultFailure {
			c.logger.Info("Extraction strategy succeeded",
				logger.String("strategy", s.Name()),
				logger.String("filename", doc.Filename),
				logger.Int("tables", len(result.Tables)),
			)
			return result
		}

		c.logger.Warn("Extraction strategy failed, trying next",
			logger.String("strategy", s.Name()),
			logger.String("filename", doc.Filename),
			logger.Error(result.Err),
		)
		last = result
	}

	return last
}
