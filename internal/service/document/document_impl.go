package document

import (
	"context"
	"fmt"

	cfg "github.com/feichai0017/file-extractor/config"
	"github.com/feichai0017/file-extractor/internal/agent"
	"github.com/feichai0017/file-extractor/internal/agent/textscan"
	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/converters"
	"github.com/feichai0017/file-extractor/pkg/logger"
	"github.com/feichai0017/file-extractor/pkg/sink"
)

type DocumentService struct {
	factory  *agent.ExtractorFactory
	envelope *converters.EnvelopeBuilder
	sink     sink.Sink
	logger   logger.Logger
	config   *ServiceConfig
}

type ServiceConfig struct {
	MaxFileSize      int64
	TextExcerptLimit int
}

func NewService(
	factory *agent.ExtractorFactory,
	deliverySink sink.Sink,
	log logger.Logger,
	config *ServiceConfig,
) DocumentProcessor {
	if config == nil {
		config = &ServiceConfig{
			MaxFileSize:      50 * 1024 * 1024, // 50MB
			TextExcerptLimit: 4000,
		}
	}

	return &DocumentService{
		factory:  factory,
		envelope: converters.NewEnvelopeBuilder(config.TextExcerptLimit),
		sink:     deliverySink,
		logger:   log,
		config:   config,
	}
}

// GetService wires the service from process configuration.
func GetService(log logger.Logger) DocumentProcessor {
	appCfg := cfg.GetAppConfig()

	return NewService(
		agent.NewExtractorFactory(log),
		sink.NewWebhookSink(appCfg.SinkWebhookURL, appCfg.SinkTimeout, log),
		log,
		&ServiceConfig{
			MaxFileSize:      appCfg.MaxFileSize,
			TextExcerptLimit: appCfg.TextExcerptLimit,
		},
	)
}

// ProcessDocument runs the extraction pipeline: size ceiling, classifier,
// format chain, heuristic table recovery, normalizer.
func (s *DocumentService) ProcessDocument(
	ctx context.Context,
	content []byte,
	filename, typeHint string,
	mode models.SheetMode,
) (*converters.Envelope, error) {
	// The ceiling is enforced before any parsing to bound peak memory.
	if size := int64(len(content)); size > s.config.MaxFileSize {
		s.logger.Error("Document rejected by size ceiling",
			logger.String("filename", filename),
			logger.Int64("size", size),
		)
		return nil, &models.SizeExceededError{Size: size, Limit: s.config.MaxFileSize}
	}

	fileType, err := agent.Classify(filename, typeHint)
	if err != nil {
		s.logger.Error("Unsupported document",
			logger.String("filename", filename),
			logger.String("hint", typeHint),
		)
		return nil, err
	}

	if mode == "" {
		mode = models.ModeFull
	}

	doc := &models.Document{
		Content:  content,
		Filename: filename,
		Type:     fileType,
		Mode:     mode,
	}

	chain, err := s.factory.GetChain(fileType)
	if err != nil {
		return nil, err
	}

	result := chain.Run(ctx, doc)
	if result.Kind == models.ResultFailure {
		return nil, fmt.Errorf("all extraction strategies failed: %w", result.Err)
	}

	// When page-level extraction yields no tables but text exists, try to
	// recover a table from the text. A recovery here is a degraded-confidence
	// result, not an error.
	if len(result.Tables) == 0 && result.Text != "" {
		if recovered := textscan.Reconstruct(result.Text); len(recovered) > 0 {
			result.Tables = recovered
			s.logger.Warn("Tables recovered heuristically from text",
				logger.String("filename", filename),
				logger.Int("records", result.RecordCount()),
			)
		}
	}

	envelope := s.envelope.Build(doc, result)

	s.logger.Info("Document processed",
		logger.String("filename", filename),
		logger.String("type", string(fileType)),
		logger.Int("records", envelope.RecordCount),
		logger.Int("tables", len(result.Tables)),
	)

	return envelope, nil
}

// Deliver forwards the envelope to the sink. Failures are logged by the
// caller and do not roll back the extraction.
func (s *DocumentService) Deliver(ctx context.Context, envelope *converters.Envelope) error {
	return s.sink.Deliver(ctx, envelope)
}
