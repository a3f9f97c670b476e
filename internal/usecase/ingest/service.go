package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
	"github.com/datapult/esdex/internal/metrics"
)

// DefaultMaxBatchSize caps the number of documents in one bulk request.
const DefaultMaxBatchSize = 1000

// Service ingests document batches. One call is one bulk request; oversized
// batches are a caller error, not silently split.
type Service struct {
	repo         Repository
	logger       *zap.Logger
	maxBatchSize int
}

// New creates an ingest service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		maxBatchSize: DefaultMaxBatchSize,
	}
}

// WithMaxBatchSize overrides the batch size cap.
func (s *Service) WithMaxBatchSize(n int) *Service {
	if n > 0 {
		s.maxBatchSize = n
	}
	return s
}

// Ingest writes the batch and refreshes the index so the documents are
// immediately visible to reads. Per-document rejections are reported in the
// outcome, never as an error; the batch as a whole fails only on transport
// or malformed-response problems.
func (s *Service) Ingest(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error) {
	if len(docs) == 0 {
		return bulk.Outcome{}, fmt.Errorf("ingest into %s: %w", index, domain.ErrEmptyBatch)
	}
	if len(docs) > s.maxBatchSize {
		return bulk.Outcome{}, fmt.Errorf(
			"ingest into %s: %d documents exceeds limit %d: %w",
			index, len(docs), s.maxBatchSize, domain.ErrBatchTooLarge,
		)
	}

	outcome, err := s.repo.BulkWrite(ctx, index, docs)
	if err != nil {
		return bulk.Outcome{}, fmt.Errorf("bulk write: %w", err)
	}

	s.record(index, outcome)

	if err := s.repo.Refresh(ctx, index); err != nil {
		return outcome, fmt.Errorf("refresh after ingest: %w", err)
	}
	return outcome, nil
}

func (s *Service) record(index string, outcome bulk.Outcome) {
	accepted := outcome.Accepted()
	rejected := len(outcome.Items()) - accepted

	metrics.DocumentsAcceptedTotal.Add(float64(accepted))
	for _, item := range outcome.Items() {
		if item.Rejected() {
			metrics.DocumentsRejectedTotal.WithLabelValues(item.Reason()).Inc()
		}
	}

	if outcome.HadErrors() {
		s.logger.Warn("Batch partially rejected",
			zap.String("index", index),
			zap.Int("accepted", accepted),
			zap.Int("rejected", rejected),
			zap.Strings("reasons", outcome.RejectionReasons()),
		)
		return
	}
	s.logger.Info("Batch ingested",
		zap.String("index", index),
		zap.Int("accepted", accepted),
	)
}
