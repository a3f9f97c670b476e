package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

// Service runs searches and aggregations over an index.
type Service struct {
	searcher Searcher
	logger   *zap.Logger
}

// New creates an analytics service.
func New(searcher Searcher, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, logger: logger}
}

// Search returns the documents matching the query, in engine order.
func (s *Service) Search(ctx context.Context, index string, spec query.Spec) (result.Page, error) {
	page, err := s.searcher.Search(ctx, index, spec)
	if err != nil {
		return result.Page{}, fmt.Errorf("search: %w", err)
	}

	s.logger.Debug("Search completed",
		zap.String("index", index),
		zap.Int("filters", len(spec.Filters())),
		zap.Int64("total", page.Total),
		zap.Int("returned", len(page.Hits)),
	)
	return page, nil
}

// Aggregate runs the query's aggregations. A query without aggregations is a
// caller error here: use Search for plain document retrieval.
func (s *Service) Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error) {
	if len(spec.Aggs()) == 0 {
		return result.Aggregations{}, fmt.Errorf("aggregate without aggregations: %w", domain.ErrInvalidQuery)
	}

	aggs, err := s.searcher.Aggregate(ctx, index, spec)
	if err != nil {
		return result.Aggregations{}, fmt.Errorf("aggregate: %w", err)
	}

	s.logger.Debug("Aggregation completed",
		zap.String("index", index),
		zap.Int("requested", len(spec.Aggs())),
	)
	return aggs, nil
}
