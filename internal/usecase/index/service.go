package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/datapult/esdex/internal/domain/schema"
)

// Service provisions index schemas.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates an index service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Ensure makes sure the schema's index exists. Safe to call repeatedly:
// an existing index is reported, not recreated.
func (s *Service) Ensure(ctx context.Context, sch schema.Schema) (bool, error) {
	created, err := s.repo.Ensure(ctx, sch)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}

	if created {
		s.logger.Info("Index created",
			zap.String("index", sch.Name()),
			zap.Int("fields", len(sch.Fields())),
			zap.Int("shards", sch.Shards()),
			zap.Int("replicas", sch.Replicas()),
		)
	} else {
		s.logger.Debug("Index already exists", zap.String("index", sch.Name()))
	}
	return created, nil
}
