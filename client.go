package esdex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
	"github.com/datapult/esdex/internal/domain/schema"
	"github.com/datapult/esdex/internal/es"
	documentrepo "github.com/datapult/esdex/internal/repository/document"
	indexrepo "github.com/datapult/esdex/internal/repository/index"
	searchrepo "github.com/datapult/esdex/internal/repository/search"
	analyticsuc "github.com/datapult/esdex/internal/usecase/analytics"
	indexuc "github.com/datapult/esdex/internal/usecase/index"
	ingestuc "github.com/datapult/esdex/internal/usecase/ingest"
)

// Внутренние интерфейсы для подмены в тестах.
type indexUseCase interface {
	Ensure(ctx context.Context, sch schema.Schema) (bool, error)
}

type ingestUseCase interface {
	Ingest(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error)
}

type analyticsUseCase interface {
	Search(ctx context.Context, index string, spec query.Spec) (result.Page, error)
	Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error)
}

// Client is the esdex SDK entry point. One Client owns one engine session;
// Close releases it and is safe to call more than once.
type Client struct {
	store        *es.Store
	indexSvc     indexUseCase
	ingestSvc    ingestUseCase
	analyticsSvc analyticsUseCase

	closeOnce sync.Once
}

// New creates a Client and verifies engine connectivity.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addresses) == 0 {
		return nil, errors.New("esdex: engine address required (use WithAddresses)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := es.NewStore(es.Config{
		Addresses:             cfg.addresses,
		Username:              cfg.username,
		Password:              cfg.password,
		InsecureSkipTLSVerify: cfg.insecureSkipVerify,
		Transport:             cfg.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("esdex: %w", err)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("esdex: engine not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store *es.Store, cfg *clientConfig) *Client {
	indexSvc := indexuc.New(indexrepo.New(store), cfg.logger)

	ingestSvc := ingestuc.New(documentrepo.New(store), cfg.logger)
	if cfg.maxBatchSize > 0 {
		ingestSvc = ingestSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}

	analyticsSvc := analyticsuc.New(searchrepo.New(store), cfg.logger)

	return &Client{
		store:        store,
		indexSvc:     indexSvc,
		ingestSvc:    ingestSvc,
		analyticsSvc: analyticsSvc,
	}
}

// Close releases the engine session. Safe to call repeatedly; calls after
// the first are no-ops.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.store != nil {
			c.store.Close()
		}
	})
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("esdex: ping: %w", err)
	}
	return nil
}

// Indices returns the index provisioning service.
func (c *Client) Indices() *IndexService {
	return &IndexService{svc: c.indexSvc}
}

// Documents returns the document service for a given index.
func (c *Client) Documents(index string) *DocumentService {
	return &DocumentService{index: index, svc: c.ingestSvc}
}

// Search returns the search service for a given index.
func (c *Client) Search(index string) *SearchService {
	return &SearchService{index: index, svc: c.analyticsSvc}
}
