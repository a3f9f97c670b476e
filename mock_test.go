package esdex

import (
	"context"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
	"github.com/datapult/esdex/internal/domain/schema"
)

type fakeIndexUseCase struct {
	ensureFunc func(ctx context.Context, sch schema.Schema) (bool, error)
}

func (f *fakeIndexUseCase) Ensure(ctx context.Context, sch schema.Schema) (bool, error) {
	return f.ensureFunc(ctx, sch)
}

type fakeIngestUseCase struct {
	ingestFunc func(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error)
}

func (f *fakeIngestUseCase) Ingest(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error) {
	return f.ingestFunc(ctx, index, docs)
}

type fakeAnalyticsUseCase struct {
	searchFunc    func(ctx context.Context, index string, spec query.Spec) (result.Page, error)
	aggregateFunc func(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error)
}

func (f *fakeAnalyticsUseCase) Search(ctx context.Context, index string, spec query.Spec) (result.Page, error) {
	return f.searchFunc(ctx, index, spec)
}

func (f *fakeAnalyticsUseCase) Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error) {
	return f.aggregateFunc(ctx, index, spec)
}
