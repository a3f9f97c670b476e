package analytics

import (
	"context"

	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

// fakeSearcher implements Searcher with overridable behavior per test.
type fakeSearcher struct {
	searchFunc    func(ctx context.Context, index string, spec query.Spec) (result.Page, error)
	aggregateFunc func(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error)
}

func (f *fakeSearcher) Search(ctx context.Context, index string, spec query.Spec) (result.Page, error) {
	return f.searchFunc(ctx, index, spec)
}

func (f *fakeSearcher) Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error) {
	return f.aggregateFunc(ctx, index, spec)
}
