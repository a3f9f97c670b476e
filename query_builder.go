package esdex

import (
	"context"
	"fmt"

	"github.com/datapult/esdex/internal/domain/query"
)

const defaultQuerySize = 10

// QueryBuilder is a fluent builder for queries against one index. Filters
// combine with logical AND. Construction errors surface on Do/DoAggregations.
type QueryBuilder struct {
	svc *SearchService

	filters   []query.Term
	size      int
	sortField string
	sortDesc  bool
	sorted    bool
	aggs      []query.Agg

	err error
}

// Where adds an exact-match filter on a field.
func (b *QueryBuilder) Where(field string, value any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	term, err := query.NewTerm(field, value)
	if err != nil {
		b.err = err
		return b
	}
	b.filters = append(b.filters, term)
	return b
}

// Limit sets the maximum number of hits to return. Use 0 for
// aggregation-only queries.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.size = n
	return b
}

// SortBy orders hits by a field. Desc selects descending order.
func (b *QueryBuilder) SortBy(field string, desc bool) *QueryBuilder {
	b.sortField = field
	b.sortDesc = desc
	b.sorted = true
	return b
}

// WithAggregation attaches a named aggregation to the query.
func (b *QueryBuilder) WithAggregation(a Aggregation) *QueryBuilder {
	if b.err != nil {
		return b
	}
	agg, err := toAgg(a)
	if err != nil {
		b.err = err
		return b
	}
	b.aggs = append(b.aggs, agg)
	return b
}

// Do executes the query and returns the matching documents.
func (b *QueryBuilder) Do(ctx context.Context) (SearchResult, error) {
	spec, err := b.build()
	if err != nil {
		return SearchResult{}, err
	}
	return b.svc.doSearch(ctx, spec)
}

// DoAggregations executes the query and returns its aggregation results.
// Requires at least one WithAggregation call.
func (b *QueryBuilder) DoAggregations(ctx context.Context) (AggregationResult, error) {
	spec, err := b.build()
	if err != nil {
		return AggregationResult{}, err
	}
	return b.svc.doAggregate(ctx, spec)
}

func (b *QueryBuilder) build() (query.Spec, error) {
	if b.err != nil {
		return query.Spec{}, fmt.Errorf("esdex: %w", b.err)
	}
	spec, err := query.New(b.filters, b.size, b.aggs)
	if err != nil {
		return query.Spec{}, fmt.Errorf("esdex: %w", err)
	}
	if b.sorted {
		spec = spec.WithSort(b.sortField, b.sortDesc)
	}
	return spec, nil
}
