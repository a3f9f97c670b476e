package esdex

import (
	"context"
	"fmt"

	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

// SearchService runs queries and aggregations over one index.
type SearchService struct {
	index string
	svc   analyticsUseCase
}

// NewQuery starts a fluent query against the service's index.
func (s *SearchService) NewQuery() *QueryBuilder {
	return &QueryBuilder{svc: s, size: defaultQuerySize}
}

// Aggregate runs the named aggregations over the whole index, requesting no
// hits. For filtered or mixed queries use NewQuery with WithAggregation.
func (s *SearchService) Aggregate(ctx context.Context, aggs ...Aggregation) (AggregationResult, error) {
	b := s.NewQuery().Limit(0)
	for _, a := range aggs {
		b = b.WithAggregation(a)
	}
	return b.DoAggregations(ctx)
}

func (s *SearchService) doSearch(ctx context.Context, spec query.Spec) (SearchResult, error) {
	page, err := s.svc.Search(ctx, s.index, spec)
	if err != nil {
		return SearchResult{}, fmt.Errorf("esdex: %w", err)
	}
	return fromPage(page), nil
}

func (s *SearchService) doAggregate(ctx context.Context, spec query.Spec) (AggregationResult, error) {
	aggs, err := s.svc.Aggregate(ctx, s.index, spec)
	if err != nil {
		return AggregationResult{}, fmt.Errorf("esdex: %w", err)
	}
	return fromAggregations(aggs), nil
}

// toAgg converts a public aggregation request to its validated internal form.
func toAgg(a Aggregation) (query.Agg, error) {
	switch agg := a.(type) {
	case MetricAgg:
		return query.NewMetric(agg.Name, query.MetricKind(agg.Kind), agg.Field)
	case TermsAgg:
		terms, err := query.NewTerms(agg.Name, agg.Field, agg.Size)
		if err != nil {
			return nil, err
		}
		if agg.Metric != nil {
			sub, err := query.NewMetric(agg.Metric.Name, query.MetricKind(agg.Metric.Kind), agg.Metric.Field)
			if err != nil {
				return nil, err
			}
			terms = terms.WithMetric(sub)
		}
		return terms, nil
	case DateHistogramAgg:
		return query.NewDateHistogram(agg.Name, agg.Field, query.Interval(agg.Interval))
	default:
		return nil, fmt.Errorf("unsupported aggregation type %T", a)
	}
}

func fromPage(p result.Page) SearchResult {
	hits := make([]Hit, 0, len(p.Hits))
	for _, h := range p.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return SearchResult{Total: p.Total, Hits: hits}
}

func fromAggregations(a result.Aggregations) AggregationResult {
	out := AggregationResult{
		Terms:      make(map[string][]TermsBucket, len(a.Terms)),
		Metrics:    make(map[string]MetricValue, len(a.Metrics)),
		Histograms: make(map[string][]HistogramBucket, len(a.Histograms)),
	}
	for name, buckets := range a.Terms {
		converted := make([]TermsBucket, 0, len(buckets))
		for _, b := range buckets {
			metrics := make(map[string]MetricValue, len(b.Metrics))
			for mName, m := range b.Metrics {
				metrics[mName] = fromMetric(m)
			}
			converted = append(converted, TermsBucket{Key: b.Key, DocCount: b.DocCount, Metrics: metrics})
		}
		out.Terms[name] = converted
	}
	for name, m := range a.Metrics {
		out.Metrics[name] = fromMetric(m)
	}
	for name, buckets := range a.Histograms {
		converted := make([]HistogramBucket, 0, len(buckets))
		for _, b := range buckets {
			converted = append(converted, HistogramBucket{Time: b.Time, Label: b.Label, DocCount: b.DocCount})
		}
		out.Histograms[name] = converted
	}
	return out
}

func fromMetric(m result.Metric) MetricValue {
	v, ok := m.Value()
	return MetricValue{value: v, present: ok}
}
