package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

// store is the consumer interface for reads (ISP).
type store interface {
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
}

// Repo executes queries and decodes the engine's responses into typed
// results. Decoding is fail-closed: any response shape that does not match
// what the submitted query implies is a DecodeError naming the missing path,
// never a silently zeroed value.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs the query and returns the matching documents.
func (r *Repo) Search(ctx context.Context, index string, spec query.Spec) (result.Page, error) {
	raw, err := r.execute(ctx, index, spec)
	if err != nil {
		return result.Page{}, err
	}
	return decodeHits(raw)
}

// Aggregate runs the query and returns its aggregation results. Aggregations
// are decoded against the submitted specs: every named aggregation must be
// present in the response.
func (r *Repo) Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error) {
	raw, err := r.execute(ctx, index, spec)
	if err != nil {
		return result.Aggregations{}, err
	}
	return decodeAggregations(raw, spec.Aggs())
}

func (r *Repo) execute(ctx context.Context, index string, spec query.Spec) ([]byte, error) {
	body, err := json.Marshal(spec.Body())
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	raw, err := r.store.Search(ctx, index, body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return raw, nil
}
