package analytics

import (
	"context"

	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

// Searcher defines the read contract for queries and aggregations.
type Searcher interface {
	Search(ctx context.Context, index string, spec query.Spec) (result.Page, error)
	Aggregate(ctx context.Context, index string, spec query.Spec) (result.Aggregations, error)
}
