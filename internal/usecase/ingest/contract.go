package ingest

import (
	"context"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

// Repository defines the write contract for documents.
type Repository interface {
	BulkWrite(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error)
	Refresh(ctx context.Context, index string) error
}
