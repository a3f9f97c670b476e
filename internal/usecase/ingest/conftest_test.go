package ingest

import (
	"context"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

// fakeRepo implements Repository with overridable behavior per test.
type fakeRepo struct {
	bulkWriteFunc func(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error)
	refreshFunc   func(ctx context.Context, index string) error
}

func (f *fakeRepo) BulkWrite(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error) {
	return f.bulkWriteFunc(ctx, index, docs)
}

func (f *fakeRepo) Refresh(ctx context.Context, index string) error {
	if f.refreshFunc == nil {
		return nil
	}
	return f.refreshFunc(ctx, index)
}
