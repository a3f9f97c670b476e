package esdex

import (
	"context"
	"fmt"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

// DocumentService writes documents into one index.
type DocumentService struct {
	index string
	svc   ingestUseCase
}

// BulkInsert writes the documents as one batch and makes them visible to
// subsequent searches. Individual rejections are reported in the outcome,
// not as an error: inspect BulkOutcome.HadErrors and Items.
func (s *DocumentService) BulkInsert(ctx context.Context, docs []Document) (BulkOutcome, error) {
	internal := make([]domdoc.Document, 0, len(docs))
	for i, d := range docs {
		doc, err := domdoc.New(d)
		if err != nil {
			return BulkOutcome{}, fmt.Errorf("esdex: document %d: %w", i, err)
		}
		internal = append(internal, doc)
	}

	outcome, err := s.svc.Ingest(ctx, s.index, internal)
	if err != nil {
		return BulkOutcome{}, fmt.Errorf("esdex: %w", err)
	}
	return fromOutcome(outcome), nil
}

func fromOutcome(o bulk.Outcome) BulkOutcome {
	items := make([]BulkItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, BulkItem{
			ID:       it.ID(),
			Accepted: !it.Rejected(),
			Reason:   it.Reason(),
		})
	}
	return BulkOutcome{HadErrors: o.HadErrors(), Items: items}
}
