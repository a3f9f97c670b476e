package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

// store is the consumer interface for bulk writes (ISP).
type store interface {
	Bulk(ctx context.Context, payload []byte) ([]byte, error)
	Refresh(ctx context.Context, index string) error
}

// Repo submits batched document writes. A batch is one bulk request; the
// engine may accept some documents and reject others within that request,
// so the response is always fully parsed into a per-document Outcome.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// BulkWrite encodes the documents as one bulk payload, submits it, and
// parses per-document outcomes. Per-document rejection is never an error;
// only connectivity or malformed-request failures are.
func (r *Repo) BulkWrite(ctx context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error) {
	payload, err := encodeBulk(index, docs)
	if err != nil {
		return bulk.Outcome{}, err
	}

	raw, err := r.store.Bulk(ctx, payload)
	if err != nil {
		return bulk.Outcome{}, fmt.Errorf("bulk write %s: %w", index, err)
	}

	return decodeBulk(raw, len(docs))
}

// Refresh makes the just-written documents visible to subsequent reads.
func (r *Repo) Refresh(ctx context.Context, index string) error {
	if err := r.store.Refresh(ctx, index); err != nil {
		return fmt.Errorf("refresh %s: %w", index, err)
	}
	return nil
}

// encodeBulk builds the NDJSON payload: one (action, source) line pair per
// document, each action self-describing its target index.
func encodeBulk(index string, docs []domdoc.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	action := map[string]map[string]string{
		"index": {"_index": index},
	}
	for i, doc := range docs {
		if err := enc.Encode(action); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode document %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
