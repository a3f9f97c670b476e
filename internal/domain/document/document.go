package document

import (
	"encoding/json"
	"fmt"

	"github.com/datapult/esdex/internal/domain"
)

// Document is an immutable field-name → value mapping (value object).
// The engine owns durable storage; a Document only has to be non-empty
// and JSON-serializable.
type Document struct {
	fields map[string]any
}

// New validates and creates a Document. Fields are cloned so later mutation
// of the input map does not leak into the document.
func New(fields map[string]any) (Document, error) {
	if len(fields) == 0 {
		return Document{}, domain.ErrEmptyDocument
	}
	if _, err := json.Marshal(fields); err != nil {
		return Document{}, fmt.Errorf("document not serializable: %w", err)
	}
	c := make(map[string]any, len(fields))
	for k, v := range fields {
		c[k] = v
	}
	return Document{fields: c}, nil
}

// Fields returns the field mapping.
func (d Document) Fields() map[string]any { return d.fields }

// MarshalJSON serializes the document body.
func (d Document) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(d.fields)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return b, nil
}
