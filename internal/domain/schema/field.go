package schema

import (
	"fmt"

	"github.com/datapult/esdex/internal/domain"
)

// FieldType is the engine-level type of a schema field.
type FieldType string

// Supported field types.
const (
	Keyword  FieldType = "keyword"
	Text     FieldType = "text"
	Integer  FieldType = "integer"
	Float    FieldType = "float"
	Date     FieldType = "date"
	GeoPoint FieldType = "geo_point"
	IP       FieldType = "ip"
)

func (t FieldType) valid() bool {
	switch t {
	case Keyword, Text, Integer, Float, Date, GeoPoint, IP:
		return true
	}
	return false
}

// Field is a single (name, type, indexing mode) declaration.
type Field struct {
	name string
	typ  FieldType

	// keywordSub adds an exact-match .keyword sub-field to a text field,
	// so the same value can be both tokenized and aggregated on.
	keywordSub bool
}

// NewField validates and creates a Field.
func NewField(name string, typ FieldType) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required: %w", domain.ErrInvalidSchema)
	}
	if !typ.valid() {
		return Field{}, fmt.Errorf("unknown field type %q for %q: %w", typ, name, domain.ErrInvalidSchema)
	}
	return Field{name: name, typ: typ}, nil
}

// WithKeywordSubfield returns a copy with an exact-match sub-field enabled.
// Only meaningful for text fields.
func (f Field) WithKeywordSubfield() (Field, error) {
	if f.typ != Text {
		return Field{}, fmt.Errorf("keyword sub-field on non-text field %q: %w", f.name, domain.ErrInvalidSchema)
	}
	f.keywordSub = true
	return f, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Type returns the field type.
func (f Field) Type() FieldType { return f.typ }

// HasKeywordSubfield reports whether the field carries a .keyword sub-field.
func (f Field) HasKeywordSubfield() bool { return f.keywordSub }

func (f Field) mappingNode() map[string]any {
	node := map[string]any{"type": string(f.typ)}
	if f.keywordSub {
		node["fields"] = map[string]any{
			"keyword": map[string]any{"type": "keyword"},
		}
	}
	return node
}
