package esdex

import (
	"fmt"

	"github.com/datapult/esdex/internal/domain/schema"
)

// FieldType defines the engine-level type of a schema field.
type FieldType string

// Field type constants.
const (
	FieldKeyword  FieldType = "keyword"
	FieldText     FieldType = "text"
	FieldInteger  FieldType = "integer"
	FieldFloat    FieldType = "float"
	FieldDate     FieldType = "date"
	FieldGeoPoint FieldType = "geo_point"
	FieldIP       FieldType = "ip"
)

// Field is a single field declaration. KeywordSubfield adds an exact-match
// .keyword sub-field (text fields only), so the same value can be both
// tokenized and aggregated on.
type Field struct {
	Name            string
	Type            FieldType
	KeywordSubfield bool
}

// Schema declares an index: its name, fields, and shard/replica settings.
// Shards defaults to 1, replicas to 0.
type Schema struct {
	Name     string
	Fields   []Field
	Shards   int
	Replicas int
}

// toSchema converts the public schema to its validated internal form.
func toSchema(s Schema) (schema.Schema, error) {
	fields := make([]schema.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		field, err := schema.NewField(f.Name, schema.FieldType(f.Type))
		if err != nil {
			return schema.Schema{}, fmt.Errorf("esdex: %w", err)
		}
		if f.KeywordSubfield {
			field, err = field.WithKeywordSubfield()
			if err != nil {
				return schema.Schema{}, fmt.Errorf("esdex: %w", err)
			}
		}
		fields = append(fields, field)
	}

	sch, err := schema.New(s.Name, fields, s.Shards, s.Replicas)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("esdex: %w", err)
	}
	return sch, nil
}
