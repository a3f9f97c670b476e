package schema

import (
	"fmt"
	"regexp"

	"github.com/datapult/esdex/internal/domain"
)

var indexNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// Schema is an index definition: a name, an ordered list of field
// declarations, and shard/replica settings. Declared once, never mutated;
// re-provisioning an existing index is a safe no-op.
type Schema struct {
	name     string
	fields   []Field
	shards   int
	replicas int
}

// New validates and creates a Schema.
// Index names follow the engine's rules: lowercase, no leading punctuation.
func New(name string, fields []Field, shards, replicas int) (Schema, error) {
	if name == "" {
		return Schema{}, fmt.Errorf("index name is required: %w", domain.ErrInvalidSchema)
	}
	if !indexNameRegex.MatchString(name) {
		return Schema{}, fmt.Errorf("invalid index name %q: %w", name, domain.ErrInvalidSchema)
	}
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("schema %q has no fields: %w", name, domain.ErrInvalidSchema)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return Schema{}, fmt.Errorf("duplicate field %q: %w", f.Name(), domain.ErrInvalidSchema)
		}
		seen[f.Name()] = true
	}
	if shards <= 0 {
		shards = 1
	}
	if replicas < 0 {
		replicas = 0
	}
	return Schema{name: name, fields: fields, shards: shards, replicas: replicas}, nil
}

// Name returns the index name.
func (s Schema) Name() string { return s.name }

// Fields returns the field declarations in declaration order.
func (s Schema) Fields() []Field { return s.fields }

// Shards returns the primary shard count.
func (s Schema) Shards() int { return s.shards }

// Replicas returns the replica count.
func (s Schema) Replicas() int { return s.replicas }

// MappingBody builds the index creation request body: settings plus the
// full field-mapping declaration.
func (s Schema) MappingBody() map[string]any {
	props := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		props[f.Name()] = f.mappingNode()
	}
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   s.shards,
			"number_of_replicas": s.replicas,
		},
		"mappings": map[string]any{
			"properties": props,
		},
	}
}
