package query

import (
	"fmt"

	"github.com/datapult/esdex/internal/domain"
)

// Term is an exact-match filter predicate on a single field.
type Term struct {
	field string
	value any
}

// NewTerm validates and creates a term predicate.
func NewTerm(field string, value any) (Term, error) {
	if field == "" {
		return Term{}, fmt.Errorf("term field is required: %w", domain.ErrInvalidQuery)
	}
	if value == nil {
		return Term{}, fmt.Errorf("term value for %q is required: %w", field, domain.ErrInvalidQuery)
	}
	return Term{field: field, value: value}, nil
}

// Field returns the filtered field name.
func (t Term) Field() string { return t.field }

// Value returns the exact-match value.
func (t Term) Value() any { return t.value }

// Sort is a single-field sort order.
type Sort struct {
	Field string
	Desc  bool
}

// Spec is a composed query: filter predicates combined under one conjunction,
// an explicit result size, an optional sort, and named aggregations.
// Predicates are kept as a flat list under one bool/must node so that
// adding should/must_not groups later is a local change.
type Spec struct {
	filters []Term
	size    int
	sort    *Sort
	aggs    []Agg
}

// New validates and creates a Spec. Size is always explicit: callers state
// how many hits they want, even zero for aggregation-only queries.
func New(filters []Term, size int, aggs []Agg) (Spec, error) {
	if size < 0 {
		return Spec{}, fmt.Errorf("size must be >= 0, got %d: %w", size, domain.ErrInvalidQuery)
	}
	seen := make(map[string]bool, len(aggs))
	for _, a := range aggs {
		if a.Name() == "" {
			return Spec{}, fmt.Errorf("aggregation name is required: %w", domain.ErrInvalidQuery)
		}
		if seen[a.Name()] {
			return Spec{}, fmt.Errorf("duplicate aggregation %q: %w", a.Name(), domain.ErrInvalidQuery)
		}
		seen[a.Name()] = true
	}
	return Spec{filters: filters, size: size, aggs: aggs}, nil
}

// WithSort returns a copy sorted by the given field.
func (s Spec) WithSort(field string, desc bool) Spec {
	s.sort = &Sort{Field: field, Desc: desc}
	return s
}

// Filters returns the term predicates.
func (s Spec) Filters() []Term { return s.filters }

// Size returns the explicit result size.
func (s Spec) Size() int { return s.size }

// Aggs returns the named aggregation requests.
func (s Spec) Aggs() []Agg { return s.aggs }

// Body builds the engine's structured request body.
func (s Spec) Body() map[string]any {
	body := map[string]any{
		"size":  s.size,
		"query": s.queryNode(),
	}
	if s.sort != nil {
		order := "asc"
		if s.sort.Desc {
			order = "desc"
		}
		body["sort"] = []map[string]any{
			{s.sort.Field: map[string]any{"order": order}},
		}
	}
	if len(s.aggs) > 0 {
		aggs := make(map[string]any, len(s.aggs))
		for _, a := range s.aggs {
			aggs[a.Name()] = a.node()
		}
		body["aggs"] = aggs
	}
	return body
}

// queryNode combines all predicates with logical AND under one bool node.
func (s Spec) queryNode() map[string]any {
	if len(s.filters) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}
	must := make([]map[string]any, len(s.filters))
	for i, t := range s.filters {
		must[i] = map[string]any{
			"term": map[string]any{t.field: t.value},
		}
	}
	return map[string]any{
		"bool": map[string]any{"must": must},
	}
}
