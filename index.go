package esdex

import "context"

// IndexService provisions index schemas.
type IndexService struct {
	svc indexUseCase
}

// Ensure creates the schema's index if it does not exist. Returns true when
// the index was created, false when it was already present. Repeated calls
// with the same schema are safe no-ops.
func (s *IndexService) Ensure(ctx context.Context, sch Schema) (bool, error) {
	internal, err := toSchema(sch)
	if err != nil {
		return false, err
	}
	return s.svc.Ensure(ctx, internal)
}
