package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/schema"
)

// alreadyExistsType is the exact engine error type that identifies a
// creation race: another provisioner created the index between our existence
// check and our create request. Matching is on error.type, never on a
// substring of the message.
const alreadyExistsType = "resource_already_exists_exception"

// store is the consumer interface for provisioning (ISP).
type store interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, name string, body []byte) error
}

// Repo provisions index schemas. Provisioning is idempotent: an existing
// index is left untouched — no mapping diff, no migration.
type Repo struct {
	store store
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Ensure creates the index for the schema if it does not exist.
// Returns created=false when the index was already present, including the
// case where a concurrent provisioner won the creation race.
func (r *Repo) Ensure(ctx context.Context, sch schema.Schema) (bool, error) {
	exists, err := r.store.IndexExists(ctx, sch.Name())
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", sch.Name(), err)
	}
	if exists {
		return false, nil
	}

	body, err := json.Marshal(sch.MappingBody())
	if err != nil {
		return false, fmt.Errorf("marshal mapping for %s: %w", sch.Name(), err)
	}

	if err := r.store.CreateIndex(ctx, sch.Name(), body); err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("provision index %s: %w", sch.Name(), err)
	}
	return true, nil
}

func isAlreadyExists(err error) bool {
	var se *domain.StatusError
	return errors.As(err, &se) && se.Type == alreadyExistsType
}
