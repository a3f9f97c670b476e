package index

import (
	"context"

	"github.com/datapult/esdex/internal/domain/schema"
)

// Repository defines the provisioning contract for indices.
type Repository interface {
	Ensure(ctx context.Context, sch schema.Schema) (created bool, err error)
}
