package index

import (
	"context"

	"github.com/datapult/esdex/internal/domain/schema"
)

// fakeRepo implements Repository with overridable behavior per test.
type fakeRepo struct {
	ensureFunc func(ctx context.Context, sch schema.Schema) (bool, error)
}

func (f *fakeRepo) Ensure(ctx context.Context, sch schema.Schema) (bool, error) {
	return f.ensureFunc(ctx, sch)
}
