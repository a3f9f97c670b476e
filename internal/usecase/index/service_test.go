package index

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/datapult/esdex/internal/domain/schema"
)

func testSchema(t *testing.T) schema.Schema {
	t.Helper()
	f, err := schema.NewField("action", schema.Keyword)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	sch, err := schema.New("user_activity_logs", []schema.Field{f}, 1, 1)
	if err != nil {
		t.Fatalf("New schema: %v", err)
	}
	return sch
}

func TestEnsure_ReportsCreation(t *testing.T) {
	repo := &fakeRepo{
		ensureFunc: func(_ context.Context, _ schema.Schema) (bool, error) {
			return true, nil
		},
	}

	created, err := New(repo, zap.NewNop()).Ensure(context.Background(), testSchema(t))
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
}

func TestEnsure_ReportsExisting(t *testing.T) {
	repo := &fakeRepo{
		ensureFunc: func(_ context.Context, _ schema.Schema) (bool, error) {
			return false, nil
		},
	}

	created, err := New(repo, zap.NewNop()).Ensure(context.Background(), testSchema(t))
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if created {
		t.Error("expected created=false")
	}
}

func TestEnsure_WrapsRepositoryError(t *testing.T) {
	wantErr := errors.New("engine unavailable")
	repo := &fakeRepo{
		ensureFunc: func(_ context.Context, _ schema.Schema) (bool, error) {
			return false, wantErr
		},
	}

	_, err := New(repo, zap.NewNop()).Ensure(context.Background(), testSchema(t))
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped repo error, got %v", err)
	}
}
