package esdex

import (
	"context"
	"errors"
	"testing"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/schema"
)

func TestEnsure_ConvertsSchema(t *testing.T) {
	var got schema.Schema
	svc := &IndexService{svc: &fakeIndexUseCase{
		ensureFunc: func(_ context.Context, sch schema.Schema) (bool, error) {
			got = sch
			return true, nil
		},
	}}

	created, err := svc.Ensure(context.Background(), Schema{
		Name: "user_activity_logs",
		Fields: []Field{
			{Name: "user_id", Type: FieldKeyword},
			{Name: "username", Type: FieldText, KeywordSubfield: true},
			{Name: "response_time", Type: FieldFloat},
			{Name: "location", Type: FieldGeoPoint},
			{Name: "timestamp", Type: FieldDate},
		},
		Shards:   1,
		Replicas: 1,
	})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if got.Name() != "user_activity_logs" {
		t.Errorf("name = %q", got.Name())
	}
	if len(got.Fields()) != 5 {
		t.Fatalf("got %d fields, want 5", len(got.Fields()))
	}
	if !got.Fields()[1].HasKeywordSubfield() {
		t.Error("username should carry a keyword sub-field")
	}
	if got.Replicas() != 1 {
		t.Errorf("replicas = %d, want 1", got.Replicas())
	}
}

func TestEnsure_InvalidFieldType(t *testing.T) {
	svc := &IndexService{svc: &fakeIndexUseCase{
		ensureFunc: func(_ context.Context, _ schema.Schema) (bool, error) {
			t.Fatal("Ensure must not be called for an invalid schema")
			return false, nil
		},
	}}

	_, err := svc.Ensure(context.Background(), Schema{
		Name:   "logs",
		Fields: []Field{{Name: "x", Type: FieldType("decimal")}},
	})
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestEnsure_KeywordSubfieldOnNonText(t *testing.T) {
	svc := &IndexService{svc: &fakeIndexUseCase{}}

	_, err := svc.Ensure(context.Background(), Schema{
		Name:   "logs",
		Fields: []Field{{Name: "x", Type: FieldKeyword, KeywordSubfield: true}},
	})
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
}
