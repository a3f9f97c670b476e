package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/query"
)

func mustTerm(t *testing.T, field string, value any) query.Term {
	t.Helper()
	term, err := query.NewTerm(field, value)
	if err != nil {
		t.Fatalf("NewTerm: %v", err)
	}
	return term
}

func TestSearch_DecodesHitsInEngineOrder(t *testing.T) {
	var gotBody []byte
	store := &fakeStore{
		searchFunc: func(_ context.Context, index string, body []byte) ([]byte, error) {
			if index != "user_activity_logs" {
				t.Errorf("searched %q, want user_activity_logs", index)
			}
			gotBody = body
			return []byte(`{
				"hits": {
					"total": {"value": 42},
					"hits": [
						{"_id": "b", "_score": 1.5, "_source": {"user_id": "user_002"}},
						{"_id": "a", "_score": null, "_source": {"user_id": "user_001"}}
					]
				}
			}`), nil
		},
	}

	spec, err := query.New([]query.Term{mustTerm(t, "user_id", "user_002")}, 10, nil)
	if err != nil {
		t.Fatalf("New spec: %v", err)
	}

	page, err := New(store).Search(context.Background(), "user_activity_logs", spec)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 42 {
		t.Errorf("total = %d, want 42", page.Total)
	}
	if len(page.Hits) != 2 || page.Hits[0].ID != "b" || page.Hits[1].ID != "a" {
		t.Errorf("hits out of engine order: %+v", page.Hits)
	}
	if page.Hits[0].Score != 1.5 {
		t.Errorf("score = %v, want 1.5", page.Hits[0].Score)
	}

	var body map[string]any
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if body["size"] != float64(10) {
		t.Errorf("request size = %v, want 10", body["size"])
	}
	if _, ok := body["query"]; !ok {
		t.Error("request body missing query")
	}
}

func TestSearch_MissingTotalFailsClosed(t *testing.T) {
	store := &fakeStore{
		searchFunc: func(_ context.Context, _ string, _ []byte) ([]byte, error) {
			return []byte(`{"hits": {"hits": []}}`), nil
		},
	}

	spec, err := query.New(nil, 5, nil)
	if err != nil {
		t.Fatalf("New spec: %v", err)
	}

	_, err = New(store).Search(context.Background(), "user_activity_logs", spec)
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Path != "hits.total.value" {
		t.Errorf("path = %q, want hits.total.value", de.Path)
	}
}

func TestSearch_TransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	store := &fakeStore{
		searchFunc: func(_ context.Context, _ string, _ []byte) ([]byte, error) {
			return nil, wantErr
		},
	}

	spec, err := query.New(nil, 5, nil)
	if err != nil {
		t.Fatalf("New spec: %v", err)
	}

	_, err = New(store).Search(context.Background(), "user_activity_logs", spec)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}
