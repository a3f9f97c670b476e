package esdex

import (
	"context"
	"errors"
	"testing"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/bulk"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

func TestBulkInsert_ConvertsOutcome(t *testing.T) {
	svc := &DocumentService{
		index: "user_activity_logs",
		svc: &fakeIngestUseCase{
			ingestFunc: func(_ context.Context, index string, docs []domdoc.Document) (bulk.Outcome, error) {
				if index != "user_activity_logs" {
					t.Errorf("index = %q", index)
				}
				if len(docs) != 2 {
					t.Errorf("got %d documents, want 2", len(docs))
				}
				return bulk.NewOutcome(true, []bulk.Result{
					bulk.NewAccepted("a"),
					bulk.NewRejected("", "mapper_parsing_exception: bad field"),
				}), nil
			},
		},
	}

	outcome, err := svc.BulkInsert(context.Background(), []Document{
		{"action": "login"},
		{"action": "logout"},
	})
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if !outcome.HadErrors {
		t.Error("expected HadErrors=true")
	}
	if outcome.Accepted() != 1 {
		t.Errorf("accepted = %d, want 1", outcome.Accepted())
	}
	if outcome.Items[0].ID != "a" || !outcome.Items[0].Accepted {
		t.Errorf("item 0 = %+v", outcome.Items[0])
	}
	if outcome.Items[1].Accepted || outcome.Items[1].Reason == "" {
		t.Errorf("item 1 = %+v", outcome.Items[1])
	}
}

func TestBulkInsert_RejectsEmptyDocumentBeforeSubmission(t *testing.T) {
	svc := &DocumentService{
		svc: &fakeIngestUseCase{
			ingestFunc: func(_ context.Context, _ string, _ []domdoc.Document) (bulk.Outcome, error) {
				t.Fatal("Ingest must not be called with an invalid document")
				return bulk.Outcome{}, nil
			},
		},
	}

	_, err := svc.BulkInsert(context.Background(), []Document{{}})
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestToAgg_UnknownMetricKind(t *testing.T) {
	_, err := toAgg(MetricAgg{Name: "m", Kind: MetricKind("median"), Field: "response_time"})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestToAgg_DateHistogram(t *testing.T) {
	agg, err := toAgg(DateHistogramAgg{Name: "per_day", Field: "timestamp", Interval: IntervalDay})
	if err != nil {
		t.Fatalf("toAgg: %v", err)
	}
	if agg.Name() != "per_day" {
		t.Errorf("name = %q", agg.Name())
	}
}
