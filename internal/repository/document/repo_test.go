package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/datapult/esdex/internal/domain"
	domdoc "github.com/datapult/esdex/internal/domain/document"
)

func testDocs(t *testing.T, n int) []domdoc.Document {
	t.Helper()
	docs := make([]domdoc.Document, 0, n)
	for i := 0; i < n; i++ {
		doc, err := domdoc.New(map[string]any{"user_id": "user_001", "seq": i})
		if err != nil {
			t.Fatalf("New document: %v", err)
		}
		docs = append(docs, doc)
	}
	return docs
}

func TestBulkWrite_EncodesActionAndSourcePairs(t *testing.T) {
	var gotPayload []byte
	store := &fakeStore{
		bulkFunc: func(_ context.Context, payload []byte) ([]byte, error) {
			gotPayload = payload
			return []byte(`{"errors":false,"items":[
				{"index":{"_id":"a","status":201}},
				{"index":{"_id":"b","status":201}}
			]}`), nil
		},
	}

	outcome, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 2))
	if err != nil {
		t.Fatalf("BulkWrite: %v", err)
	}
	if outcome.HadErrors() {
		t.Error("expected a clean outcome")
	}
	if got := outcome.Accepted(); got != 2 {
		t.Errorf("accepted = %d, want 2", got)
	}

	lines := bytes.Split(bytes.TrimSpace(gotPayload), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("payload has %d lines, want 4 (action+source per document)", len(lines))
	}
	var action struct {
		Index struct {
			Index string `json:"_index"`
		} `json:"index"`
	}
	if err := json.Unmarshal(lines[0], &action); err != nil {
		t.Fatalf("unmarshal action line: %v", err)
	}
	if action.Index.Index != "user_activity_logs" {
		t.Errorf("action targets %q, want user_activity_logs", action.Index.Index)
	}
}

func TestBulkWrite_PartialRejectionIsNotAnError(t *testing.T) {
	store := &fakeStore{
		bulkFunc: func(_ context.Context, _ []byte) ([]byte, error) {
			return []byte(`{"errors":true,"items":[
				{"index":{"_id":"a","status":201}},
				{"index":{"_id":"b","status":201}},
				{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse field [response_time]"}}},
				{"index":{"_id":"d","status":201}},
				{"index":{"_id":"e","status":201}}
			]}`), nil
		},
	}

	outcome, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 5))
	if err != nil {
		t.Fatalf("BulkWrite: %v", err)
	}
	if !outcome.HadErrors() {
		t.Error("expected HadErrors=true")
	}
	items := outcome.Items()
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
	for _, i := range []int{0, 1, 3, 4} {
		if items[i].Rejected() {
			t.Errorf("item %d marked rejected", i)
		}
	}
	if !items[2].Rejected() {
		t.Fatal("rejected document marked accepted")
	}
	want := "mapper_parsing_exception: failed to parse field [response_time]"
	if got := items[2].Reason(); got != want {
		t.Errorf("reason = %q, want %q", got, want)
	}
	if got := outcome.Accepted(); got != 4 {
		t.Errorf("accepted = %d, want 4", got)
	}
	reasons := outcome.RejectionReasons()
	if len(reasons) != 1 || reasons[0] != want {
		t.Errorf("distinct reasons = %v, want [%q]", reasons, want)
	}
}

func TestBulkWrite_ItemCountMismatchFailsClosed(t *testing.T) {
	store := &fakeStore{
		bulkFunc: func(_ context.Context, _ []byte) ([]byte, error) {
			return []byte(`{"errors":false,"items":[{"index":{"_id":"a","status":201}}]}`), nil
		},
	}

	_, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 2))
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Path != "items" {
		t.Errorf("path = %q, want items", de.Path)
	}
}

func TestBulkWrite_MissingItemsFailsClosed(t *testing.T) {
	store := &fakeStore{
		bulkFunc: func(_ context.Context, _ []byte) ([]byte, error) {
			return []byte(`{"errors":false}`), nil
		},
	}

	_, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 1))
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestBulkWrite_TransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection reset")
	store := &fakeStore{
		bulkFunc: func(_ context.Context, _ []byte) ([]byte, error) {
			return nil, wantErr
		},
	}

	_, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 1))
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}

func TestBulkWrite_RejectionWithoutErrorEnvelopeUsesStatus(t *testing.T) {
	store := &fakeStore{
		bulkFunc: func(_ context.Context, _ []byte) ([]byte, error) {
			return []byte(`{"errors":true,"items":[{"index":{"status":429}}]}`), nil
		},
	}

	outcome, err := New(store).BulkWrite(context.Background(), "user_activity_logs", testDocs(t, 1))
	if err != nil {
		t.Fatalf("BulkWrite: %v", err)
	}
	if got := outcome.Items()[0].Reason(); got != "status 429" {
		t.Errorf("reason = %q, want %q", got, "status 429")
	}
}

func TestRefresh(t *testing.T) {
	var gotIndex string
	store := &fakeStore{
		refreshFunc: func(_ context.Context, index string) error {
			gotIndex = index
			return nil
		},
	}

	if err := New(store).Refresh(context.Background(), "user_activity_logs"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if gotIndex != "user_activity_logs" {
		t.Errorf("refreshed %q, want user_activity_logs", gotIndex)
	}
}
