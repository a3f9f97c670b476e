package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/datapult/esdex/internal/domain"
)

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}

	_, err = New(map[string]any{})
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestNew_RejectsUnserializable(t *testing.T) {
	_, err := New(map[string]any{"ch": make(chan int)})
	if err == nil {
		t.Fatal("expected error for an unserializable field")
	}
}

func TestNew_ClonesInput(t *testing.T) {
	fields := map[string]any{"action": "login"}
	doc, err := New(fields)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fields["action"] = "logout"
	if doc.Fields()["action"] != "login" {
		t.Error("mutating the input map leaked into the document")
	}
}

func TestMarshalJSON(t *testing.T) {
	doc, err := New(map[string]any{"action": "login", "response_time": 0.42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if round["action"] != "login" || round["response_time"] != 0.42 {
		t.Errorf("round trip = %v", round)
	}
}
