package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch signals a bulk write with no documents.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrBatchTooLarge signals a bulk write exceeding the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrEmptyDocument signals a document with no fields.
	ErrEmptyDocument = errors.New("empty document")
	// ErrInvalidSchema signals an invalid index schema definition.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidQuery signals an invalid query definition.
	ErrInvalidQuery = errors.New("invalid query")
)

// StatusError is a non-2xx engine response. The engine's error envelope is
// preserved so callers can diagnose without re-running the request.
type StatusError struct {
	StatusCode int
	Type       string // engine error.type, e.g. "resource_already_exists_exception"
	Reason     string // engine error.reason
	Body       string // response body excerpt
}

func (e *StatusError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("engine status %d: %s: %s", e.StatusCode, e.Type, e.Reason)
	}
	return fmt.Sprintf("engine status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is a response shape mismatch, naming the offending path
// (e.g. "aggregations.by_action.buckets").
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode response: malformed %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("decode response: missing or malformed %s", e.Path)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// NewDecodeError creates a DecodeError for the given response path.
func NewDecodeError(path string) error {
	return &DecodeError{Path: path}
}
