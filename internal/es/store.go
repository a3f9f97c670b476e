// Package es wraps the Elasticsearch client behind the narrow surface the
// repositories need: existence checks, index creation, bulk writes, refresh,
// and search. Non-2xx responses are classified into domain.StatusError;
// connectivity failures propagate as wrapped transport errors.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/metrics"
)

// maxErrorBody caps the error body excerpt kept in StatusError.
const maxErrorBody = 2048

// Config holds engine connection settings. All values are explicit inputs;
// nothing is read from global state.
type Config struct {
	Addresses []string
	Username  string
	Password  string

	// InsecureSkipTLSVerify disables certificate verification (dev clusters).
	InsecureSkipTLSVerify bool

	// Transport overrides the HTTP transport (tests inject fakes here).
	Transport http.RoundTripper
}

// Store is one connection/session to the engine.
type Store struct {
	client    *elasticsearch.Client
	transport http.RoundTripper
}

// NewStore creates a Store. It does not contact the engine; use Ping for that.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("engine address required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 30 * time.Second,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipTLSVerify, //nolint:gosec // explicit dev-cluster opt-in
			},
		}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine client: %w", err)
	}

	return &Store{client: client, transport: transport}, nil
}

// Ping verifies connectivity to the engine.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return observeSince("info", start, fmt.Errorf("engine info: %w", err))
	}
	defer res.Body.Close()
	if res.IsError() {
		return observeSince("info", start, statusError(res))
	}
	return observeSince("info", start, nil)
}

// IndexExists reports whether the named index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	res, err := s.client.Indices.Exists(
		[]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, observeSince("index_exists", start, fmt.Errorf("check index %s: %w", name, err))
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, observeSince("index_exists", start, nil)
	case http.StatusNotFound:
		return false, observeSince("index_exists", start, nil)
	default:
		return false, observeSince("index_exists", start, statusError(res))
	}
}

// CreateIndex creates an index with the given settings/mappings body.
func (s *Store) CreateIndex(ctx context.Context, name string, body []byte) error {
	start := time.Now()
	res, err := s.client.Indices.Create(
		name,
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return observeSince("index_create", start, fmt.Errorf("create index %s: %w", name, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return observeSince("index_create", start, statusError(res))
	}
	return observeSince("index_create", start, nil)
}

// Bulk submits one NDJSON bulk payload and returns the raw response body.
// A 2xx response is returned even when individual documents were rejected;
// per-document outcomes live in the body.
func (s *Store) Bulk(ctx context.Context, payload []byte) ([]byte, error) {
	start := time.Now()
	res, err := s.client.Bulk(
		bytes.NewReader(payload),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, observeSince("bulk", start, fmt.Errorf("bulk write: %w", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, observeSince("bulk", start, statusError(res))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, observeSince("bulk", start, fmt.Errorf("read bulk response: %w", err))
	}
	return body, observeSince("bulk", start, nil)
}

// Refresh makes just-written documents visible to subsequent reads.
func (s *Store) Refresh(ctx context.Context, index string) error {
	start := time.Now()
	res, err := s.client.Indices.Refresh(
		s.client.Indices.Refresh.WithIndex(index),
		s.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return observeSince("refresh", start, fmt.Errorf("refresh %s: %w", index, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return observeSince("refresh", start, statusError(res))
	}
	return observeSince("refresh", start, nil)
}

// Search runs one search request and returns the raw response body.
func (s *Store) Search(ctx context.Context, index string, body []byte) ([]byte, error) {
	start := time.Now()
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, observeSince("search", start, fmt.Errorf("search %s: %w", index, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, observeSince("search", start, statusError(res))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, observeSince("search", start, fmt.Errorf("read search response: %w", err))
	}
	return raw, observeSince("search", start, nil)
}

// Close releases idle connections held by the transport.
// Safe to call more than once.
func (s *Store) Close() {
	if closer, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// statusError reads the error envelope from a non-2xx response.
func statusError(res *esapi.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var envelope struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	// Best effort: some error responses are not JSON at all.
	_ = json.Unmarshal(excerpt, &envelope)

	return &domain.StatusError{
		StatusCode: res.StatusCode,
		Type:       envelope.Error.Type,
		Reason:     envelope.Error.Reason,
		Body:       string(excerpt),
	}
}

func observeSince(op string, start time.Time, err error) error {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.EngineRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.EngineRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return err
}
