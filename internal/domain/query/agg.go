package query

import (
	"fmt"

	"github.com/datapult/esdex/internal/domain"
)

// Agg is one named aggregation request. The set of kinds is closed:
// Terms, Metric, DateHistogram.
type Agg interface {
	Name() string
	node() map[string]any
}

// MetricKind selects the scalar metric computed over a numeric field.
type MetricKind string

// Supported metric kinds.
const (
	Avg MetricKind = "avg"
	Min MetricKind = "min"
	Max MetricKind = "max"
	Sum MetricKind = "sum"
)

func (k MetricKind) valid() bool {
	switch k {
	case Avg, Min, Max, Sum:
		return true
	}
	return false
}

// Metric is a scalar metric aggregation over a numeric field.
type Metric struct {
	name  string
	kind  MetricKind
	field string
}

// NewMetric validates and creates a metric aggregation.
func NewMetric(name string, kind MetricKind, field string) (Metric, error) {
	if name == "" {
		return Metric{}, fmt.Errorf("metric name is required: %w", domain.ErrInvalidQuery)
	}
	if !kind.valid() {
		return Metric{}, fmt.Errorf("unknown metric kind %q for %q: %w", kind, name, domain.ErrInvalidQuery)
	}
	if field == "" {
		return Metric{}, fmt.Errorf("metric %q field is required: %w", name, domain.ErrInvalidQuery)
	}
	return Metric{name: name, kind: kind, field: field}, nil
}

// Name returns the aggregation name.
func (m Metric) Name() string { return m.name }

// Kind returns the metric kind.
func (m Metric) Kind() MetricKind { return m.kind }

// Field returns the aggregated field.
func (m Metric) Field() string { return m.field }

func (m Metric) node() map[string]any {
	return map[string]any{
		string(m.kind): map[string]any{"field": m.field},
	}
}

// Terms is a bucket aggregation grouping documents by a field value.
// A Terms bucket may carry one Metric sub-aggregation; nesting is capped at
// one level by construction (the sub-aggregation is a Metric, not an Agg).
type Terms struct {
	name  string
	field string
	size  int
	sub   *Metric
}

// NewTerms validates and creates a terms aggregation. Bucket count is an
// explicit input, never the engine default.
func NewTerms(name, field string, size int) (Terms, error) {
	if name == "" {
		return Terms{}, fmt.Errorf("terms name is required: %w", domain.ErrInvalidQuery)
	}
	if field == "" {
		return Terms{}, fmt.Errorf("terms %q field is required: %w", name, domain.ErrInvalidQuery)
	}
	if size <= 0 {
		return Terms{}, fmt.Errorf("terms %q size must be > 0, got %d: %w", name, size, domain.ErrInvalidQuery)
	}
	return Terms{name: name, field: field, size: size}, nil
}

// WithMetric returns a copy carrying a metric sub-aggregation per bucket.
func (t Terms) WithMetric(m Metric) Terms {
	t.sub = &m
	return t
}

// Name returns the aggregation name.
func (t Terms) Name() string { return t.name }

// Field returns the grouped field.
func (t Terms) Field() string { return t.field }

// Size returns the requested bucket count.
func (t Terms) Size() int { return t.size }

// Sub returns the metric sub-aggregation, if any.
func (t Terms) Sub() *Metric { return t.sub }

func (t Terms) node() map[string]any {
	node := map[string]any{
		"terms": map[string]any{"field": t.field, "size": t.size},
	}
	if t.sub != nil {
		node["aggs"] = map[string]any{
			t.sub.name: t.sub.node(),
		}
	}
	return node
}

// Interval is a fixed calendar bucketing interval. No dynamic inference:
// callers always name the interval.
type Interval string

// Supported calendar intervals.
const (
	Hour  Interval = "hour"
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
)

func (i Interval) valid() bool {
	switch i {
	case Hour, Day, Week, Month:
		return true
	}
	return false
}

// DateHistogram is a time-bucketed aggregation over a date field.
type DateHistogram struct {
	name     string
	field    string
	interval Interval
}

// NewDateHistogram validates and creates a date-histogram aggregation.
func NewDateHistogram(name, field string, interval Interval) (DateHistogram, error) {
	if name == "" {
		return DateHistogram{}, fmt.Errorf("date histogram name is required: %w", domain.ErrInvalidQuery)
	}
	if field == "" {
		return DateHistogram{}, fmt.Errorf("date histogram %q field is required: %w", name, domain.ErrInvalidQuery)
	}
	if !interval.valid() {
		return DateHistogram{}, fmt.Errorf("unknown interval %q for %q: %w", interval, name, domain.ErrInvalidQuery)
	}
	return DateHistogram{name: name, field: field, interval: interval}, nil
}

// Name returns the aggregation name.
func (d DateHistogram) Name() string { return d.name }

// Field returns the bucketed date field.
func (d DateHistogram) Field() string { return d.field }

// Interval returns the calendar interval.
func (d DateHistogram) Interval() Interval { return d.interval }

func (d DateHistogram) node() map[string]any {
	return map[string]any{
		"date_histogram": map[string]any{
			"field":             d.field,
			"calendar_interval": string(d.interval),
		},
	}
}
