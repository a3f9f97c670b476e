package esdex

import "time"

// Document is an untyped field-name → value mapping submitted for indexing.
type Document map[string]any

// Hit is a single matching document, in engine order.
type Hit struct {
	ID     string
	Score  float64
	Source map[string]any
}

// SearchResult is the outcome of a search query.
type SearchResult struct {
	Total int64
	Hits  []Hit
}

// BulkItem is the per-document outcome of a bulk insert, in submission order.
type BulkItem struct {
	ID       string // engine-assigned, empty on rejection
	Accepted bool
	Reason   string // rejection reason, empty on acceptance
}

// BulkOutcome is the result of one bulk insert.
type BulkOutcome struct {
	HadErrors bool
	Items     []BulkItem
}

// Accepted returns the number of accepted documents.
func (o BulkOutcome) Accepted() int {
	n := 0
	for _, it := range o.Items {
		if it.Accepted {
			n++
		}
	}
	return n
}

// MetricKind selects the scalar metric computed over a numeric field.
type MetricKind string

// Metric kind constants.
const (
	MetricAvg MetricKind = "avg"
	MetricMin MetricKind = "min"
	MetricMax MetricKind = "max"
	MetricSum MetricKind = "sum"
)

// CalendarInterval is a fixed date-histogram bucketing interval.
type CalendarInterval string

// Calendar interval constants.
const (
	IntervalHour  CalendarInterval = "hour"
	IntervalDay   CalendarInterval = "day"
	IntervalWeek  CalendarInterval = "week"
	IntervalMonth CalendarInterval = "month"
)

// Aggregation is a named aggregation request. The set of implementations is
// closed: TermsAgg, MetricAgg, DateHistogramAgg.
type Aggregation interface {
	aggregation()
}

// MetricAgg computes one scalar metric over a numeric field.
type MetricAgg struct {
	Name  string
	Kind  MetricKind
	Field string
}

func (MetricAgg) aggregation() {}

// TermsAgg groups documents by a field value. Size is the explicit bucket
// count. Metric, when non-nil, is computed per bucket; deeper nesting is not
// supported.
type TermsAgg struct {
	Name   string
	Field  string
	Size   int
	Metric *MetricAgg
}

func (TermsAgg) aggregation() {}

// DateHistogramAgg buckets documents over a date field by calendar interval.
type DateHistogramAgg struct {
	Name     string
	Field    string
	Interval CalendarInterval
}

func (DateHistogramAgg) aggregation() {}

// MetricValue is a decoded scalar metric. The value may be absent when no
// documents contributed to it; callers must branch on presence instead of
// reading a silent zero.
type MetricValue struct {
	value   float64
	present bool
}

// Value returns the metric value and whether it is present.
func (m MetricValue) Value() (float64, bool) {
	return m.value, m.present
}

// TermsBucket is one group of documents sharing a field value.
type TermsBucket struct {
	Key      string
	DocCount int64
	Metrics  map[string]MetricValue
}

// HistogramBucket is one time bucket.
type HistogramBucket struct {
	Time     time.Time
	Label    string
	DocCount int64
}

// AggregationResult maps aggregation request names to decoded outcomes.
// Bucket order is engine-provided and never re-sorted.
type AggregationResult struct {
	Terms      map[string][]TermsBucket
	Metrics    map[string]MetricValue
	Histograms map[string][]HistogramBucket
}
