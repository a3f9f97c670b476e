package result

import "time"

// Hit is one matching document, in engine-provided order.
type Hit struct {
	ID     string
	Score  float64
	Source map[string]any
}

// Page is the hits section of a search response.
type Page struct {
	Total int64
	Hits  []Hit
}

// Metric is a decoded scalar metric. The value may be absent (no matching
// documents, or no numeric values in the bucket); callers must branch on
// presence rather than reading a silent zero.
type Metric struct {
	value *float64
}

// NewMetric creates a present metric value.
func NewMetric(v float64) Metric { return Metric{value: &v} }

// AbsentMetric creates a metric with no value.
func AbsentMetric() Metric { return Metric{} }

// Value returns the metric value and whether it is present.
func (m Metric) Value() (float64, bool) {
	if m.value == nil {
		return 0, false
	}
	return *m.value, true
}

// TermsBucket is one group of documents sharing a field value.
// Metrics holds decoded sub-aggregations keyed by their request names.
type TermsBucket struct {
	Key      string
	DocCount int64
	Metrics  map[string]Metric
}

// HistogramBucket is one time bucket, with both the machine-sortable
// timestamp and the engine's human-readable label.
type HistogramBucket struct {
	Time     time.Time
	Label    string
	DocCount int64
}

// Aggregations maps aggregation request names to decoded outcomes.
// Bucket order is engine-provided and never re-sorted.
type Aggregations struct {
	Terms      map[string][]TermsBucket
	Metrics    map[string]Metric
	Histograms map[string][]HistogramBucket
}

// NewAggregations creates an empty Aggregations.
func NewAggregations() Aggregations {
	return Aggregations{
		Terms:      make(map[string][]TermsBucket),
		Metrics:    make(map[string]Metric),
		Histograms: make(map[string][]HistogramBucket),
	}
}
