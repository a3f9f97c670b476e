package search

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/datapult/esdex/internal/domain"
	"github.com/datapult/esdex/internal/domain/query"
	"github.com/datapult/esdex/internal/domain/result"
)

type hitDTO struct {
	ID     string         `json:"_id"`
	Score  *float64       `json:"_score"`
	Source map[string]any `json:"_source"`
}

// decodeHits extracts the hit list. Total and the hit array are mandatory;
// a response without them is malformed, not empty.
func decodeHits(raw []byte) (result.Page, error) {
	top, err := decodeEnvelope(raw)
	if err != nil {
		return result.Page{}, err
	}

	hitsRaw, ok := top["hits"]
	if !ok {
		return result.Page{}, domain.NewDecodeError("hits")
	}

	var hits struct {
		Total *struct {
			Value *int64 `json:"value"`
		} `json:"total"`
		Hits *[]hitDTO `json:"hits"`
	}
	if err := json.Unmarshal(hitsRaw, &hits); err != nil {
		return result.Page{}, &domain.DecodeError{Path: "hits", Cause: err}
	}
	if hits.Total == nil || hits.Total.Value == nil {
		return result.Page{}, domain.NewDecodeError("hits.total.value")
	}
	if hits.Hits == nil {
		return result.Page{}, domain.NewDecodeError("hits.hits")
	}

	page := result.Page{
		Total: *hits.Total.Value,
		Hits:  make([]result.Hit, 0, len(*hits.Hits)),
	}
	for _, h := range *hits.Hits {
		// Sorted queries return a null _score.
		var score float64
		if h.Score != nil {
			score = *h.Score
		}
		page.Hits = append(page.Hits, result.Hit{ID: h.ID, Score: score, Source: h.Source})
	}
	return page, nil
}

// decodeAggregations decodes the response against the submitted aggregation
// specs. Every requested aggregation must appear under its name.
func decodeAggregations(raw []byte, aggs []query.Agg) (result.Aggregations, error) {
	top, err := decodeEnvelope(raw)
	if err != nil {
		return result.Aggregations{}, err
	}

	aggsRaw, ok := top["aggregations"]
	if !ok {
		return result.Aggregations{}, domain.NewDecodeError("aggregations")
	}
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(aggsRaw, &byName); err != nil {
		return result.Aggregations{}, &domain.DecodeError{Path: "aggregations", Cause: err}
	}

	out := result.NewAggregations()
	for _, a := range aggs {
		path := "aggregations." + a.Name()
		node, ok := byName[a.Name()]
		if !ok {
			return result.Aggregations{}, domain.NewDecodeError(path)
		}

		switch agg := a.(type) {
		case query.Terms:
			buckets, err := decodeTermsBuckets(node, agg, path)
			if err != nil {
				return result.Aggregations{}, err
			}
			out.Terms[agg.Name()] = buckets
		case query.Metric:
			m, err := decodeMetric(node, path)
			if err != nil {
				return result.Aggregations{}, err
			}
			out.Metrics[agg.Name()] = m
		case query.DateHistogram:
			buckets, err := decodeHistogramBuckets(node, path)
			if err != nil {
				return result.Aggregations{}, err
			}
			out.Histograms[agg.Name()] = buckets
		default:
			return result.Aggregations{}, fmt.Errorf("unsupported aggregation %q: %w", a.Name(), domain.ErrInvalidQuery)
		}
	}
	return out, nil
}

// decodeTermsBuckets preserves the engine's bucket order.
func decodeTermsBuckets(node json.RawMessage, agg query.Terms, path string) ([]result.TermsBucket, error) {
	var wrapper struct {
		Buckets *[]json.RawMessage `json:"buckets"`
	}
	if err := json.Unmarshal(node, &wrapper); err != nil {
		return nil, &domain.DecodeError{Path: path, Cause: err}
	}
	if wrapper.Buckets == nil {
		return nil, domain.NewDecodeError(path + ".buckets")
	}

	buckets := make([]result.TermsBucket, 0, len(*wrapper.Buckets))
	for i, bucketRaw := range *wrapper.Buckets {
		bucketPath := fmt.Sprintf("%s.buckets[%d]", path, i)

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(bucketRaw, &fields); err != nil {
			return nil, &domain.DecodeError{Path: bucketPath, Cause: err}
		}

		keyRaw, ok := fields["key"]
		if !ok {
			return nil, domain.NewDecodeError(bucketPath + ".key")
		}
		count, err := decodeCount(fields, bucketPath)
		if err != nil {
			return nil, err
		}

		bucket := result.TermsBucket{
			Key:      keyString(keyRaw),
			DocCount: count,
			Metrics:  map[string]result.Metric{},
		}
		if sub := agg.Sub(); sub != nil {
			subPath := bucketPath + "." + sub.Name()
			subRaw, ok := fields[sub.Name()]
			if !ok {
				return nil, domain.NewDecodeError(subPath)
			}
			m, err := decodeMetric(subRaw, subPath)
			if err != nil {
				return nil, err
			}
			bucket.Metrics[sub.Name()] = m
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func decodeHistogramBuckets(node json.RawMessage, path string) ([]result.HistogramBucket, error) {
	var wrapper struct {
		Buckets *[]struct {
			Key         *int64  `json:"key"`
			KeyAsString *string `json:"key_as_string"`
			DocCount    *int64  `json:"doc_count"`
		} `json:"buckets"`
	}
	if err := json.Unmarshal(node, &wrapper); err != nil {
		return nil, &domain.DecodeError{Path: path, Cause: err}
	}
	if wrapper.Buckets == nil {
		return nil, domain.NewDecodeError(path + ".buckets")
	}

	buckets := make([]result.HistogramBucket, 0, len(*wrapper.Buckets))
	for i, b := range *wrapper.Buckets {
		bucketPath := fmt.Sprintf("%s.buckets[%d]", path, i)
		if b.Key == nil {
			return nil, domain.NewDecodeError(bucketPath + ".key")
		}
		if b.DocCount == nil {
			return nil, domain.NewDecodeError(bucketPath + ".doc_count")
		}
		label := ""
		if b.KeyAsString != nil {
			label = *b.KeyAsString
		}
		buckets = append(buckets, result.HistogramBucket{
			Time:     time.UnixMilli(*b.Key).UTC(),
			Label:    label,
			DocCount: *b.DocCount,
		})
	}
	return buckets, nil
}

// decodeMetric distinguishes a null value (no documents contributed, so the
// metric is undefined) from a missing "value" key (malformed response).
func decodeMetric(node json.RawMessage, path string) (result.Metric, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(node, &fields); err != nil {
		return result.Metric{}, &domain.DecodeError{Path: path, Cause: err}
	}
	valueRaw, ok := fields["value"]
	if !ok {
		return result.Metric{}, domain.NewDecodeError(path + ".value")
	}
	if string(valueRaw) == "null" {
		return result.AbsentMetric(), nil
	}
	var value float64
	if err := json.Unmarshal(valueRaw, &value); err != nil {
		return result.Metric{}, &domain.DecodeError{Path: path + ".value", Cause: err}
	}
	return result.NewMetric(value), nil
}

func decodeEnvelope(raw []byte) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &domain.DecodeError{Path: "response", Cause: err}
	}
	return top, nil
}

func decodeCount(fields map[string]json.RawMessage, bucketPath string) (int64, error) {
	countRaw, ok := fields["doc_count"]
	if !ok {
		return 0, domain.NewDecodeError(bucketPath + ".doc_count")
	}
	var count int64
	if err := json.Unmarshal(countRaw, &count); err != nil {
		return 0, &domain.DecodeError{Path: bucketPath + ".doc_count", Cause: err}
	}
	return count, nil
}

// keyString renders a bucket key as text. Keyword buckets carry string keys;
// numeric and boolean keys are rendered as their JSON literal.
func keyString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
