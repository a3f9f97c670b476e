package bulk

// ItemStatus is the engine's verdict on a single document in a batch.
type ItemStatus string

// Per-document outcome values.
const (
	StatusAccepted ItemStatus = "accepted"
	StatusRejected ItemStatus = "rejected"
)

// Result is the outcome of one document in a bulk write.
type Result struct {
	id     string
	status ItemStatus
	reason string
}

// NewAccepted creates an accepted result.
func NewAccepted(id string) Result { return Result{id: id, status: StatusAccepted} }

// NewRejected creates a rejected result with the engine's reason.
func NewRejected(id, reason string) Result {
	return Result{id: id, status: StatusRejected, reason: reason}
}

// ID returns the engine-assigned document ID (empty on rejection).
func (r Result) ID() string { return r.id }

// Status returns the per-document verdict.
func (r Result) Status() ItemStatus { return r.status }

// Rejected reports whether the document was rejected.
func (r Result) Rejected() bool { return r.status == StatusRejected }

// Reason returns the rejection reason, if any.
func (r Result) Reason() string { return r.reason }

// Outcome is the result of one bulk write: the engine's top-level error flag
// plus one Result per submitted document, in submission order.
type Outcome struct {
	hadErrors bool
	items     []Result
}

// NewOutcome creates an Outcome.
func NewOutcome(hadErrors bool, items []Result) Outcome {
	return Outcome{hadErrors: hadErrors, items: items}
}

// HadErrors reports whether any document in the batch was rejected.
func (o Outcome) HadErrors() bool { return o.hadErrors }

// Items returns per-document results, ordered as submitted.
func (o Outcome) Items() []Result { return o.items }

// Accepted returns the number of accepted documents.
func (o Outcome) Accepted() int {
	n := 0
	for _, it := range o.items {
		if !it.Rejected() {
			n++
		}
	}
	return n
}

// RejectionReasons returns the distinct rejection reasons, in first-seen order.
func (o Outcome) RejectionReasons() []string {
	seen := make(map[string]bool)
	var reasons []string
	for _, it := range o.items {
		if it.Rejected() && !seen[it.reason] {
			seen[it.reason] = true
			reasons = append(reasons, it.reason)
		}
	}
	return reasons
}
