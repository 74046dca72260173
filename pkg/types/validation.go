package types

import "fmt"

// Failure is the text of one rule violation found in a single item.
type Failure string

// Failuref formats a Failure.
func Failuref(format string, args ...any) Failure {
	return Failure(fmt.Sprintf(format, args...))
}

// String returns the failure text.
func (f Failure) String() string {
	return string(f)
}

// Strings converts failures to plain strings.
// Always returns a non-nil slice so encoders emit [] rather than null.
func Strings(failures []Failure) []string {
	out := make([]string, 0, len(failures))
	for _, f := range failures {
		out = append(out, string(f))
	}
	return out
}

// ItemResult is the outcome of validating one item.
type ItemResult struct {
	ID       string    `json:"id"`
	Failures []Failure `json:"failures"`
}

// Passed reports whether the item produced no failures.
func (r ItemResult) Passed() bool {
	return len(r.Failures) == 0
}

// BatchReport summarizes one run over a sequence of items.
// Results are in input order.
type BatchReport struct {
	Total   int          `json:"total"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// NewBatchReport creates an empty report sized for n items.
func NewBatchReport(n int) *BatchReport {
	return &BatchReport{
		Results: make([]ItemResult, 0, n),
	}
}

// Add records an item result and updates the counters.
func (b *BatchReport) Add(r ItemResult) {
	b.Total++
	if !r.Passed() {
		b.Failed++
	}
	b.Results = append(b.Results, r)
}

// Passed reports whether every item passed. An empty batch passes.
func (b *BatchReport) Passed() bool {
	return b.Failed == 0
}
