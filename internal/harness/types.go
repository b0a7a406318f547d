package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every assertion held.
	Pass bool `json:"pass"`

	// Failures contains assertion failure messages.
	// Empty if Pass is true.
	Failures []string `json:"failures,omitempty"`

	// Snapshot is the final store state, used for golden comparison.
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Failures: []string{},
	}
}

// AddFailure records an assertion failure and marks the result as failed.
func (r *Result) AddFailure(msg string) {
	r.Failures = append(r.Failures, msg)
	r.Pass = false
}
