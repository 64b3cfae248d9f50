package domain

// RecordDecision is the outcome of the recording policy for one command.
type RecordDecision string

const (
	RecordDecisionRecord RecordDecision = "record"
	RecordDecisionSkip   RecordDecision = "skip"
)

// FailurePolicy controls what the HTTP layer does when the store fails.
type FailurePolicy string

const (
	// FailurePolicyRespond answers the request with 500 and keeps serving.
	FailurePolicyRespond FailurePolicy = "respond"
	// FailurePolicyExit terminates the process.
	FailurePolicyExit FailurePolicy = "exit"
)

// Valid reports whether p is a known policy.
func (p FailurePolicy) Valid() bool {
	return p == FailurePolicyRespond || p == FailurePolicyExit
}
