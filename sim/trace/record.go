// Package trace provides decision-trace recording for reallocation analysis.
// It has no dependencies on sim/ and stores pure data types.
package trace

// MoveRecord captures a single worker reassignment.
type MoveRecord struct {
	Clock  float64
	Worker string
	From   string // empty for an initial assignment
	To     string
	Policy string
	Reason string
}

// DisruptionRecord captures a workstation breakdown.
type DisruptionRecord struct {
	Clock   float64
	Station string
	Until   float64
}

// RecoveryRecord captures the end of a breakdown.
type RecoveryRecord struct {
	Clock   float64
	Station string
	Since   float64
}
