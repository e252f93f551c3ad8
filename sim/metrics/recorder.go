// Package metrics exports run-time measurements of a workflow simulation.
//
// The simulation reports through the Recorder interface; NopRecorder discards
// everything and PrometheusRecorder exposes the values as Prometheus metrics
// so a paced run can be watched live.
package metrics

// Recorder receives measurements from a running Flow. Implementations are
// called from the simulation goroutine and must not block.
type Recorder interface {
	// BoxCompleted records a box leaving the line after residence seconds.
	BoxCompleted(residence float64)

	// WorkerMoved records a reassignment made by policy for reason.
	WorkerMoved(policy, reason string)

	// DisruptionStarted records a station breaking down.
	DisruptionStarted(station string)

	// DisruptionRecovered records a station recovering after duration seconds.
	DisruptionRecovered(station string, duration float64)

	// StationState records the current state of a station.
	StationState(station string, workers, waiting, inService int, degraded bool)

	// SimulatedTime records the simulation clock.
	SimulatedTime(seconds float64)
}
