package metrics

// NopRecorder implements a no-op Recorder.
//
// All measurements are discarded. Used when no metrics endpoint is
// configured and in tests.
type NopRecorder struct{}

// Compile-time assertion that NopRecorder implements Recorder.
var _ Recorder = (*NopRecorder)(nil)

// NewNop creates a new no-op recorder.
func NewNop() *NopRecorder {
	return &NopRecorder{}
}

// BoxCompleted discards the residence measurement.
func (n *NopRecorder) BoxCompleted(_ /* residence */ float64) {}

// WorkerMoved discards the reassignment.
func (n *NopRecorder) WorkerMoved(_ /* policy */, _ /* reason */ string) {}

// DisruptionStarted discards the breakdown.
func (n *NopRecorder) DisruptionStarted(_ /* station */ string) {}

// DisruptionRecovered discards the recovery.
func (n *NopRecorder) DisruptionRecovered(_ /* station */ string, _ /* duration */ float64) {}

// StationState discards the station gauges.
func (n *NopRecorder) StationState(_ /* station */ string, _, _, _ int, _ bool) {}

// SimulatedTime discards the clock.
func (n *NopRecorder) SimulatedTime(_ /* seconds */ float64) {}
