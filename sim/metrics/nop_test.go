package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	recorder := NewNop()

	require.NotNil(t, recorder)
	require.IsType(t, &NopRecorder{}, recorder)
}

func TestNopRecorder_DiscardsEverything(t *testing.T) {
	recorder := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		recorder.BoxCompleted(120)
		recorder.BoxCompleted(-1)
		recorder.WorkerMoved("kanban", "pull-forward")
		recorder.WorkerMoved("", "")
		recorder.DisruptionStarted("Alpha")
		recorder.DisruptionRecovered("Alpha", 3600)
		recorder.StationState("Bravo", 2, 7, 2, true)
		recorder.SimulatedTime(86400)
	})
}
