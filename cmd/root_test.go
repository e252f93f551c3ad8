package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/workflow-sim/workflow-sim/sim"
)

func TestRunWithPauseToggle_NoToggleRunsToEnd(t *testing.T) {
	opts := sim.DefaultOptions()
	opts.TotalSimulationTimeDays = 0.5
	f, err := sim.NewFlow(opts)
	require.NoError(t, err)

	require.NoError(t, runWithPauseToggle(context.Background(), f, nil))

	assert.Equal(t, sim.StateFinished, f.State())
}

func TestRunWithPauseToggle_PausesAndResumes(t *testing.T) {
	// GIVEN a paced run
	opts := sim.DefaultOptions()
	opts.TotalSimulationTimeDays = 0.2
	f, err := sim.NewFlow(opts)
	require.NoError(t, err)
	f.FrameDelay = 100 * time.Microsecond

	toggle := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- runWithPauseToggle(context.Background(), f, toggle) }()

	// WHEN toggled twice: pause, then resume
	toggle <- struct{}{}
	toggle <- struct{}{}

	// THEN the run still completes
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("simulation did not finish after resume")
	}
	assert.Equal(t, sim.StateFinished, f.State())
}

func TestRunWithPauseToggle_CancelWhilePaused(t *testing.T) {
	opts := sim.DefaultOptions()
	f, err := sim.NewFlow(opts)
	require.NoError(t, err)
	f.FrameDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	toggle := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- runWithPauseToggle(ctx, f, toggle) }()

	toggle <- struct{}{}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(30 * time.Second):
		t.Fatal("cancel did not end the run")
	}
	assert.NotEqual(t, sim.StateFinished, f.State())
}
