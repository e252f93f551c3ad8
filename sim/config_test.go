package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_Valid(t *testing.T) {
	opts := DefaultOptions()

	require.NoError(t, opts.Validate())
	assert.Equal(t, 10*SecondsPerDay, opts.Horizon())
	assert.Equal(t, PolicyPassive, opts.Policy)
	assert.Equal(t, int64(42), opts.Seed)
}

func TestOptions_Validate_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		policy   string
		wantErr  bool
	}{
		{"27 stations exceed the name pool", 27, PolicyPassive, true},
		{"26 stations fit", 26, PolicyManager, false},
		{"kanban needs four stations", 2, PolicyKanban, true},
		{"manager needs four stations", 3, PolicyManager, true},
		{"kanban with four stations", 4, PolicyKanban, false},
		{"single passive station", 1, PolicyPassive, false},
		{"empty passive line", 0, PolicyPassive, true},
		{"legacy self alias", 1, "self", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Capacity = tt.capacity
			opts.Policy = tt.policy

			err := opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptions_Validate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"unknown policy", func(o *Options) { o.Policy = "anarchy" }},
		{"zero arrival rate", func(o *Options) { o.OrdersPerHour = 0 }},
		{"negative work time", func(o *Options) { o.WorkTimeM = -1 }},
		{"wip limit below one", func(o *Options) { o.WipLimit = 0 }},
		{"negative reaction time", func(o *Options) { o.ReactionTime = -1 }},
		{"zero perfection", func(o *Options) { o.ManagersPerfection = 0 }},
		{"negative frequency", func(o *Options) { o.ManagerialInterventionFrequency = -1 }},
		{"probability above one", func(o *Options) { o.RandomBreakProbability = 1.5 }},
		{"negative break duration", func(o *Options) { o.RandomBreakDurationD = -1 }},
		{"zero days", func(o *Options) { o.TotalSimulationTimeDays = 0 }},
		{"negative time step", func(o *Options) { o.MaxTimeStep = -1 }},
		{"unknown trace level", func(o *Options) { o.TraceLevel = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			assert.ErrorIs(t, opts.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestOptions_OverloadFactor(t *testing.T) {
	opts := DefaultOptions()
	opts.WorkTimeM = 5
	opts.OrdersPerHour = 10 // one order every 6 min

	assert.InDelta(t, 5.0/6.0, opts.OverloadFactor(), 1e-9)
}

func TestOptions_WithLoadFactor(t *testing.T) {
	// GIVEN 10 orders an hour, a load factor of 3 asks for 18-minute jobs
	opts := DefaultOptions()
	opts.OrdersPerHour = 10

	got := opts.WithLoadFactor(3)

	assert.Equal(t, 18.0, got.WorkTimeM)
	assert.Equal(t, 10.8, got.WorkTimeD)
	assert.InDelta(t, 3.0, got.OverloadFactor(), 1e-9)
	// the receiver is untouched
	assert.Equal(t, 5.0, opts.WorkTimeM)
}
