package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceQueue_UnboundedAlwaysAdmits(t *testing.T) {
	q := NewResourceQueue("wait", Unbounded)
	for i := 0; i < 100; i++ {
		require.True(t, q.Enter(&Box{ID: i}))
	}
	assert.Equal(t, 100, q.UnitsInUse())
	assert.Equal(t, 0, q.Waiting())
}

func TestResourceQueue_CapacityBlocksAndAdmitsFIFO(t *testing.T) {
	// GIVEN a queue with one place, occupied
	q := NewResourceQueue("work", 1)
	first, second, third := &Box{ID: 1}, &Box{ID: 2}, &Box{ID: 3}
	require.True(t, q.Enter(first))

	// WHEN two more boxes arrive
	assert.False(t, q.Enter(second))
	assert.False(t, q.Enter(third))

	// THEN nothing is admitted until the place frees
	assert.Empty(t, q.Admit())

	q.Leave()
	admitted := q.Admit()
	require.Len(t, admitted, 1)
	assert.Same(t, second, admitted[0])
	assert.Equal(t, 1, q.Waiting())
}

func TestResourceQueue_GrowingCapacityAdmitsWaiters(t *testing.T) {
	q := NewResourceQueue("work", 0)
	assert.False(t, q.Enter(&Box{ID: 1}))
	assert.False(t, q.Enter(&Box{ID: 2}))

	q.SetCapacity(2)
	admitted := q.Admit()

	assert.Len(t, admitted, 2)
	assert.Equal(t, 2, q.UnitsInUse())
	assert.Equal(t, 2, q.Peak())
}

func TestResourceQueue_ShrinkingCapacityDoesNotEvict(t *testing.T) {
	q := NewResourceQueue("work", 2)
	q.Enter(&Box{ID: 1})
	q.Enter(&Box{ID: 2})

	q.SetCapacity(1)
	assert.Equal(t, 2, q.UnitsInUse())

	q.Leave()
	assert.False(t, q.Enter(&Box{ID: 3}), "still at capacity after one leaves")
	q.Leave()
	assert.Len(t, q.Admit(), 1)
}

func TestResourceQueue_NewcomerCannotJumpWaitingLine(t *testing.T) {
	q := NewResourceQueue("work", 0)
	q.Enter(&Box{ID: 1})
	q.SetCapacity(1)
	// A place is free but box 1 is still waiting for Admit.
	assert.False(t, q.Enter(&Box{ID: 2}))
	admitted := q.Admit()
	require.Len(t, admitted, 1)
	assert.Equal(t, 1, admitted[0].ID)
}

func TestResourceQueue_LeaveEmptyPanics(t *testing.T) {
	q := NewResourceQueue("work", 1)
	assert.Panics(t, func() { q.Leave() })
}
