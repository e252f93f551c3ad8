package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine_OneWorkerPerStationAtHome(t *testing.T) {
	line := newTestLine(t, 5, 3)

	require.Len(t, line.Workers, 5)
	for i, w := range line.Workers {
		assert.Equal(t, StationID(i), w.Station())
		assert.Equal(t, StationID(i), w.Home())
		assert.False(t, w.Away())
		assert.Equal(t, WorkerNames[i], w.Name)
	}
	assertStaffingConsistent(t, line)
}

func TestLine_Move_UpdatesBothSides(t *testing.T) {
	line := newTestLine(t, 4, 3)
	var moves []Move
	line.OnMove = func(m Move) { moves = append(moves, m) }
	var staffed []StationID
	line.OnStaffed = func(ws *Workstation) { staffed = append(staffed, ws.ID) }

	ok := line.Move(0, 2, ReasonOfferHelp)

	require.True(t, ok)
	assert.Equal(t, 0, line.Stations[0].Staff())
	assert.Equal(t, []WorkerID{2, 0}, line.Stations[2].Roster())
	assert.Equal(t, StationID(2), line.Workers[0].Station())
	assert.Equal(t, StationID(0), line.Workers[0].Home(), "home never changes")
	assert.True(t, line.Workers[0].Away())
	require.Len(t, moves, 1)
	assert.Equal(t, Move{Worker: line.Workers[0], From: 0, To: 2, Reason: ReasonOfferHelp}, moves[0])
	assert.Equal(t, []StationID{2}, staffed)
	assertStaffingConsistent(t, line)
}

func TestLine_Move_NoOps(t *testing.T) {
	line := newTestLine(t, 4, 3)
	called := false
	line.OnMove = func(Move) { called = true }

	assert.False(t, line.Move(1, 1, ReasonStepHome), "same station")
	assert.False(t, line.Move(9, 1, ReasonStepHome), "unknown worker")
	assert.False(t, line.Move(1, 9, ReasonStepHome), "unknown station")
	assert.False(t, called)
	assertStaffingConsistent(t, line)
}

func TestLine_ReturnHome_SendsOnlyVisitors(t *testing.T) {
	line := newTestLine(t, 4, 3)
	line.Move(0, 3, ReasonHelpOverloaded)
	line.Move(1, 3, ReasonHelpOverloaded)

	line.ReturnHome(line.Stations[3], ReasonReturnHome)

	assert.Equal(t, []StationID{0, 1, 2, 3}, line.Assignments())
	assertStaffingConsistent(t, line)
}

func TestLine_RankByWaiting_StableTies(t *testing.T) {
	line := newTestLine(t, 4, 3)
	setWaiting(line.Stations[0], 2)
	setWaiting(line.Stations[1], 0)
	setWaiting(line.Stations[2], 5)
	setWaiting(line.Stations[3], 0)

	var asc, desc []StationID
	for _, ws := range line.RankByWaiting(true) {
		asc = append(asc, ws.ID)
	}
	for _, ws := range line.RankByWaiting(false) {
		desc = append(desc, ws.ID)
	}

	assert.Equal(t, []StationID{1, 3, 0, 2}, asc)
	assert.Equal(t, []StationID{2, 0, 1, 3}, desc)
}
