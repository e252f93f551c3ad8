package sim

import (
	"math/rand"
	"testing"

	"github.com/workflow-sim/workflow-sim/sim/workload"
)

// newTestLine builds n stations with constant 60s work, the given WIP limit
// and a zero reaction time, each staffed by its home worker.
func newTestLine(t *testing.T, n, wipLimit int) *Line {
	t.Helper()
	stations := make([]*Workstation, n)
	for i := range stations {
		stations[i] = NewWorkstation(StationID(i), StationNames[i], workload.NewConstantSampler(60),
			wipLimit, 0, rand.New(rand.NewSource(int64(i))))
	}
	return NewLine(stations)
}

// setWaiting forces a station's wait-queue occupancy.
func setWaiting(ws *Workstation, n int) {
	for ws.WaitQ.UnitsInUse() > 0 {
		ws.WaitQ.Leave()
	}
	for i := 0; i < n; i++ {
		ws.WaitQ.Enter(&Box{ID: i})
	}
}

// assertStaffingConsistent checks the line's bookkeeping invariants: every
// worker is on exactly one roster, its own, and every active-queue capacity
// equals the roster size.
func assertStaffingConsistent(t *testing.T, line *Line) {
	t.Helper()
	seen := make(map[WorkerID]StationID)
	for _, ws := range line.Stations {
		if ws.ActiveQ.Capacity() != ws.Staff() {
			t.Errorf("%s: active capacity %d != roster %d", ws.Name, ws.ActiveQ.Capacity(), ws.Staff())
		}
		if ws.Slow() && ws.Fast() {
			t.Errorf("%s: slow and fast at once", ws.Name)
		}
		for _, id := range ws.Roster() {
			if prev, dup := seen[id]; dup {
				t.Errorf("worker %d on both station %d and %d", id, prev, ws.ID)
			}
			seen[id] = ws.ID
			if got := line.Workers[id].Station(); got != ws.ID {
				t.Errorf("worker %d thinks it is at %d, roster says %d", id, got, ws.ID)
			}
		}
	}
	if len(seen) != len(line.Workers) {
		t.Errorf("%d workers on rosters, want %d", len(seen), len(line.Workers))
	}
}
