package sim

import (
	"fmt"
	"math/rand"

	"github.com/workflow-sim/workflow-sim/sim/workload"
)

// StationID is a workstation's position in the chain.
type StationID int

// NoStation marks an unassigned worker or an unset home.
const NoStation StationID = -1

// OperationalState is a workstation's speed regime. Degraded and Accelerated
// exclude each other by construction.
type OperationalState int

const (
	StateNormal OperationalState = iota
	StateDegraded
	StateAccelerated
)

// WorkTimeMultiplier scales sampled work durations in each regime.
const WorkTimeMultiplier = 10.0

func (s OperationalState) String() string {
	switch s {
	case StateDegraded:
		return "slow"
	case StateAccelerated:
		return "fast"
	}
	return "normal"
}

// Workstation is one stage of the line: a wait queue, an active-work queue
// whose capacity is the roster size, and the load perception of the wait queue.
type Workstation struct {
	ID   StationID
	Name string

	// WaitQ holds boxes that have arrived but are not yet being worked on.
	WaitQ *ResourceQueue
	// ActiveQ holds boxes being worked on; capacity == len(roster).
	ActiveQ *ResourceQueue

	Work workload.Sampler
	Load *LoadPerception

	roster []WorkerID
	state  OperationalState
	rng    *rand.Rand
}

// NewWorkstation creates an unstaffed workstation.
func NewWorkstation(id StationID, name string, work workload.Sampler, wipLimit int, reactionTime float64, rng *rand.Rand) *Workstation {
	return &Workstation{
		ID:      id,
		Name:    name,
		WaitQ:   NewResourceQueue(fmt.Sprintf("Waiting for %s", name), Unbounded),
		ActiveQ: NewResourceQueue(name, 0),
		Work:    work,
		Load:    NewLoadPerception(wipLimit, reactionTime),
		rng:     rng,
	}
}

// Roster returns the assigned workers in assignment order. The slice is the
// workstation's storage and must not be modified.
func (ws *Workstation) Roster() []WorkerID {
	return ws.roster
}

// Staff returns the number of assigned workers.
func (ws *Workstation) Staff() int {
	return len(ws.roster)
}

// PerceivedLoad updates and returns the hysteresis-filtered load.
func (ws *Workstation) PerceivedLoad(now float64) LoadStatus {
	return ws.Load.Perceive(ws.WaitQ.UnitsInUse(), now)
}

// State returns the operational state.
func (ws *Workstation) State() OperationalState {
	return ws.state
}

// Slow reports whether the station is degraded.
func (ws *Workstation) Slow() bool { return ws.state == StateDegraded }

// Fast reports whether the station is accelerated.
func (ws *Workstation) Fast() bool { return ws.state == StateAccelerated }

// SetSlow degrades the station, or clears a degradation. Clearing does not
// touch an accelerated station.
func (ws *Workstation) SetSlow(slow bool) {
	switch {
	case slow:
		ws.state = StateDegraded
	case ws.state == StateDegraded:
		ws.state = StateNormal
	}
}

// SetFast accelerates the station, or clears an acceleration.
func (ws *Workstation) SetFast(fast bool) {
	switch {
	case fast:
		ws.state = StateAccelerated
	case ws.state == StateAccelerated:
		ws.state = StateNormal
	}
}

// SampleWork draws a work duration and applies the regime multiplier in
// force at sampling time.
func (ws *Workstation) SampleWork() float64 {
	d := max(ws.Work.Sample(ws.rng), 0)
	switch ws.state {
	case StateDegraded:
		d *= WorkTimeMultiplier
	case StateAccelerated:
		d /= WorkTimeMultiplier
	}
	return d
}

func (ws *Workstation) assign(id WorkerID) bool {
	for _, w := range ws.roster {
		if w == id {
			return false
		}
	}
	ws.roster = append(ws.roster, id)
	ws.ActiveQ.SetCapacity(len(ws.roster))
	return true
}

func (ws *Workstation) unassign(id WorkerID) bool {
	for i, w := range ws.roster {
		if w == id {
			ws.roster = append(ws.roster[:i:i], ws.roster[i+1:]...)
			ws.ActiveQ.SetCapacity(len(ws.roster))
			return true
		}
	}
	return false
}
