package sim

import (
	"sort"
)

// WorkerNames is the fixed pool of worker names; it bounds the line length.
var WorkerNames = []string{
	"Alice", "Bob", "Charlotte", "David", "Eve", "Frank", "Grace", "Hank",
	"Ivy", "Jack", "Karen", "Leo", "Mia", "Noah", "Olivia", "Paul",
	"Quinn", "Rachel", "Sam", "Tina", "Uma", "Victor", "Wendy", "Xander",
	"Yara", "Zoe",
}

// StationNames is the fixed pool of workstation names.
var StationNames = []string{
	"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel",
	"India", "Juliett", "Kilo", "Lima", "Mike", "November", "Oscar", "Papa",
	"Quebec", "Romeo", "Sierra", "Tango", "Uniform", "Victor", "Whiskey", "X-ray",
	"Yankee", "Zulu",
}

// MaxStations is the longest line the name pools can staff.
var MaxStations = min(len(WorkerNames), len(StationNames))

// Move describes one worker reassignment.
type Move struct {
	Worker *Worker
	From   StationID
	To     StationID
	Reason string
}

// Line owns the workers and workstations of a scenario. Workers and stations
// refer to each other only by ID; Line keeps both sides consistent.
type Line struct {
	Workers  []*Worker
	Stations []*Workstation

	// OnMove is called after every reassignment.
	OnMove func(Move)
	// OnStaffed is called after a station gains a worker, so blocked boxes
	// can be admitted to the new slot.
	OnStaffed func(*Workstation)
}

// NewLine wires one worker per station, each worker's first station
// becoming its home.
func NewLine(stations []*Workstation) *Line {
	l := &Line{Stations: stations}
	for i := range stations {
		w := NewWorker(WorkerID(i), WorkerNames[i%len(WorkerNames)])
		l.Workers = append(l.Workers, w)
		l.assign(w, stations[i].ID)
	}
	return l
}

// Station returns the workstation with the given ID, or nil.
func (l *Line) Station(id StationID) *Workstation {
	if id < 0 || int(id) >= len(l.Stations) {
		return nil
	}
	return l.Stations[id]
}

// Worker returns the worker with the given ID, or nil.
func (l *Line) Worker(id WorkerID) *Worker {
	if id < 0 || int(id) >= len(l.Workers) {
		return nil
	}
	return l.Workers[id]
}

// Move reassigns a worker: unassign from the old station, assign to the new
// one, update the worker. Moving to the current station is a no-op and
// reports false.
func (l *Line) Move(id WorkerID, to StationID, reason string) bool {
	w := l.Worker(id)
	if w == nil || l.Station(to) == nil || w.station == to {
		return false
	}
	from := w.station
	if prev := l.Station(from); prev != nil {
		prev.unassign(id)
	}
	l.assign(w, to)
	if l.OnMove != nil {
		l.OnMove(Move{Worker: w, From: from, To: to, Reason: reason})
	}
	return true
}

func (l *Line) assign(w *Worker, to StationID) {
	ws := l.Stations[to]
	ws.assign(w.ID)
	if w.home == NoStation {
		w.home = to
	}
	w.station = to
	if l.OnStaffed != nil {
		l.OnStaffed(ws)
	}
}

// ReturnHome sends every visiting worker at ws straight back to their home.
func (l *Line) ReturnHome(ws *Workstation, reason string) {
	for _, id := range append([]WorkerID(nil), ws.roster...) {
		w := l.Workers[id]
		if w.home != NoStation && w.home != ws.ID {
			l.Move(id, w.home, reason)
		}
	}
}

// RankByWaiting returns the stations ordered by wait-queue occupancy,
// ascending or descending. Ties keep chain order.
func (l *Line) RankByWaiting(ascending bool) []*Workstation {
	ranked := append([]*Workstation(nil), l.Stations...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].WaitQ.UnitsInUse(), ranked[j].WaitQ.UnitsInUse()
		if ascending {
			return a < b
		}
		return a > b
	})
	return ranked
}

// Assignments returns each worker's current station, indexed by WorkerID.
func (l *Line) Assignments() []StationID {
	out := make([]StationID, len(l.Workers))
	for i, w := range l.Workers {
		out[i] = w.station
	}
	return out
}
