// Implements Flow, the scenario that owns the line, generates boxes and
// drives the disruption model and the reallocation policy on every clock
// advance.

package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/workflow-sim/workflow-sim/sim/metrics"
	"github.com/workflow-sim/workflow-sim/sim/trace"
	"github.com/workflow-sim/workflow-sim/sim/workload"
)

// timingTolerance is how far, in seconds, an observed work delay may exceed
// the sampled one before it is reported.
const timingTolerance = 5.0

// FlowOption configures a Flow with optional collaborators.
type FlowOption func(*flowOptions)

type flowOptions struct {
	workSamplers func(StationID) workload.Sampler
	arrivals     workload.Sampler
	recorder     metrics.Recorder
	trace        *trace.SimulationTrace
}

// WithWorkSamplers overrides the per-station work-time distribution.
// The default is uniform over (WorkTimeM ± WorkTimeD) minutes.
func WithWorkSamplers(f func(StationID) workload.Sampler) FlowOption {
	return func(o *flowOptions) {
		o.workSamplers = f
	}
}

// WithArrivalSampler overrides the inter-arrival distribution.
// The default is exponential with mean 3600/OrdersPerHour seconds.
func WithArrivalSampler(s workload.Sampler) FlowOption {
	return func(o *flowOptions) {
		o.arrivals = s
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) FlowOption {
	return func(o *flowOptions) {
		o.recorder = r
	}
}

// WithTrace sets the decision trace, replacing the one built from
// Options.TraceLevel.
func WithTrace(st *trace.SimulationTrace) FlowOption {
	return func(o *flowOptions) {
		o.trace = st
	}
}

// Flow is one simulation scenario: a line of workstations, an order stream,
// a reallocation policy and a disruption model on top of a Simulator.
// All state is owned by the goroutine calling Run.
type Flow struct {
	*Simulator

	Options    Options
	Line       *Line
	Policy     ReallocationPolicy
	Disruption *DisruptionModel
	Residence  *Tally

	rng        *PartitionedRNG
	arrivals   workload.Sampler
	arrivalRNG *rand.Rand
	recorder   metrics.Recorder
	trace      *trace.SimulationTrace

	palette   palette
	nextBoxID int
	inSystem  int
	completed int
	started   bool
}

// NewFlow validates opts and builds a scenario. On error no Flow is returned
// and the error wraps ErrInvalidConfiguration.
func NewFlow(opts Options, options ...FlowOption) (*Flow, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fo := flowOptions{}
	for _, apply := range options {
		apply(&fo)
	}
	if fo.workSamplers == nil {
		work := workload.NewUniformAround(opts.WorkTimeM*60, opts.WorkTimeD*60)
		fo.workSamplers = func(StationID) workload.Sampler { return work }
	}
	if fo.arrivals == nil {
		fo.arrivals = workload.NewArrivalSampler(opts.OrdersPerHour)
	}
	if fo.recorder == nil {
		fo.recorder = metrics.NewNop()
	}
	if fo.trace == nil {
		fo.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)})
	}

	rng := NewPartitionedRNG(NewSimulationKey(opts.Seed))

	stations := make([]*Workstation, opts.Capacity)
	for i := range stations {
		id := StationID(i)
		stations[i] = NewWorkstation(id, StationNames[i], fo.workSamplers(id),
			opts.WipLimit, opts.ReactionTime*60, rng.ForSubsystem(SubsystemStation(id)))
	}

	f := &Flow{
		Simulator: NewSimulator(opts.Horizon(), opts.MaxTimeStep),
		Options:   opts,
		Line:      NewLine(stations),
		Policy:    NewReallocationPolicy(opts, rng.ForSubsystem(SubsystemPolicy)),
		Disruption: NewDisruptionModel(
			opts.RandomBreakProbability,
			opts.BreakChanceEvery,
			workload.NewUniformAround(opts.RandomBreakDurationM*60, opts.RandomBreakDurationD*60),
			rng.ForSubsystem(SubsystemDisruption),
		),
		Residence:  NewTally(),
		rng:        rng,
		arrivals:   fo.arrivals,
		arrivalRNG: rng.ForSubsystem(SubsystemArrivals),
		recorder:   fo.recorder,
		trace:      fo.trace,
	}
	f.Residence.SetHistogramParameters(histogramParameters(opts))
	f.Line.OnMove = f.onMove
	f.Line.OnStaffed = f.dispatch
	f.OnTimeAdvanced = f.onTimeAdvanced
	return f, nil
}

// Run starts the order stream on the first call and processes events until
// the horizon, a pause, a stop or ctx cancellation. A paused Flow resumes
// exactly where it left off on the next call.
func (f *Flow) Run(ctx context.Context) error {
	if !f.started {
		f.started = true
		logrus.Infof("Starting %s line: %d stations, %.1f orders/h, overload factor %.2f",
			f.Policy.Name(), len(f.Line.Stations), f.Options.OrdersPerHour, f.Options.OverloadFactor())
		f.scheduleArrival()
	}
	return f.Simulator.Run(ctx)
}

// onTimeAdvanced evaluates breakdowns, then staffing, then publishes gauges.
func (f *Flow) onTimeAdvanced(now float64) {
	change := f.Disruption.Evaluate(f.Line, now)
	switch change.Kind {
	case DisruptionStarted:
		ws := f.Line.Station(change.Station)
		logrus.Debugf("[t=%.0fs] %s broke down until %.0fs", now, ws.Name, change.Until)
		if f.trace.Enabled() {
			f.trace.RecordDisruption(trace.DisruptionRecord{Clock: now, Station: ws.Name, Until: change.Until})
		}
		f.recorder.DisruptionStarted(ws.Name)
		f.Schedule(&WakeEvent{BaseEvent: newBaseEvent(change.Until, EventTypeWake, f.newEventID())})
	case DisruptionRecovered:
		ws := f.Line.Station(change.Station)
		logrus.Debugf("[t=%.0fs] %s recovered after %.0fs", now, ws.Name, now-change.Since)
		if f.trace.Enabled() {
			f.trace.RecordRecovery(trace.RecoveryRecord{Clock: now, Station: ws.Name, Since: change.Since})
		}
		f.recorder.DisruptionRecovered(ws.Name, now-change.Since)
	}

	f.Policy.Reallocate(f.Line, now)

	f.recorder.SimulatedTime(now)
	for _, ws := range f.Line.Stations {
		f.recorder.StationState(ws.Name, ws.Staff(), ws.WaitQ.UnitsInUse(), ws.ActiveQ.UnitsInUse(), ws.Slow())
	}
}

func (f *Flow) onMove(m Move) {
	from := ""
	if ws := f.Line.Station(m.From); ws != nil {
		from = ws.Name
	}
	to := f.Line.Station(m.To).Name
	logrus.Debugf("[t=%.0fs] %s: %s -> %s (%s)", f.Clock, m.Worker.Name, from, to, m.Reason)
	if f.trace.Enabled() {
		f.trace.RecordMove(trace.MoveRecord{
			Clock:  f.Clock,
			Worker: m.Worker.Name,
			From:   from,
			To:     to,
			Policy: f.Policy.Name(),
			Reason: m.Reason,
		})
	}
	f.recorder.WorkerMoved(f.Policy.Name(), m.Reason)
}

func (f *Flow) scheduleArrival() {
	gap := f.arrivals.Sample(f.arrivalRNG)
	f.Schedule(&ArrivalEvent{
		BaseEvent: newBaseEvent(f.Clock+gap, EventTypeArrival, f.newEventID()),
		flow:      f,
	})
}

// handleArrival puts a new box at the head of the line.
func (f *Flow) handleArrival() {
	b := &Box{ID: f.nextBoxID, Color: f.palette.color(), TimeStart: f.Clock}
	f.nextBoxID++
	f.inSystem++
	f.enterStation(b, f.Line.Stations[0])
	f.scheduleArrival()
}

// enterStation queues b at ws and starts work at once if a worker is free.
func (f *Flow) enterStation(b *Box, ws *Workstation) {
	b.stage = int(ws.ID)
	ws.WaitQ.Enter(b)
	if ws.ActiveQ.Enter(b) {
		f.beginWork(b, ws)
	}
}

// beginWork moves b from the wait queue into service and schedules the end
// of its work delay.
func (f *Flow) beginWork(b *Box, ws *Workstation) {
	ws.WaitQ.Leave()
	d := ws.SampleWork()
	b.Delays = append(b.Delays, d)
	b.workStarted = f.Clock
	f.Schedule(&WorkDoneEvent{
		BaseEvent: newBaseEvent(f.Clock+d, EventTypeWorkDone, f.newEventID()),
		flow:      f,
		Box:       b,
		Station:   ws.ID,
	})
}

// finishWork frees b's slot at ws and sends it on, or out of the line.
func (f *Flow) finishWork(b *Box, ws *Workstation) {
	sampled := b.Delays[len(b.Delays)-1]
	if observed := f.Clock - b.workStarted; observed-sampled > timingTolerance {
		logrus.Warnf("[t=%.0fs] box %d at %s out of sync: worked %.1fs, sampled %.1fs",
			f.Clock, b.ID, ws.Name, observed, sampled)
	}
	ws.ActiveQ.Leave()
	f.dispatch(ws)

	if next := f.Line.Station(ws.ID + 1); next != nil {
		f.enterStation(b, next)
		return
	}
	f.complete(b)
}

func (f *Flow) complete(b *Box) {
	b.TimeEnd = f.Clock
	b.done = true
	f.inSystem--
	f.completed++
	f.Residence.Add(b.Residence())
	f.recorder.BoxCompleted(b.Residence())
	logrus.Tracef("[t=%.0fs] box %d (%s) done after %.0fs", f.Clock, b.ID, b.Color, b.Residence())
}

// dispatch hands free worker slots at ws to blocked boxes. The boxes resume
// through SlotGrantEvents at the current time.
func (f *Flow) dispatch(ws *Workstation) {
	for _, b := range ws.ActiveQ.Admit() {
		f.Schedule(&SlotGrantEvent{
			BaseEvent: newBaseEvent(f.Clock, EventTypeSlotGrant, f.newEventID()),
			flow:      f,
			Box:       b,
			Station:   ws.ID,
		})
	}
}

// Workstations returns the line's stations in chain order.
func (f *Flow) Workstations() []*Workstation {
	return f.Line.Stations
}

// UnitsInSystem returns the number of boxes currently in the line.
func (f *Flow) UnitsInSystem() int {
	return f.inSystem
}

// Arrived returns the number of boxes created so far.
func (f *Flow) Arrived() int {
	return f.nextBoxID
}

// Completed returns the number of boxes that left the line.
func (f *Flow) Completed() int {
	return f.completed
}

// ResidenceStats summarizes residence times of completed boxes.
func (f *Flow) ResidenceStats() ResidenceStats {
	return f.Residence.Stats()
}

// Trace returns the decision trace.
func (f *Flow) Trace() *trace.SimulationTrace {
	return f.trace
}

// StationSnapshot is a point-in-time view of one workstation.
type StationSnapshot struct {
	ID        StationID
	Name      string
	Workers   []string
	Waiting   int
	InService int
	Blocked   int // boxes waiting for a worker slot
	State     OperationalState
	Load      LoadStatus // last reported perceived load
}

// Snapshot returns the state of every workstation in chain order.
func (f *Flow) Snapshot() []StationSnapshot {
	out := make([]StationSnapshot, len(f.Line.Stations))
	for i, ws := range f.Line.Stations {
		names := make([]string, 0, ws.Staff())
		for _, id := range ws.Roster() {
			names = append(names, f.Line.Workers[id].Name)
		}
		out[i] = StationSnapshot{
			ID:        ws.ID,
			Name:      ws.Name,
			Workers:   names,
			Waiting:   ws.WaitQ.UnitsInUse(),
			InService: ws.ActiveQ.UnitsInUse(),
			Blocked:   ws.ActiveQ.Waiting(),
			State:     ws.State(),
			Load:      ws.Load.Reported(),
		}
	}
	return out
}

func (f *Flow) station(id StationID) (*Workstation, error) {
	ws := f.Line.Station(id)
	if ws == nil {
		return nil, fmt.Errorf("no workstation %d in a line of %d", id, len(f.Line.Stations))
	}
	return ws, nil
}

// SetSlow degrades or restores a station by hand.
func (f *Flow) SetSlow(id StationID, slow bool) error {
	ws, err := f.station(id)
	if err != nil {
		return err
	}
	ws.SetSlow(slow)
	return nil
}

// SetFast accelerates or restores a station by hand.
func (f *Flow) SetFast(id StationID, fast bool) error {
	ws, err := f.station(id)
	if err != nil {
		return err
	}
	ws.SetFast(fast)
	return nil
}

// ToggleSlow flips a station between degraded and normal and returns the
// new state.
func (f *Flow) ToggleSlow(id StationID) (bool, error) {
	ws, err := f.station(id)
	if err != nil {
		return false, err
	}
	ws.SetSlow(!ws.Slow())
	return ws.Slow(), nil
}
