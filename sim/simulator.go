// sim/simulator.go
package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// RunState is the lifecycle state of a Simulator.
type RunState int32

const (
	StateIdle RunState = iota
	StateRunning
	StatePaused
	StateStopped
	StateFinished
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Simulator holds simulated time and the event loop. It knows nothing about
// workstations: scenarios schedule events on it and observe time through
// OnTimeAdvanced.
type Simulator struct {
	Clock   float64
	Horizon float64
	// MaxTimeStep bounds a single clock advance (seconds). Zero means the clock
	// jumps straight to the next event.
	MaxTimeStep float64
	// FrameDelay paces the run in wall-clock time after every advance.
	FrameDelay time.Duration
	// OnTimeAdvanced fires on every clock change, before any event at the new
	// time executes. It must not block.
	OnTimeAdvanced func(now float64)

	EventQueue     *EventHeap
	EventsExecuted int
	Advances       int

	nextEventID uint64
	state       atomic.Int32
	pauseReq    atomic.Bool
	stopReq     atomic.Bool
}

// NewSimulator creates a simulator that runs until horizon seconds.
func NewSimulator(horizon, maxTimeStep float64) *Simulator {
	return &Simulator{
		Horizon:     horizon,
		MaxTimeStep: maxTimeStep,
		EventQueue:  NewEventHeap(),
	}
}

// Schedule pushes an event into the queue. Events in the past are clamped to
// the current clock.
func (s *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < s.Clock {
		logrus.Warnf("event %T scheduled in the past (%.3f < %.3f)", ev, ev.Timestamp(), s.Clock)
	}
	s.EventQueue.Schedule(ev)
}

// newEventID generates the next event ID for this simulator.
func (s *Simulator) newEventID() uint64 {
	s.nextEventID++
	return s.nextEventID
}

// State reports the current lifecycle state. Safe to call from any goroutine.
func (s *Simulator) State() RunState {
	return RunState(s.state.Load())
}

// Pause asks a running simulation to return from Run at the next event
// boundary. A later Run continues exactly where it left off.
// Safe to call from any goroutine.
func (s *Simulator) Pause() {
	s.pauseReq.Store(true)
}

// Stop asks a running simulation to end for good. Safe to call from any goroutine.
func (s *Simulator) Stop() {
	s.stopReq.Store(true)
}

// Run processes events until the horizon is reached, Pause or Stop is
// requested, or ctx is cancelled. It returns ctx.Err() on cancellation and nil
// otherwise; State tells which way it ended.
func (s *Simulator) Run(ctx context.Context) error {
	switch s.State() {
	case StateFinished, StateStopped:
		return nil
	}
	s.pauseReq.Store(false)
	s.state.Store(int32(StateRunning))

	for {
		if err := ctx.Err(); err != nil {
			s.state.Store(int32(StateStopped))
			logrus.Infof("[t=%.0fs] Simulation stopped: %v", s.Clock, err)
			return err
		}
		if s.stopReq.Load() {
			s.state.Store(int32(StateStopped))
			logrus.Infof("[t=%.0fs] Simulation stopped", s.Clock)
			return nil
		}
		if s.pauseReq.Load() {
			s.state.Store(int32(StatePaused))
			logrus.Infof("[t=%.0fs] Simulation paused", s.Clock)
			return nil
		}

		next := s.EventQueue.Peek()
		target := s.Horizon
		if next != nil && next.Timestamp() <= s.Horizon {
			target = next.Timestamp()
		}

		if target > s.Clock {
			step := target
			if s.MaxTimeStep > 0 && step-s.Clock > s.MaxTimeStep {
				step = s.Clock + s.MaxTimeStep
			}
			if err := s.advance(ctx, step); err != nil {
				s.state.Store(int32(StateStopped))
				return err
			}
			continue
		}

		if next == nil || next.Timestamp() > s.Horizon {
			s.state.Store(int32(StateFinished))
			logrus.Infof("[t=%.0fs] Simulation ended after %d events", s.Clock, s.EventsExecuted)
			return nil
		}

		ev := s.EventQueue.PopNext()
		logrus.Tracef("[t=%.3fs] Executing %T", s.Clock, ev)
		ev.Execute()
		s.EventsExecuted++
	}
}

// advance moves the clock to t, fires the time hook and applies pacing.
func (s *Simulator) advance(ctx context.Context, t float64) error {
	s.Clock = t
	s.Advances++
	if s.OnTimeAdvanced != nil {
		s.OnTimeAdvanced(t)
	}
	if s.FrameDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.FrameDelay):
		return nil
	}
}
