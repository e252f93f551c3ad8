package sim

import "github.com/sirupsen/logrus"

// EventType names a kind of scheduled event.
type EventType string

const (
	EventTypeWake      EventType = "Wake"
	EventTypeWorkDone  EventType = "WorkDone"
	EventTypeSlotGrant EventType = "SlotGrant"
	EventTypeArrival   EventType = "Arrival"
)

// EventTypePriority defines ordering for simultaneous events.
// Lower values are processed first: slots are freed before they are handed
// out, and handed out before new boxes arrive.
var EventTypePriority = map[EventType]int{
	EventTypeWake:      0,
	EventTypeWorkDone:  1,
	EventTypeSlotGrant: 2,
	EventTypeArrival:   3,
}

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated seconds), a per-simulator EventID
// used as the final tie-breaker, and an Execute method that advances
// scenario state when invoked.
type Event interface {
	Timestamp() float64
	EventID() uint64
	Type() EventType
	Execute()
}

// BaseEvent provides common event fields
type BaseEvent struct {
	timestamp float64
	eventID   uint64
	eventType EventType
}

func newBaseEvent(timestamp float64, eventType EventType, id uint64) BaseEvent {
	return BaseEvent{
		timestamp: timestamp,
		eventID:   id,
		eventType: eventType,
	}
}

func (e *BaseEvent) Timestamp() float64 {
	return e.timestamp
}

func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

func (e *BaseEvent) Type() EventType {
	return e.eventType
}

// ArrivalEvent creates a new box at the head of the line and schedules the
// next arrival.
type ArrivalEvent struct {
	BaseEvent
	flow *Flow
}

func (e *ArrivalEvent) Execute() {
	logrus.Tracef("<< Arrival at %.2fs", e.timestamp)
	e.flow.handleArrival()
}

// SlotGrantEvent resumes a box that was waiting for a free worker slot.
type SlotGrantEvent struct {
	BaseEvent
	flow    *Flow
	Box     *Box
	Station StationID
}

func (e *SlotGrantEvent) Execute() {
	e.flow.beginWork(e.Box, e.flow.Line.Station(e.Station))
}

// WorkDoneEvent fires when a box's sampled work delay at a station elapses.
type WorkDoneEvent struct {
	BaseEvent
	flow    *Flow
	Box     *Box
	Station StationID
}

func (e *WorkDoneEvent) Execute() {
	e.flow.finishWork(e.Box, e.flow.Line.Station(e.Station))
}

// WakeEvent carries no work; it only makes the clock stop at its timestamp,
// e.g. so a breakdown ends exactly at its recorded end time.
type WakeEvent struct {
	BaseEvent
}

func (e *WakeEvent) Execute() {}
