package sim

import "container/heap"

// EventHeap is the simulator's pending-event queue. Events pop in
// (timestamp, EventTypePriority, event ID) order, so simultaneous events
// always run in the same order for a given seed.
type EventHeap struct {
	q eventQueue
}

func NewEventHeap() *EventHeap {
	return &EventHeap{}
}

// Len returns the number of pending events.
func (h *EventHeap) Len() int { return len(h.q) }

// Schedule queues e.
func (h *EventHeap) Schedule(e Event) { heap.Push(&h.q, e) }

// PopNext removes and returns the earliest event, or nil when empty.
func (h *EventHeap) PopNext() Event {
	if len(h.q) == 0 {
		return nil
	}
	return heap.Pop(&h.q).(Event)
}

// Peek returns the earliest event without removing it, or nil when empty.
func (h *EventHeap) Peek() Event {
	if len(h.q) == 0 {
		return nil
	}
	return h.q[0]
}

// eventQueue is the heap.Interface backing EventHeap.
type eventQueue []Event

func (q eventQueue) Len() int      { return len(q) }
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q eventQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if ta, tb := a.Timestamp(), b.Timestamp(); ta != tb {
		return ta < tb
	}
	if pa, pb := EventTypePriority[a.Type()], EventTypePriority[b.Type()]; pa != pb {
		return pa < pb
	}
	return a.EventID() < b.EventID()
}

func (q *eventQueue) Push(x any) { *q = append(*q, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old) - 1
	e := old[n]
	old[n] = nil
	*q = old[:n]
	return e
}
