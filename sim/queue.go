// Implements the ResourceQueue that boxes occupy while they wait for, or
// receive, service at a workstation.

package sim

import (
	"fmt"
	"strings"
)

// Unbounded marks a ResourceQueue without a capacity limit.
const Unbounded = -1

// ResourceQueue counts the boxes occupying a holding area and keeps a FIFO of
// boxes waiting for a place when the area is full.
type ResourceQueue struct {
	Name     string
	capacity int
	inUse    int
	waiting  []*Box

	entered int // total boxes ever admitted
	peak    int
}

// NewResourceQueue creates a queue with the given capacity, or Unbounded.
func NewResourceQueue(name string, capacity int) *ResourceQueue {
	return &ResourceQueue{Name: name, capacity: capacity}
}

// UnitsInUse returns the number of boxes currently occupying the queue.
func (q *ResourceQueue) UnitsInUse() int {
	return q.inUse
}

// Capacity returns the capacity, or Unbounded.
func (q *ResourceQueue) Capacity() int {
	return q.capacity
}

// Waiting returns the number of boxes blocked on this queue.
func (q *ResourceQueue) Waiting() int {
	return len(q.waiting)
}

// Entered returns how many boxes have been admitted since creation.
func (q *ResourceQueue) Entered() int {
	return q.entered
}

// Peak returns the highest occupancy observed.
func (q *ResourceQueue) Peak() int {
	return q.peak
}

func (q *ResourceQueue) hasRoom() bool {
	return q.capacity == Unbounded || q.inUse < q.capacity
}

// Enter admits b if there is room and reports true. Otherwise b joins the
// back of the waiting line and false is returned; it will be handed out by
// Admit once a place frees up.
func (q *ResourceQueue) Enter(b *Box) bool {
	if len(q.waiting) == 0 && q.hasRoom() {
		q.occupy()
		return true
	}
	q.waiting = append(q.waiting, b)
	return false
}

// Leave releases one place.
func (q *ResourceQueue) Leave() {
	if q.inUse == 0 {
		panic(fmt.Sprintf("ResourceQueue %q: Leave with no units in use", q.Name))
	}
	q.inUse--
}

// SetCapacity changes the capacity. Shrinking below the current occupancy
// does not evict anyone; it only stops new admissions.
func (q *ResourceQueue) SetCapacity(n int) {
	if n < 0 && n != Unbounded {
		n = 0
	}
	q.capacity = n
}

// Admit hands free places to waiting boxes in arrival order and returns the
// boxes admitted.
func (q *ResourceQueue) Admit() []*Box {
	var admitted []*Box
	for len(q.waiting) > 0 && q.hasRoom() {
		b := q.waiting[0]
		q.waiting = q.waiting[1:]
		q.occupy()
		admitted = append(admitted, b)
	}
	return admitted
}

func (q *ResourceQueue) occupy() {
	q.inUse++
	q.entered++
	if q.inUse > q.peak {
		q.peak = q.inUse
	}
}

func (q *ResourceQueue) String() string {
	var sb strings.Builder
	sb.WriteString(q.Name)
	sb.WriteString("[")
	fmt.Fprintf(&sb, "%d", q.inUse)
	if q.capacity != Unbounded {
		fmt.Fprintf(&sb, "/%d", q.capacity)
	}
	if len(q.waiting) > 0 {
		fmt.Fprintf(&sb, " +%d waiting", len(q.waiting))
	}
	sb.WriteString("]")
	return sb.String()
}
