package sim

// LoadStatus classifies a workstation's wait-queue occupancy.
type LoadStatus int

const (
	Underloaded LoadStatus = -1
	Normal      LoadStatus = 0
	Overloaded  LoadStatus = 1
)

func (s LoadStatus) String() string {
	switch s {
	case Underloaded:
		return "underloaded"
	case Normal:
		return "normal"
	case Overloaded:
		return "overloaded"
	}
	return "unknown"
}

// rawLoad classifies occupancy against the work-in-progress limit with no
// hysteresis.
func rawLoad(occupancy, wipLimit int) LoadStatus {
	switch {
	case occupancy >= wipLimit:
		return Overloaded
	case occupancy <= 0:
		return Underloaded
	default:
		return Normal
	}
}

// LoadPerception filters raw load through a reaction time. The raw condition
// and the time it was first seen form the single "since" timestamp; the
// reported status only follows the condition once it has held for longer
// than the reaction time.
//
// Not idempotent across different times: callers must pass non-decreasing now.
type LoadPerception struct {
	WipLimit     int
	ReactionTime float64

	condition LoadStatus
	since     float64
	armed     bool
	reported  LoadStatus
}

// NewLoadPerception creates a perception that initially reports Normal.
func NewLoadPerception(wipLimit int, reactionTime float64) *LoadPerception {
	return &LoadPerception{WipLimit: wipLimit, ReactionTime: reactionTime, reported: Normal}
}

// Perceive updates the perception with the current occupancy and returns the
// reported status.
func (p *LoadPerception) Perceive(occupancy int, now float64) LoadStatus {
	raw := rawLoad(occupancy, p.WipLimit)
	if !p.armed || raw != p.condition {
		p.condition = raw
		p.since = now
		p.armed = true
	}
	if now-p.since > p.ReactionTime {
		p.reported = raw
	}
	return p.reported
}

// Reported returns the last reported status without updating it.
func (p *LoadPerception) Reported() LoadStatus {
	return p.reported
}

// Condition returns the raw condition being timed and when it was first seen.
// ok is false before the first Perceive call.
func (p *LoadPerception) Condition() (status LoadStatus, since float64, ok bool) {
	return p.condition, p.since, p.armed
}
