package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalMoves     int
	MovesByReason  map[string]int
	MovesByWorker  map[string]int
	MovesByStation map[string]int // destination station → moves in
	Disruptions    int
	Recoveries     int
	DegradedTime   float64 // seconds spent broken, over completed breakdowns
	MaxDegraded    float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MovesByReason:  make(map[string]int),
		MovesByWorker:  make(map[string]int),
		MovesByStation: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalMoves = len(st.Moves)
	for _, m := range st.Moves {
		summary.MovesByReason[m.Reason]++
		summary.MovesByWorker[m.Worker]++
		summary.MovesByStation[m.To]++
	}

	summary.Disruptions = len(st.Disruptions)
	summary.Recoveries = len(st.Recoveries)
	for _, r := range st.Recoveries {
		d := r.Clock - r.Since
		summary.DegradedTime += d
		if d > summary.MaxDegraded {
			summary.MaxDegraded = d
		}
	}

	return summary
}
