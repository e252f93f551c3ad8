package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every worker move and breakdown.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a run.
type SimulationTrace struct {
	Config      TraceConfig
	Moves       []MoveRecord
	Disruptions []DisruptionRecord
	Recoveries  []RecoveryRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Moves:       make([]MoveRecord, 0),
		Disruptions: make([]DisruptionRecord, 0),
		Recoveries:  make([]RecoveryRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordMove appends a worker move record.
func (st *SimulationTrace) RecordMove(record MoveRecord) {
	st.Moves = append(st.Moves, record)
}

// RecordDisruption appends a breakdown start record.
func (st *SimulationTrace) RecordDisruption(record DisruptionRecord) {
	st.Disruptions = append(st.Disruptions, record)
}

// RecordRecovery appends a breakdown end record.
func (st *SimulationTrace) RecordRecovery(record RecoveryRecord) {
	st.Recoveries = append(st.Recoveries, record)
}
