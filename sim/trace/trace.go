package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelOrders captures only days on which an order was placed.
	TraceLevelOrders TraceLevel = "orders"
	// TraceLevelDecisions captures every reorder policy consultation.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelOrders:    true,
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
	// Horizon is the last simulated day; orders arriving later never land.
	Horizon int
}

// SimulationTrace collects reorder decision records during one run.
type SimulationTrace struct {
	Config    TraceConfig
	Decisions []ReorderRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Decisions: make([]ReorderRecord, 0),
	}
}

// RecordDecision appends a reorder decision record, subject to the level.
// Safe on a nil trace.
func (st *SimulationTrace) RecordDecision(record ReorderRecord) {
	if st == nil {
		return
	}
	switch st.Config.Level {
	case TraceLevelDecisions:
	case TraceLevelOrders:
		if !record.Ordered {
			return
		}
	default:
		return
	}
	st.Decisions = append(st.Decisions, record)
}

// Actions returns the non-empty order narratives in day order.
func (st *SimulationTrace) Actions() []string {
	if st == nil {
		return nil
	}
	var out []string
	for _, d := range st.Decisions {
		if d.Ordered && d.Reason != "" {
			out = append(out, d.Reason)
		}
	}
	return out
}
