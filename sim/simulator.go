// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/invsim/invsim/sim/trace"
)

// Result is the complete output of one run.
type Result struct {
	Mode      AgentMode              `json:"mode"`
	Seed      int64                  `json:"seed"`
	Snapshots []DailySnapshot        `json:"snapshots"`
	Metrics   Metrics                `json:"metrics"`
	Trace     *trace.SimulationTrace `json:"-"`
}

// Simulator runs one policy over the full horizon.
type Simulator struct {
	Params Params
	Mode   AgentMode
	Policy ReorderPolicy
	Source DrawSource
	// Trace receives one record per policy consultation; nil disables tracing.
	Trace *trace.SimulationTrace
}

// NewSimulator validates params and mode and wires a simulator around source.
// No simulation step executes if validation fails.
func NewSimulator(params Params, mode AgentMode, source DrawSource) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewReorderPolicy(mode)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("draw source must not be nil")
	}
	return &Simulator{
		Params: params,
		Mode:   mode,
		Policy: policy,
		Source: source,
	}, nil
}

// Run simulates every day of the horizon and derives the metrics.
// There is no early termination.
func (s *Simulator) Run() *Result {
	p := s.Params
	state := NewState(p)
	snapshots := make([]DailySnapshot, 0, p.SimulationDays)

	for day := 1; day <= p.SimulationDays; day++ {
		draws := s.Source.Next(p)
		var out DayOutcome
		state, out = Step(state, p, s.Policy, draws)
		snapshots = append(snapshots, out.Snapshot)
		s.record(state, out)

		snap := out.Snapshot
		logrus.Debugf("[day %03d] %s demand=%.1f inv=%.1f backorder=%.1f shipped=%.1f disrupted=%v",
			day, s.Mode, snap.Demand, snap.Inventory, snap.Backorder, snap.Shipped, snap.IsDisrupted)
		if snap.AgentAction != "" {
			logrus.Debugf("[day %03d] %s", day, snap.AgentAction)
		}
	}

	metrics := ComputeMetrics(snapshots, state, p.SimulationDays)
	logrus.Infof("%s run complete: service=%.2f%% cost=%.0f resilience=%.2f",
		s.Mode.DisplayName(), metrics.ServiceLevel, metrics.TotalCost, metrics.ResilienceScore)

	result := &Result{
		Mode:      s.Mode,
		Snapshots: snapshots,
		Metrics:   metrics,
		Trace:     s.Trace,
	}
	if src, ok := s.Source.(*RNGDrawSource); ok {
		result.Seed = int64(src.Key())
	}
	return result
}

func (s *Simulator) record(state State, out DayOutcome) {
	if s.Trace == nil {
		return
	}
	d := out.Decision
	rec := trace.ReorderRecord{
		Day:       out.Snapshot.Day,
		Policy:    s.Policy.Name(),
		Inventory: out.Snapshot.Inventory + out.Snapshot.Fulfilled,
		Projected: d.Projected,
		Disrupted: out.Snapshot.IsDisrupted,
		Ordered:   d.Order,
		Reason:    d.Action,
	}
	if d.Order {
		rec.Quantity = d.Quantity
		rec.LeadTime = d.LeadTime
		rec.ArrivalDay = state.Pending[len(state.Pending)-1].ArrivalDay
	}
	s.Trace.RecordDecision(rec)
}

// Run executes one simulation of mode seeded from key.
func Run(params Params, mode AgentMode, key SimulationKey) (*Result, error) {
	return RunWithTrace(params, mode, key, trace.TraceLevelNone)
}

// RunWithTrace is Run with decision tracing at the given level.
func RunWithTrace(params Params, mode AgentMode, key SimulationKey, level trace.TraceLevel) (*Result, error) {
	s, err := NewSimulator(params, mode, NewRNGDrawSource(key))
	if err != nil {
		return nil, err
	}
	if level != trace.TraceLevelNone && level != "" {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level, Horizon: params.SimulationDays})
	}
	return s.Run(), nil
}

// RunWithSource executes one simulation of mode with injected random draws.
func RunWithSource(params Params, mode AgentMode, source DrawSource) (*Result, error) {
	s, err := NewSimulator(params, mode, source)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
