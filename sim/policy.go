package sim

import (
	"errors"
	"fmt"
	"math"
)

// AgentMode selects the reorder policy for a run.
type AgentMode string

const (
	// ModeTraditional reorders reactively at the reorder point.
	ModeTraditional AgentMode = "traditional"
	// ModePAA is the Predictive Autonomous Agent: it reorders on a projected shortage.
	ModePAA AgentMode = "paa"
)

// ErrUnknownMode is returned for an AgentMode outside ValidModes.
var ErrUnknownMode = errors.New("unknown agent mode")

// ValidModes is the set of recognized agent modes.
var ValidModes = map[AgentMode]bool{ModeTraditional: true, ModePAA: true}

// AllModes lists the modes in display order.
var AllModes = []AgentMode{ModeTraditional, ModePAA}

// DisplayName returns the human-readable label for the mode.
func (m AgentMode) DisplayName() string {
	switch m {
	case ModeTraditional:
		return "Traditional"
	case ModePAA:
		return "PAA (Predictive)"
	default:
		return string(m)
	}
}

// ParseAgentMode converts a CLI or YAML string into an AgentMode.
func ParseAgentMode(s string) (AgentMode, error) {
	m := AgentMode(s)
	if !ValidModes[m] {
		return "", fmt.Errorf("%w %q; valid modes: traditional, paa", ErrUnknownMode, s)
	}
	return m, nil
}

const (
	// MovingAverageWindow is the number of trailing days the predictive policy averages.
	MovingAverageWindow = 5
	// DisruptionOrderBoost scales the predictive order quantity on a disrupted day.
	DisruptionOrderBoost = 1.5
)

// DecisionInput is everything a policy may look at when deciding.
// State is the state after today's arrivals have been applied.
type DecisionInput struct {
	State     State
	Params    Params
	Disrupted bool // today's disruption flag
	LeadTime  int  // lead time a new order placed today would have
}

// ReorderDecision is the outcome of one policy consultation.
type ReorderDecision struct {
	Order     bool
	Quantity  int
	LeadTime  int
	Projected float64 // inventory position the policy compared against the reorder level
	Action    string  // narrative; empty when Order is false
}

// ReorderPolicy decides whether to place a replenishment order today.
// Implementations must not order while an order is outstanding.
type ReorderPolicy interface {
	Name() string
	Decide(in DecisionInput) ReorderDecision
}

// TraditionalPolicy orders ReorderQty once inventory falls to the reorder level.
type TraditionalPolicy struct{}

func (TraditionalPolicy) Name() string { return string(ModeTraditional) }

func (TraditionalPolicy) Decide(in DecisionInput) ReorderDecision {
	s, p := in.State, in.Params
	d := ReorderDecision{Projected: s.Inventory}
	if s.Inventory > float64(p.ReorderLevel) || s.HasOutstanding() {
		return d
	}
	d.Order = true
	d.Quantity = p.ReorderQty
	d.LeadTime = TransitDays(in.LeadTime)
	d.Action = fmt.Sprintf("Reactive: Ordered %d units", d.Quantity)
	return d
}

// PredictivePolicy projects inventory over the longest lead time using a
// trailing moving average of demand and orders when the projection drops
// below the reorder level.
//
// The quantity boost only reacts to a disruption already flagged today;
// the policy has no forward model of future disruptions.
type PredictivePolicy struct{}

func (PredictivePolicy) Name() string { return string(ModePAA) }

func (PredictivePolicy) Decide(in DecisionInput) ReorderDecision {
	s, p := in.State, in.Params
	avg := TrailingAverage(s.History, MovingAverageWindow)
	projected := s.Inventory - avg*float64(p.LeadTimeMax)
	d := ReorderDecision{Projected: projected}
	if projected >= float64(p.ReorderLevel) || s.HasOutstanding() {
		return d
	}
	boost := 1.0
	if in.Disrupted {
		boost = DisruptionOrderBoost
	}
	d.Order = true
	d.Quantity = int(math.Round(float64(p.ReorderQty) * boost))
	d.LeadTime = TransitDays(in.LeadTime)
	d.Action = fmt.Sprintf("PAA: Predictive order of %d units (LT: %dd)", d.Quantity, d.LeadTime)
	return d
}

// TransitDays is the number of days an order placed with the drawn lead
// time spends in transit. Arrivals for the order day are already processed
// when a policy decides, so a zero lead time lands the next day.
func TransitDays(leadTime int) int {
	return max(leadTime, 1)
}

// TrailingAverage returns the mean of the last min(window, len(history))
// values, or 0 for an empty history.
func TrailingAverage(history []float64, window int) float64 {
	n := min(window, len(history))
	if n <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range history[len(history)-n:] {
		sum += v
	}
	return sum / float64(n)
}

// NewReorderPolicy creates the policy for the given mode.
func NewReorderPolicy(mode AgentMode) (ReorderPolicy, error) {
	switch mode {
	case ModeTraditional:
		return TraditionalPolicy{}, nil
	case ModePAA:
		return PredictivePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w %q; valid modes: traditional, paa", ErrUnknownMode, mode)
	}
}
