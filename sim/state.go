package sim

import "slices"

// DisruptionDemandFactor multiplies the base demand on a disrupted day.
const DisruptionDemandFactor = 2.5

// PendingOrder is a replenishment order in transit.
type PendingOrder struct {
	ArrivalDay int     `json:"arrivalDay"`
	Quantity   float64 `json:"quantity"`
}

// DailySnapshot records the end-of-day position for one simulated day.
type DailySnapshot struct {
	Day         int     `json:"day"`
	Demand      float64 `json:"demand"`
	Inventory   float64 `json:"inventory"`
	Backorder   float64 `json:"backorder"`
	Fulfilled   float64 `json:"fulfilled"`
	Shipped     float64 `json:"shipped"` // units that arrived from the supplier today
	Cost        float64 `json:"cost"`
	IsDisrupted bool    `json:"isDisrupted"`
	AgentAction string  `json:"agentAction,omitempty"`
}

// DayDraws holds the random values consumed by one day.
type DayDraws struct {
	Demand         int     // base demand in [DemandMin, DemandMax]
	DisruptionRoll float64 // uniform in [0, 1); the day is disrupted when below the probability
	LeadTime       int     // in [LeadTimeMin, LeadTimeMax]; only used if an order is placed
}

// State is the simulation state between days. Step never mutates a State;
// it returns a fresh one, so any State can be replayed in isolation.
type State struct {
	Day            int // last completed day; 0 before the first step
	Inventory      float64
	Backorder      float64
	Pending        []PendingOrder
	History        []float64 // realized demand per day, disruption included
	TotalDemand    float64
	TotalFulfilled float64 // fresh-demand fulfillment only
	TotalCost      float64
}

// NewState returns the state before day 1.
func NewState(p Params) State {
	return State{Inventory: float64(p.InitialInventory)}
}

// HasOutstanding reports whether an order is in transit.
func (s State) HasOutstanding() bool {
	return len(s.Pending) > 0
}

// DayOutcome carries the by-products of a Step besides the next State.
type DayOutcome struct {
	Snapshot DailySnapshot
	Decision ReorderDecision
}

// Step advances s by one day. The order of operations is fixed: demand,
// disruption, history, arrivals, reorder decision, fulfillment, cost.
func Step(s State, p Params, policy ReorderPolicy, draws DayDraws) (State, DayOutcome) {
	day := s.Day + 1
	next := State{
		Day:            day,
		Inventory:      s.Inventory,
		Backorder:      s.Backorder,
		TotalDemand:    s.TotalDemand,
		TotalFulfilled: s.TotalFulfilled,
		TotalCost:      s.TotalCost,
	}

	demand := float64(draws.Demand)
	disrupted := draws.DisruptionRoll < p.DisruptionProbability
	if disrupted {
		demand *= DisruptionDemandFactor
	}
	next.TotalDemand += demand
	next.History = append(slices.Clone(s.History), demand)

	shipped := 0.0
	for _, o := range s.Pending {
		if o.ArrivalDay == day {
			next.Inventory += o.Quantity
			shipped += o.Quantity
			continue
		}
		next.Pending = append(next.Pending, o)
	}

	decision := policy.Decide(DecisionInput{
		State:     next,
		Params:    p,
		Disrupted: disrupted,
		LeadTime:  draws.LeadTime,
	})
	if decision.Order && !next.HasOutstanding() {
		next.Pending = append(next.Pending, PendingOrder{
			ArrivalDay: day + TransitDays(decision.LeadTime),
			Quantity:   float64(decision.Quantity),
		})
	} else {
		decision = ReorderDecision{Projected: decision.Projected}
	}

	f := Fulfill(demand, next.Backorder, next.Inventory)
	next.Inventory = f.Inventory
	next.Backorder = f.Backorder
	next.TotalFulfilled += f.Fresh

	cost := DailyCost(next.Inventory, next.Backorder)
	next.TotalCost += cost

	return next, DayOutcome{
		Snapshot: DailySnapshot{
			Day:         day,
			Demand:      demand,
			Inventory:   next.Inventory,
			Backorder:   next.Backorder,
			Fulfilled:   f.Fulfilled,
			Shipped:     shipped,
			Cost:        cost,
			IsDisrupted: disrupted,
			AgentAction: decision.Action,
		},
		Decision: decision,
	}
}
