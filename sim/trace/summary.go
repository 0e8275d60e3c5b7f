package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions    int
	OrdersPlaced      int
	UnitsOrdered      int
	OrdersLanded      int // arrival day within the horizon
	UnitsLanded       int
	OrdersPastHorizon int
	MeanLeadTime      float64
	MaxLeadTime       int
	DisruptedOrders   int // orders placed on a disrupted day
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	totalLead := 0
	for _, d := range st.Decisions {
		if !d.Ordered {
			continue
		}
		summary.OrdersPlaced++
		summary.UnitsOrdered += d.Quantity
		totalLead += d.LeadTime
		if d.LeadTime > summary.MaxLeadTime {
			summary.MaxLeadTime = d.LeadTime
		}
		if d.Disrupted {
			summary.DisruptedOrders++
		}
		if st.Config.Horizon > 0 && d.ArrivalDay > st.Config.Horizon {
			summary.OrdersPastHorizon++
			continue
		}
		summary.OrdersLanded++
		summary.UnitsLanded += d.Quantity
	}
	if summary.OrdersPlaced > 0 {
		summary.MeanLeadTime = float64(totalLead) / float64(summary.OrdersPlaced)
	}

	return summary
}
