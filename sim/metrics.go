// Aggregate performance metrics derived from a completed run.

package sim

import (
	"fmt"
	"io"
	"math"
)

// Metrics summarizes one run. Every field is derived from the snapshot
// sequence and the run totals; none is tracked independently.
type Metrics struct {
	AvgDelay        float64 `json:"avgDelay"` // fraction of days ending with a backorder
	TotalCost       float64 `json:"totalCost"`
	ServiceLevel    float64 `json:"serviceLevel"` // % of fresh demand fulfilled on the day it arose
	TotalBackorders float64 `json:"totalBackorders"`
	ResilienceScore float64 `json:"resilienceScore"`
}

const (
	resilienceServiceWeight = 0.7
	resilienceDelayPenalty  = 20
)

// ComputeMetrics derives Metrics from a full run. final must be the State
// after the last Step.
func ComputeMetrics(snapshots []DailySnapshot, final State, days int) Metrics {
	serviceLevel := 0.0
	if final.TotalDemand > 0 {
		serviceLevel = final.TotalFulfilled / final.TotalDemand * 100
	}

	backorderDays := 0
	totalBackorders := 0.0
	for _, s := range snapshots {
		if s.Backorder > 0 {
			backorderDays++
		}
		totalBackorders += s.Backorder
	}
	avgDelay := 0.0
	if days > 0 {
		avgDelay = float64(backorderDays) / float64(days)
	}

	resilience := math.Max(0, serviceLevel*resilienceServiceWeight-avgDelay*resilienceDelayPenalty)

	return Metrics{
		AvgDelay:        round2(avgDelay),
		TotalCost:       math.Round(final.TotalCost),
		ServiceLevel:    round2(serviceLevel),
		TotalBackorders: totalBackorders,
		ResilienceScore: round2(resilience),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Print writes the metrics in the CLI's plain-text layout.
func (m Metrics) Print(w io.Writer, mode AgentMode) {
	fmt.Fprintf(w, "=== %s Metrics ===\n", mode.DisplayName())
	fmt.Fprintf(w, "Service Level        : %.2f%%\n", m.ServiceLevel)
	fmt.Fprintf(w, "Total Cost           : $%.0f\n", m.TotalCost)
	fmt.Fprintf(w, "Backorder Frequency  : %.2f\n", m.AvgDelay)
	fmt.Fprintf(w, "Total Backorders     : %.1f units\n", m.TotalBackorders)
	fmt.Fprintf(w, "Resilience Score     : %.2f\n", m.ResilienceScore)
}
