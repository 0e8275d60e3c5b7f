package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// TrialOptions configures a repeated-trial comparison.
type TrialOptions struct {
	Trials   int
	BaseSeed int64 // trial i runs with seed BaseSeed+i
	Paired   bool
	Workers  int // 0 means GOMAXPROCS
}

// MetricStats is the sample mean and standard deviation of one metric.
type MetricStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// ModeStats aggregates every metric of one mode across trials.
type ModeStats struct {
	Mode            AgentMode   `json:"mode"`
	AvgDelay        MetricStats `json:"avgDelay"`
	TotalCost       MetricStats `json:"totalCost"`
	ServiceLevel    MetricStats `json:"serviceLevel"`
	TotalBackorders MetricStats `json:"totalBackorders"`
	ResilienceScore MetricStats `json:"resilienceScore"`
}

// TrialSummary is the outcome of RunTrials.
type TrialSummary struct {
	Trials      int       `json:"trials"`
	Paired      bool      `json:"paired"`
	Traditional ModeStats `json:"traditional"`
	PAA         ModeStats `json:"paa"`
	// PAAServiceWinRate is the fraction of trials where PAA's service level
	// was strictly higher than Traditional's.
	PAAServiceWinRate float64 `json:"paaServiceWinRate"`
	PAACostWinRate    float64 `json:"paaCostWinRate"`
}

// RunTrials compares both policies over opts.Trials consecutive seeds using
// a bounded worker pool and aggregates the metrics.
func RunTrials(ctx context.Context, params Params, opts TrialOptions) (*TrialSummary, error) {
	if opts.Trials < 1 {
		return nil, fmt.Errorf("trials must be at least 1, got %d", opts.Trials)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	comparisons := make([]*Comparison, opts.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Trials; i++ {
		i := i // per-iteration copy (go1.21 loop semantics)
		g.Go(func() error {
			c, err := Compare(ctx, params, CompareOptions{Seed: opts.BaseSeed + int64(i), Paired: opts.Paired})
			if err != nil {
				return err
			}
			comparisons[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return SummarizeTrials(comparisons, opts.Paired), nil
}

// SummarizeTrials aggregates a set of comparisons.
func SummarizeTrials(comparisons []*Comparison, paired bool) *TrialSummary {
	trad := make([]Metrics, len(comparisons))
	paa := make([]Metrics, len(comparisons))
	serviceWins, costWins := 0, 0
	for i, c := range comparisons {
		trad[i] = c.Traditional.Metrics
		paa[i] = c.PAA.Metrics
		if paa[i].ServiceLevel > trad[i].ServiceLevel {
			serviceWins++
		}
		if paa[i].TotalCost < trad[i].TotalCost {
			costWins++
		}
	}
	n := float64(len(comparisons))
	summary := &TrialSummary{
		Trials:      len(comparisons),
		Paired:      paired,
		Traditional: aggregateMode(ModeTraditional, trad),
		PAA:         aggregateMode(ModePAA, paa),
	}
	if n > 0 {
		summary.PAAServiceWinRate = float64(serviceWins) / n
		summary.PAACostWinRate = float64(costWins) / n
	}
	return summary
}

func aggregateMode(mode AgentMode, ms []Metrics) ModeStats {
	column := func(f func(Metrics) float64) MetricStats {
		xs := make([]float64, len(ms))
		for i, m := range ms {
			xs[i] = f(m)
		}
		if len(xs) == 0 {
			return MetricStats{}
		}
		if len(xs) == 1 {
			return MetricStats{Mean: xs[0]}
		}
		mean, std := stat.MeanStdDev(xs, nil)
		return MetricStats{Mean: mean, StdDev: std}
	}
	return ModeStats{
		Mode:            mode,
		AvgDelay:        column(func(m Metrics) float64 { return m.AvgDelay }),
		TotalCost:       column(func(m Metrics) float64 { return m.TotalCost }),
		ServiceLevel:    column(func(m Metrics) float64 { return m.ServiceLevel }),
		TotalBackorders: column(func(m Metrics) float64 { return m.TotalBackorders }),
		ResilienceScore: column(func(m Metrics) float64 { return m.ResilienceScore }),
	}
}
