package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/invsim/invsim/sim/trace"
)

// CompareOptions configures a side-by-side run of both policies.
type CompareOptions struct {
	Seed int64
	// Paired gives both policies the same random key, so they face identical
	// demand, disruption, and lead-time draws. Unpaired runs derive a
	// separate key per mode.
	Paired     bool
	TraceLevel trace.TraceLevel
}

// MetricDeltas is PAA minus Traditional for each metric.
type MetricDeltas struct {
	AvgDelay        float64 `json:"avgDelay"`
	TotalCost       float64 `json:"totalCost"`
	ServiceLevel    float64 `json:"serviceLevel"`
	TotalBackorders float64 `json:"totalBackorders"`
	ResilienceScore float64 `json:"resilienceScore"`
}

// Comparison holds one run per mode over the same parameters.
type Comparison struct {
	Params      Params       `json:"params"`
	Paired      bool         `json:"paired"`
	Traditional *Result      `json:"traditional"`
	PAA         *Result      `json:"paa"`
	Deltas      MetricDeltas `json:"deltas"`
}

// KeyFor returns the key the given mode runs with under opts.
func (o CompareOptions) KeyFor(mode AgentMode) SimulationKey {
	key := NewSimulationKey(o.Seed)
	if o.Paired {
		return key
	}
	return key.ForMode(mode)
}

// Compare runs both policies concurrently. The runs share no mutable state.
func Compare(ctx context.Context, params Params, opts CompareOptions) (*Comparison, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Result, len(AllModes))
	g, ctx := errgroup.WithContext(ctx)
	for i, mode := range AllModes {
		i, mode := i, mode // per-iteration copy (go1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := RunWithTrace(params, mode, opts.KeyFor(mode), opts.TraceLevel)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewComparison(params, opts.Paired, results[0], results[1]), nil
}

// NewComparison pairs two finished results and computes the deltas.
func NewComparison(params Params, paired bool, traditional, paa *Result) *Comparison {
	t, p := traditional.Metrics, paa.Metrics
	return &Comparison{
		Params:      params,
		Paired:      paired,
		Traditional: traditional,
		PAA:         paa,
		Deltas: MetricDeltas{
			AvgDelay:        round2(p.AvgDelay - t.AvgDelay),
			TotalCost:       p.TotalCost - t.TotalCost,
			ServiceLevel:    round2(p.ServiceLevel - t.ServiceLevel),
			TotalBackorders: p.TotalBackorders - t.TotalBackorders,
			ResilienceScore: round2(p.ResilienceScore - t.ResilienceScore),
		},
	}
}

// Result returns the run for mode, or nil.
func (c *Comparison) Result(mode AgentMode) *Result {
	switch mode {
	case ModeTraditional:
		return c.Traditional
	case ModePAA:
		return c.PAA
	default:
		return nil
	}
}
