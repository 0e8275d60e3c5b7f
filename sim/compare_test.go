package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invsim/invsim/sim/trace"
)

func demandsOf(r *Result) []float64 {
	out := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		out[i] = s.Demand
	}
	return out
}

func disruptionsOf(r *Result) []bool {
	out := make([]bool, len(r.Snapshots))
	for i, s := range r.Snapshots {
		out[i] = s.IsDisrupted
	}
	return out
}

func TestCompare_Paired_IdenticalShocks(t *testing.T) {
	// GIVEN a paired comparison
	c, err := Compare(context.Background(), DefaultParams(), CompareOptions{Seed: 42, Paired: true})
	require.NoError(t, err)

	// THEN both policies face the same demand and disruption days
	assert.Equal(t, demandsOf(c.Traditional), demandsOf(c.PAA))
	assert.Equal(t, disruptionsOf(c.Traditional), disruptionsOf(c.PAA))
	assert.Equal(t, ModeTraditional, c.Traditional.Mode)
	assert.Equal(t, ModePAA, c.PAA.Mode)
	assert.Equal(t, c.Traditional.Seed, c.PAA.Seed)
}

func TestCompare_Unpaired_IndependentStreams(t *testing.T) {
	params := DefaultParams()
	params.SimulationDays = 60
	c, err := Compare(context.Background(), params, CompareOptions{Seed: 42})
	require.NoError(t, err)

	assert.NotEqual(t, c.Traditional.Seed, c.PAA.Seed)
	assert.NotEqual(t, demandsOf(c.Traditional), demandsOf(c.PAA))
}

func TestCompare_MatchesIndividualRuns(t *testing.T) {
	// Running the modes concurrently must give the same result as running
	// each alone with the same key.
	params := DefaultParams()
	opts := CompareOptions{Seed: 5}
	c, err := Compare(context.Background(), params, opts)
	require.NoError(t, err)

	for _, mode := range AllModes {
		solo, err := Run(params, mode, opts.KeyFor(mode))
		require.NoError(t, err)
		assert.Equal(t, solo.Snapshots, c.Result(mode).Snapshots, "mode %s", mode)
	}
}

func TestCompare_Deltas(t *testing.T) {
	trad := &Result{Mode: ModeTraditional, Metrics: Metrics{ServiceLevel: 60, TotalCost: 900, AvgDelay: 0.4, TotalBackorders: 120, ResilienceScore: 34}}
	paa := &Result{Mode: ModePAA, Metrics: Metrics{ServiceLevel: 95.5, TotalCost: 700, AvgDelay: 0.1, TotalBackorders: 10, ResilienceScore: 64.85}}

	c := NewComparison(DefaultParams(), true, trad, paa)

	assert.Equal(t, 35.5, c.Deltas.ServiceLevel)
	assert.Equal(t, -200.0, c.Deltas.TotalCost)
	assert.Equal(t, -0.3, c.Deltas.AvgDelay)
	assert.Equal(t, -110.0, c.Deltas.TotalBackorders)
	assert.Equal(t, 30.85, c.Deltas.ResilienceScore)
	assert.Nil(t, c.Result("other"))
}

func TestCompare_InvalidParams(t *testing.T) {
	params := DefaultParams()
	params.SimulationDays = 0
	_, err := Compare(context.Background(), params, CompareOptions{Seed: 1})
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestCompare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compare(ctx, DefaultParams(), CompareOptions{Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_TraceLevelPropagates(t *testing.T) {
	c, err := Compare(context.Background(), DefaultParams(), CompareOptions{Seed: 9, Paired: true, TraceLevel: trace.TraceLevelDecisions})
	require.NoError(t, err)
	require.NotNil(t, c.PAA.Trace)
	assert.Len(t, c.PAA.Trace.Decisions, DefaultParams().SimulationDays)
}
