// Package sim provides the discrete-time inventory simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - params.go: the immutable parameter set and its validation
//   - state.go: the per-day State record and the pure Step transition
//   - policy.go: the Traditional and Predictive reorder policies
//   - simulator.go: the day loop that threads State through Step
//
// # Architecture
//
// One run simulates a single inventory position for Params.SimulationDays
// days under one AgentMode. Each day draws demand, a disruption roll, and a
// candidate lead time from a PartitionedRNG, then calls Step. Step is pure:
// it returns a new State and the day's DailySnapshot without touching its
// input.
//
// Comparisons of the two policies live in compare.go (one pair of runs) and
// trials.go (many pairs over consecutive seeds). Sub-packages:
//   - sim/trace/: reorder decision recording
//   - sim/report/: text, CSV, Markdown and JSON rendering of results
//
// # Key Interfaces
//
//   - ReorderPolicy: decide whether and how much to reorder on a given day
//   - DrawSource: supply the random draws for a day
package sim
