package sim

// DrawSource supplies the random draws for each simulated day.
type DrawSource interface {
	Next(p Params) DayDraws
}

// RNGDrawSource draws from a PartitionedRNG, one subsystem per kind of draw,
// so that demand and disruption sequences depend only on the key.
type RNGDrawSource struct {
	rng *PartitionedRNG
}

// NewRNGDrawSource creates a DrawSource seeded from key.
func NewRNGDrawSource(key SimulationKey) *RNGDrawSource {
	return &RNGDrawSource{rng: NewPartitionedRNG(key)}
}

// Key returns the key the source was seeded with.
func (d *RNGDrawSource) Key() SimulationKey {
	return d.rng.Key()
}

// Next draws one day's values. The lead time is drawn every day whether or
// not a policy orders, keeping the streams aligned across policies.
func (d *RNGDrawSource) Next(p Params) DayDraws {
	return DayDraws{
		Demand:         uniformInt(d.rng.ForSubsystem(SubsystemDemand).Intn, p.DemandMin, p.DemandMax),
		DisruptionRoll: d.rng.ForSubsystem(SubsystemDisruption).Float64(),
		LeadTime:       uniformInt(d.rng.ForSubsystem(SubsystemLeadTime).Intn, p.LeadTimeMin, p.LeadTimeMax),
	}
}

// uniformInt returns an integer uniformly from [lo, hi]. Requires lo <= hi.
func uniformInt(intn func(int) int, lo, hi int) int {
	return lo + intn(hi-lo+1)
}

// FixedDrawSource replays a recorded sequence of draws; it repeats the last
// entry once exhausted. Useful for stepping a scenario by hand.
type FixedDrawSource struct {
	Draws []DayDraws
	next  int
}

func (f *FixedDrawSource) Next(_ Params) DayDraws {
	if len(f.Draws) == 0 {
		return DayDraws{}
	}
	i := min(f.next, len(f.Draws)-1)
	f.next++
	return f.Draws[i]
}
