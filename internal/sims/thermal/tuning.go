package thermal

// StabilityResult captures how long a configuration runs before the first
// instability.
type StabilityResult struct {
	// TicksRun is the number of completed ticks.
	TicksRun int64
	// Stable reports whether the run finished without an incident.
	Stable bool
	// First is the first incident raised, if any.
	First *Incident
	// PeakWind is the largest face displacement seen in cells per tick.
	PeakWind float64
	// EnergyDrift is the relative change in total thermal energy.
	EnergyDrift float64
}

// RunStability steps a fresh world built from cfg for up to ticks ticks and
// stops at the first incident.
func RunStability(cfg Config, ticks int) StabilityResult {
	if ticks <= 0 {
		return StabilityResult{Stable: true}
	}
	world := NewWithConfig(cfg)
	start := world.Totals().Energy

	var res StabilityResult
	world.AddObserver(ObserverFunc(func(r TickReport) {
		if r.MaxWind > res.PeakWind {
			res.PeakWind = r.MaxWind
		}
		if res.First == nil && len(r.Incidents) > 0 {
			first := r.Incidents[0]
			res.First = &first
		}
	}))

	for i := 0; i < ticks && !world.Paused(); i++ {
		world.Step()
	}
	res.TicksRun = world.TickCount()
	res.Stable = res.First == nil
	if start != 0 {
		res.EnergyDrift = (world.Totals().Energy - start) / start
	}
	return res
}
