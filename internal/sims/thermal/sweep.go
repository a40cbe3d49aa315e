package thermal

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	pcore "thermo-ca/pkg/core"
)

// SweepRecord is one evaluated parameter set.
type SweepRecord struct {
	Label  string
	Params Params
	Result StabilityResult
}

type sweepRange struct {
	name     string
	min, max float64
	setter   func(p *Params, v float64)
}

var sweepRanges = []sweepRange{
	{name: "airflow_speed", min: 1, max: 20, setter: func(p *Params, v float64) { p.AirflowSpeed = v }},
	{name: "delta_time", min: 0.005, max: 0.05, setter: func(p *Params, v float64) { p.DeltaTime = v }},
	{name: "gravity", min: 0, max: 1, setter: func(p *Params, v float64) { p.Gravity = v }},
	{name: "friction", min: 0.5, max: 1, setter: func(p *Params, v float64) { p.Friction = v }},
}

// randomizeParams draws every swept parameter uniformly from its range.
func randomizeParams(rng *pcore.RNG, base Params) Params {
	p := base
	for _, r := range sweepRanges {
		r.setter(&p, r.min+(r.max-r.min)*rng.Float64())
	}
	return p
}

// StabilitySweep evaluates the baseline and samples random parameter sets
// for up to ticks ticks each, running at most workers worlds at once. Records
// are ordered best first: stable runs, then longer runs, then calmer wind.
func StabilitySweep(ctx context.Context, base Config, ticks, samples, workers int) ([]SweepRecord, error) {
	if samples < 0 {
		samples = 0
	}
	if workers <= 0 {
		workers = 1
	}

	records := make([]SweepRecord, samples+1)
	records[0] = SweepRecord{Label: "baseline", Params: base.Params}
	rng := pcore.NewRNG(base.Seed + 0x5f3759df)
	for i := 1; i <= samples; i++ {
		records[i] = SweepRecord{
			Label:  fmt.Sprintf("random#%d", i),
			Params: randomizeParams(rng, base.Params),
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.Params = records[i].Params
			records[i].Result = RunStability(cfg, ticks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return betterStability(records[i].Result, records[j].Result)
	})
	return records, nil
}

func betterStability(a, b StabilityResult) bool {
	if a.Stable != b.Stable {
		return a.Stable
	}
	if a.TicksRun != b.TicksRun {
		return a.TicksRun > b.TicksRun
	}
	return a.PeakWind < b.PeakWind
}
