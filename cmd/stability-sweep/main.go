// Command stability-sweep samples flow parameters and reports which keep the
// thermal simulation free of instabilities longest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"thermo-ca/internal/sims/thermal"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	ticks := flag.Int("ticks", 500, "number of ticks to simulate per candidate")
	samples := flag.Int("samples", 16, "random parameter sets to evaluate")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	top := flag.Int("top", 5, "results to print")
	var overrides kvList
	flag.Var(&overrides, "set", "base config override in key=value form, e.g. w=64 (repeatable)")
	flag.Parse()

	kv := map[string]string{"w": "64", "h": "64"}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			continue
		}
		kv[parts[0]] = parts[1]
	}
	cfg := thermal.FromMap(kv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := thermal.StabilitySweep(ctx, cfg, *ticks, *samples, *workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sweep aborted:", err)
		os.Exit(1)
	}

	for i, rec := range records {
		if i >= *top {
			break
		}
		r := rec.Result
		status := "stable"
		if !r.Stable {
			status = fmt.Sprintf("%s at tick %d (%d,%d)", r.First.Kind, r.First.Tick, r.First.X, r.First.Y)
		}
		fmt.Printf("%d. %s: %s, ticks %d, peak wind %.3f, energy drift %.2e\n",
			i+1, rec.Label, status, r.TicksRun, r.PeakWind, r.EnergyDrift)
		printParams(rec.Params)
	}
}

func printParams(p thermal.Params) {
	fmt.Printf("   airflow_speed=%.3f delta_time=%.4f gravity=%.3f friction=%.3f\n",
		p.AirflowSpeed, p.DeltaTime, p.Gravity, p.Friction)
}
