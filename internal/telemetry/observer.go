package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"thermo-ca/internal/sims/thermal"
)

// TickObserver turns tick reports into spans and metrics. Each tick becomes a
// span covering its measured duration with one event per incident.
type TickObserver struct {
	tracer trace.Tracer

	ticks     metric.Int64Counter
	incidents metric.Int64Counter
	duration  metric.Float64Histogram
	wind      metric.Float64Histogram
}

// NewTickObserver creates the instruments on meter. A nil meter uses the
// global provider.
func NewTickObserver(tracer trace.Tracer, meter metric.Meter) (*TickObserver, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(instrumentationPrefix + "thermal")
	}
	o := &TickObserver{tracer: tracer}
	var err error
	if o.ticks, err = meter.Int64Counter("thermal.ticks",
		metric.WithDescription("Completed simulation ticks")); err != nil {
		return nil, err
	}
	if o.incidents, err = meter.Int64Counter("thermal.incidents",
		metric.WithDescription("Instabilities that paused the run")); err != nil {
		return nil, err
	}
	if o.duration, err = meter.Float64Histogram("thermal.tick.duration",
		metric.WithDescription("Wall time of one tick"),
		metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if o.wind, err = meter.Float64Histogram("thermal.wind.max",
		metric.WithDescription("Largest face displacement per tick"),
		metric.WithUnit("{cell}")); err != nil {
		return nil, err
	}
	return o, nil
}

// ObserveTick implements thermal.Observer.
func (o *TickObserver) ObserveTick(r thermal.TickReport) {
	ctx := context.Background()
	end := time.Now()
	_, span := o.tracer.Start(ctx, "thermal.tick",
		trace.WithTimestamp(end.Add(-r.Duration)),
		trace.WithAttributes(
			attribute.Int64("tick", r.Tick),
			attribute.Bool("paused", r.Paused),
			attribute.Float64("wind.max", r.MaxWind),
			attribute.Float64("energy.total", r.Totals.Energy),
			attribute.Float64("water.total", r.Totals.Water),
			attribute.Float64("gas.total", r.Totals.Gas),
		),
	)
	for _, in := range r.Incidents {
		span.AddEvent("incident", trace.WithAttributes(
			attribute.String("kind", string(in.Kind)),
			attribute.Int("x", in.X),
			attribute.Int("y", in.Y),
			attribute.Float64("value", in.Value),
		))
		o.incidents.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(in.Kind))))
	}
	span.End(trace.WithTimestamp(end))

	o.ticks.Add(ctx, 1)
	o.duration.Record(ctx, float64(r.Duration)/float64(time.Millisecond))
	o.wind.Record(ctx, r.MaxWind)
}
