package stream

import (
	"github.com/rs/zerolog"

	"thermo-ca/internal/sims/thermal"
)

// Snapshotter produces grid frames.
type Snapshotter interface {
	Snapshot() thermal.Frame
}

// TickPublisher is a thermal.Observer that publishes a frame every few
// ticks, and always when the run pauses.
type TickPublisher struct {
	hub   *Hub
	src   Snapshotter
	every int64
	log   zerolog.Logger
}

// NewTickPublisher publishes frames from src to hub once per every ticks.
func NewTickPublisher(hub *Hub, src Snapshotter, every int, log zerolog.Logger) *TickPublisher {
	if every <= 0 {
		every = 1
	}
	return &TickPublisher{hub: hub, src: src, every: int64(every), log: log}
}

// ObserveTick implements thermal.Observer.
func (p *TickPublisher) ObserveTick(r thermal.TickReport) {
	if r.Tick%p.every != 0 && !r.Paused {
		return
	}
	if p.hub.Subscribers() == 0 {
		return
	}
	if err := p.hub.Publish(p.src.Snapshot()); err != nil {
		p.log.Error().Err(err).Int64("tick", r.Tick).Msg("failed to publish frame")
	}
}
