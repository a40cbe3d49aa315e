// Package run assembles a thermal world and its observers from loaded
// settings. Both the GUI and the headless command use it.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"thermo-ca/internal/building"
	"thermo-ca/internal/config"
	"thermo-ca/internal/logging"
	"thermo-ca/internal/sims/thermal"
	sqlitestorage "thermo-ca/internal/storage/sqlite"
	"thermo-ca/internal/stream"
	"thermo-ca/internal/telemetry"
)

// Session is a world wired to the observers enabled in the settings.
type Session struct {
	World    *thermal.World
	Recorder *sqlitestorage.Recorder
	Hub      *stream.Hub
	RunID    string

	log     zerolog.Logger
	server  *http.Server
	cleanup []func(context.Context) error
}

// NewWorld builds the world and registers the configured buildings.
func NewWorld(s *config.Settings, log zerolog.Logger) (*thermal.World, error) {
	w := thermal.NewWithConfig(s.Sim)
	w.SetLogger(logging.Sampled(log, 5, 10*time.Second))
	buildings, err := building.BuildAll(s.Buildings)
	if err != nil {
		return nil, err
	}
	for _, b := range buildings {
		if err := w.RegisterBuilding(b); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Start builds the world and enables telemetry, recording and streaming as
// configured. Close must be called to flush and release them.
func Start(ctx context.Context, s *config.Settings, log zerolog.Logger) (*Session, error) {
	w, err := NewWorld(s, log)
	if err != nil {
		return nil, err
	}
	sess := &Session{World: w, log: log}

	if s.Otel.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{
			ServiceName:    s.Otel.ServiceName,
			Endpoint:       s.Otel.Endpoint,
			Insecure:       s.Otel.Insecure,
			BatchTimeout:   s.Otel.BatchTimeout,
			MetricInterval: s.Otel.MetricInterval,
		})
		if err != nil {
			// Telemetry is optional; the run continues without it.
			log.Warn().Err(err).Msg("telemetry setup failed")
		} else {
			sess.cleanup = append(sess.cleanup, shutdown)
			obs, err := telemetry.NewTickObserver(telemetry.Tracer("thermal"), nil)
			if err != nil {
				sess.Close(ctx)
				return nil, fmt.Errorf("failed to create tick instruments: %w", err)
			}
			w.AddObserver(obs)
		}
	}

	if s.Storage.Enabled {
		rec, err := sqlitestorage.Open(s.Storage.Path, s.Storage.SampleEvery, log)
		if err != nil {
			sess.Close(ctx)
			return nil, err
		}
		sess.Recorder = rec
		sess.cleanup = append(sess.cleanup, func(context.Context) error { return rec.Close() })
		if sess.RunID, err = rec.StartRun(w.Config()); err != nil {
			sess.Close(ctx)
			return nil, err
		}
		w.AddObserver(rec)
	}
	if sess.RunID != "" {
		log = logging.WithRun(log, sess.RunID)
		sess.log = log
	}

	if s.Stream.Enabled {
		hub := stream.NewHub(log)
		sess.Hub = hub
		mux := http.NewServeMux()
		mux.Handle("/frames", hub)
		sess.server = &http.Server{Addr: s.Stream.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := sess.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("stream server stopped")
			}
		}()
		sess.cleanup = append(sess.cleanup, func(ctx context.Context) error {
			hub.Close()
			return sess.server.Shutdown(ctx)
		})
		w.AddObserver(stream.NewTickPublisher(hub, w, s.Stream.Every, log))
		log.Info().Str("addr", s.Stream.Addr).Msg("streaming frames on /frames")
	}
	return sess, nil
}

// Close releases every enabled component in reverse order of start.
func (s *Session) Close(ctx context.Context) {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		if err := s.cleanup[i](ctx); err != nil {
			s.log.Error().Err(err).Msg("shutdown failed")
		}
	}
	s.cleanup = nil
}
