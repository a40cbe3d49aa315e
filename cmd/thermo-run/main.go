// Command thermo-run steps the thermal simulation without a window, pacing
// ticks at the configured rate and stopping on interrupt or after a fixed
// number of ticks.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"thermo-ca/internal/config"
	"thermo-ca/internal/core"
	"thermo-ca/internal/logging"
	"thermo-ca/internal/run"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	ticks := flag.Int64("ticks", -1, "stop after this many ticks (overrides run.ticks)")
	resume := flag.Bool("resume", false, "resume automatically after an instability pause")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}
	settings, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *ticks >= 0 {
		settings.Run.Ticks = *ticks
	}
	logger := logging.New(os.Stderr, settings.Log.Level, settings.Log.Pretty)
	if file := config.ConfigFile(); file != "" {
		logger.Info().Str("file", file).Msg("config loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := run.Start(ctx, settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start simulation")
	}
	world := sess.World
	start := world.Totals()
	started := time.Now()

	timer := core.NewFixedStep(settings.Run.TPS)
	poll := time.NewTicker(timer.Interval())
	defer poll.Stop()

loop:
	for settings.Run.Ticks == 0 || world.TickCount() < settings.Run.Ticks {
		select {
		case <-ctx.Done():
			break loop
		case <-poll.C:
		}
		if world.Paused() {
			if !*resume {
				logger.Warn().Int64("tick", world.TickCount()).Msg("simulation paused by an instability, stopping")
				break loop
			}
			world.SetPaused(false)
		}
		for n := timer.Due(); n > 0 && (settings.Run.Ticks == 0 || world.TickCount() < settings.Run.Ticks); n-- {
			world.Step()
		}
	}

	end := world.Totals()
	logger.Info().
		Int64("ticks", world.TickCount()).
		Str("elapsed", humanize.RelTime(started, time.Now(), "", "")).
		Str("energy", humanize.SIWithDigits(end.Energy, 3, "J")).
		Float64("energyDrift", relative(end.Energy, start.Energy)).
		Float64("waterDrift", relative(end.Water, start.Water)).
		Float64("gasDrift", relative(end.Gas, start.Gas)).
		Msg("run finished")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess.Close(shutdownCtx)
}

func relative(now, then float64) float64 {
	if then == 0 {
		return 0
	}
	return (now - then) / then
}
