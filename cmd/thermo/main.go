//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"thermo-ca/internal/app"
	"thermo-ca/internal/config"
	"thermo-ca/internal/logging"
	"thermo-ca/internal/run"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}
	settings, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(os.Stderr, settings.Log.Level, settings.Log.Pretty)

	ctx := context.Background()
	sess, err := run.Start(ctx, settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start simulation")
	}
	defer sess.Close(ctx)

	world := sess.World
	game := app.New(world, settings.Run.Scale, settings.Sim.Seed, settings.Run.HUDWidth, settings.Run.TPS)
	size := world.Size()

	ebiten.SetWindowTitle("thermo-ca - " + world.Name())
	ebiten.SetTPS(settings.Run.TPS)
	ebiten.SetWindowSize(size.W*settings.Run.Scale+settings.Run.HUDWidth, size.H*settings.Run.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error().Err(err).Msg("game loop failed")
	}
}
