//go:build ebiten

package app

import (
	"image/color"
	"time"

	"thermo-ca/internal/core"
	"thermo-ca/internal/render"
	"thermo-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	tooltip *ui.Tooltip
	palette []color.RGBA
	timer   *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation, stepping it at tps ticks
// per second.
func New(sim core.Sim, scale int, seed int64, hudWidth, tps int) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(sim.Size().W, sim.Size().H),
		hud:     ui.NewHUD(sim, hudWidth),
		overlay: ui.NewOverlay(sim, scale),
		tooltip: ui.NewTooltip(sim, scale),
		timer:   core.NewFixedStep(tps),
		scale:   scale,
		seed:    seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.setPaused(false)
}

func (g *Game) isPaused() bool {
	if p, ok := g.sim.(core.Pausable); ok {
		return p.Paused()
	}
	return g.paused
}

func (g *Game) setPaused(paused bool) {
	if p, ok := g.sim.(core.Pausable); ok {
		p.SetPaused(paused)
		return
	}
	g.paused = paused
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.setPaused(!g.isPaused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.setPaused(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.hud.Update()
	g.overlay.Update()

	due := g.timer.ShouldStep()
	if g.tickOnce && g.isPaused() {
		// A single step runs even when the sim paused itself.
		g.setPaused(false)
		g.sim.Step()
		g.setPaused(true)
	} else if due && !g.isPaused() {
		g.sim.Step()
	}
	g.tickOnce = false
	g.tooltip.Update()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	s := g.sim.Size()
	g.hud.Draw(screen, s.W*g.scale, s.H*g.scale)
	g.tooltip.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
