//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"thermo-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type velocityProvider interface {
	Velocity(x, y int) (vx, vy float64, ok bool)
}

// Overlay draws airflow arrows and a pause banner on top of the grid.
// Key 1 toggles the arrows.
type Overlay struct {
	sim      core.Sim
	scale    int
	showFlow bool
	pixel    *ebiten.Image

	samples []FlowSample
	spacing int
	size    core.Size
}

// NewOverlay constructs an overlay for a view drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showFlow: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFlow = !o.showFlow
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showFlow {
		if provider, ok := o.sim.(velocityProvider); ok {
			o.drawFlow(screen, provider)
		}
	}
	if p, ok := o.sim.(core.Pausable); ok && p.Paused() {
		text.Draw(screen, "PAUSED", basicfont.Face7x13, 8, 18, alertColor)
	}
}

func (o *Overlay) drawFlow(screen *ebiten.Image, provider velocityProvider) {
	size := o.sim.Size()
	if size != o.size || o.samples == nil {
		o.samples, o.spacing = FlowSamples(size, o.scale, 400)
		o.size = size
	}
	const calm = 1e-3
	span := float64(o.spacing*o.scale) * 0.8
	for _, s := range o.samples {
		vx, vy, ok := provider.Velocity(s.X, s.Y)
		speed := math.Hypot(vx, vy)
		if !ok || speed < calm {
			continue
		}
		norm := math.Min(speed, 1)
		length := span * (0.3 + 0.7*math.Sqrt(norm))
		// Screen y grows downwards.
		nx, ny := vx/speed, -vy/speed
		tipX, tipY := s.SX+nx*length/2, s.SY+ny*length/2
		tailX, tailY := s.SX-nx*length/2, s.SY-ny*length/2
		r, g, b := flowColor(norm)
		col := color.RGBA{R: r, G: g, B: b, A: 220}
		o.drawLine(screen, tailX, tailY, tipX, tipY, 1, col)

		head := length * 0.3
		angle := math.Atan2(ny, nx)
		for _, side := range []float64{math.Pi / 6, -math.Pi / 6} {
			o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+side)*head, tipY-math.Sin(angle+side)*head, 1, col)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
