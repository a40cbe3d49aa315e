//go:build ebiten

package ui

import (
	"image/color"

	"thermo-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const tooltipWidth = 44

// Tooltip shows the description of the cell under the mouse cursor.
type Tooltip struct {
	sim   core.Sim
	scale int
	pixel *ebiten.Image
	lines []string
	x, y  int
}

// NewTooltip constructs a tooltip for a view drawn at scale.
func NewTooltip(sim core.Sim, scale int) *Tooltip {
	if scale <= 0 {
		scale = 1
	}
	t := &Tooltip{sim: sim, scale: scale, pixel: ebiten.NewImage(1, 1)}
	t.pixel.Fill(color.White)
	return t
}

// Update resolves the hovered cell. Rows are flipped so row 0 is at the
// bottom of the view.
func (t *Tooltip) Update() {
	t.lines = nil
	d, ok := t.sim.(core.Describer)
	if !ok {
		return
	}
	t.x, t.y = ebiten.CursorPosition()
	size := t.sim.Size()
	cx, cy := t.x/t.scale, size.H-1-t.y/t.scale
	if t.x < 0 || cx >= size.W || cy < 0 {
		return
	}
	desc, ok := d.Describe(cx, cy)
	if !ok {
		return
	}
	t.lines = WrapLines(desc, tooltipWidth)
}

// Draw paints the tooltip next to the cursor, kept inside the screen.
func (t *Tooltip) Draw(screen *ebiten.Image) {
	if len(t.lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	w := 0
	for _, l := range t.lines {
		w = max(w, text.BoundString(face, l).Dx())
	}
	w += 2 * 6
	h := len(t.lines)*14 + 8

	bounds := screen.Bounds()
	x, y := t.x+12, t.y+12
	if x+w > bounds.Dx() {
		x = t.x - w - 4
	}
	if y+h > bounds.Dy() {
		y = bounds.Dy() - h
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 8, G: 8, B: 12, A: 220})
	screen.DrawImage(t.pixel, op)
	for i, l := range t.lines {
		text.Draw(screen, l, face, x+6, y+14*(i+1), labelColor)
	}
}
