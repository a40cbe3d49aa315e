//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"thermo-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 10
	lineHeight   = 16
	headerLines  = 3
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type tickCounter interface {
	TickCount() int64
}

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	selectedColor   = color.RGBA{R: 255, G: 200, B: 90, A: 255}
	alertColor      = color.RGBA{R: 255, G: 110, B: 90, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
// Up and Down select a control, Left and Right adjust it.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	controls *ControlSet
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, controls: NewControlSet(sim)}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes parameter values and handles keyboard input.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if provider, ok := h.sim.(parameterProvider); ok {
		h.controls.Refresh(provider.Parameters())
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		h.controls.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		h.controls.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		h.controls.Adjust(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		h.controls.Adjust(1)
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	text.Draw(h.panel, h.sim.Name()+" controls", face, panelPadding, y, titleColor)
	y += lineHeight
	text.Draw(h.panel, h.status(), face, panelPadding, y, h.statusColor())
	y += lineHeight * (headerLines - 1)

	if len(h.controls.States) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y, mutedColor)
	}
	for i, state := range h.controls.States {
		col := labelColor
		marker := "  "
		if i == h.controls.Selected {
			col = selectedColor
			marker = "> "
		}
		text.Draw(h.panel, marker+state.Control.Label, face, panelPadding, y, col)
		bounds := text.BoundString(face, state.Value)
		text.Draw(h.panel, state.Value, face, h.width-panelPadding-bounds.Dx(), y, col)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) status() string {
	state := "running"
	if p, ok := h.sim.(core.Pausable); ok && p.Paused() {
		state = "paused"
	}
	if c, ok := h.sim.(tickCounter); ok {
		return fmt.Sprintf("tick %d  %s", c.TickCount(), state)
	}
	return state
}

func (h *HUD) statusColor() color.Color {
	if p, ok := h.sim.(core.Pausable); ok && p.Paused() {
		return alertColor
	}
	return mutedColor
}
