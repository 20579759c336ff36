// Package hud draws simple 2D widgets with raylib's immediate-mode drawing:
// a segmented health bar and a text label panel. Widgets are plain value
// configs drawn every frame; there is no retained widget tree.
package hud

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"strata/internal/vmath"
)

const (
	panelPadding  = 8
	panelFontSize = 18
	panelLineGap  = 4
)

// HealthBar is a horizontal fill bar. Fraction outside [0,1] is clamped at
// draw time so gameplay code can pass raw ratios.
type HealthBar struct {
	X, Y, Width, Height int32
	Fraction            float32
	Back                rl.Color
	Fill                rl.Color
	Border              rl.Color
}

// NewHealthBar returns a bar with the default red-on-dark palette.
func NewHealthBar(x, y, width, height int32) *HealthBar {
	return &HealthBar{
		X: x, Y: y, Width: width, Height: height,
		Fraction: 1,
		Back:     rl.NewColor(30, 30, 36, 220),
		Fill:     rl.NewColor(205, 60, 60, 255),
		Border:   rl.NewColor(90, 90, 100, 255),
	}
}

// Draw renders the bar. The fill shifts toward yellow as health drops below
// half so low health reads at a glance.
func (b *HealthBar) Draw() {
	frac := vmath.Clamp01(b.Fraction)

	rl.DrawRectangle(b.X, b.Y, b.Width, b.Height, b.Back)
	fillW := int32(float32(b.Width) * frac)
	if fillW > 0 {
		fill := b.Fill
		if frac < 0.5 {
			fill = rl.NewColor(215, 160, 50, 255)
		}
		rl.DrawRectangle(b.X, b.Y, fillW, b.Height, fill)
	}
	rl.DrawRectangleLines(b.X, b.Y, b.Width, b.Height, b.Border)
}

// Panel is a stack of text lines on a translucent backdrop, anchored at its
// top-left corner. Lines are replaced wholesale each frame by the caller.
type Panel struct {
	X, Y  int32
	Lines []string
	Back  rl.Color
	Text  rl.Color
}

// NewPanel returns an empty panel at the given corner.
func NewPanel(x, y int32) *Panel {
	return &Panel{
		X: x, Y: y,
		Back: rl.NewColor(20, 22, 28, 200),
		Text: rl.RayWhite,
	}
}

// SetLines replaces the panel contents.
func (p *Panel) SetLines(lines ...string) {
	p.Lines = lines
}

// Draw renders the backdrop sized to the widest line, then the lines.
// An empty panel draws nothing.
func (p *Panel) Draw() {
	if len(p.Lines) == 0 {
		return
	}

	var widest int32
	for _, line := range p.Lines {
		if w := rl.MeasureText(line, panelFontSize); w > widest {
			widest = w
		}
	}
	lineH := int32(panelFontSize + panelLineGap)
	height := lineH*int32(len(p.Lines)) - panelLineGap + 2*panelPadding

	rl.DrawRectangle(p.X, p.Y, widest+2*panelPadding, height, p.Back)
	y := p.Y + panelPadding
	for _, line := range p.Lines {
		rl.DrawText(line, p.X+panelPadding, y, panelFontSize, p.Text)
		y += lineH
	}
}
