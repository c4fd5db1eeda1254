package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a bool in place.
type Checkbox struct {
	Label   string
	Target  *bool
	X, Y    float64
	Size    float64
	clicked bool // Track if already clicked this frame
}

// NewCheckbox creates a checkbox bound to target.
func NewCheckbox(x, y float64, label string, target *bool) *Checkbox {
	return &Checkbox{
		Label:  label,
		Target: target,
		X:      x,
		Y:      y,
		Size:   14,
	}
}

// Text is the label shown next to the box.
func (c *Checkbox) Text() string {
	return c.Label
}

// Update checks for mouse interaction
func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.press(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// press toggles once per click (debounced until the button is released).
func (c *Checkbox) press(x, y float64, down bool) {
	isOver := x >= c.X && x <= c.X+c.Size && y >= c.Y && y <= c.Y+c.Size
	if isOver && down {
		if !c.clicked {
			*c.Target = !*c.Target
			c.clicked = true
		}
		return
	}
	c.clicked = false
}

// Draw renders the checkbox
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if *c.Target {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 255, G: 105, B: 180, A: 255},
			true)
	}
}
