package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits a float64 in place: dragging writes straight into Target,
// so the owner of the value never has to poll the widget.
type Slider struct {
	Label    string
	Target   *float64
	Min, Max float64
	X, Y     float64
	W, H     float64
	Format   string // fmt verb for the value shown next to the label
}

// NewSlider creates a slider bound to target.
func NewSlider(x, y, w float64, label string, min, max float64, target *float64) *Slider {
	return &Slider{
		Label:  label,
		Target: target,
		Min:    min,
		Max:    max,
		X:      x,
		Y:      y,
		W:      w,
		H:      12,
		Format: "%.3g",
	}
}

// Value returns the bound value.
func (s *Slider) Value() float64 {
	return *s.Target
}

// Text is the label with the current value.
func (s *Slider) Text() string {
	return fmt.Sprintf("%s: "+s.Format, s.Label, *s.Target)
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || !s.contains(float64(mx), float64(my)) {
		return
	}
	s.SetFromPosition(float64(mx))
}

// SetFromPosition maps a horizontal screen coordinate to a value, clamped to [Min, Max].
func (s *Slider) SetFromPosition(x float64) {
	p := (x - s.X) / s.W
	p = min(max(p, 0), 1)
	*s.Target = s.Min + p*(s.Max-s.Min)
}

func (s *Slider) contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = min(max((*s.Target-s.Min)/(s.Max-s.Min), 0), 1)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 0, G: 191, B: 255, A: 255}, true)
}
