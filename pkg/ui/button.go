package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	buttonIdle  = color.RGBA{R: 40, G: 60, B: 90, A: 255}
	buttonHover = color.RGBA{R: 60, G: 95, B: 140, A: 255}
	buttonLit   = color.RGBA{R: 190, G: 60, B: 130, A: 255}
	buttonEdge  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Button fires OnClick once per press. When Lit is set and reports true
// the button is drawn highlighted, e.g. while the mode it triggers is on.
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	OnClick func()
	Lit     func() bool

	held bool // pressed since the last release
}

func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{Label: label, X: x, Y: y, Width: width, Height: height, OnClick: onClick}
}

// Text is empty: a button prints its own label.
func (b *Button) Text() string {
	return ""
}

func (b *Button) over(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.press(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (b *Button) press(x, y float64, down bool) {
	if !down || !b.over(x, y) {
		b.held = false
		return
	}
	if !b.held && b.OnClick != nil {
		b.OnClick()
	}
	b.held = true
}

func (b *Button) fill(hover bool) color.RGBA {
	switch {
	case b.Lit != nil && b.Lit():
		return buttonLit
	case hover:
		return buttonHover
	}
	return buttonIdle
}

func (b *Button) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height)

	vector.FillRect(screen, x, y, w, h, b.fill(b.over(float64(mx), float64(my))), true)
	vector.StrokeRect(screen, x, y, w, h, 1, buttonEdge, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+6), int(b.Y+2))
}
