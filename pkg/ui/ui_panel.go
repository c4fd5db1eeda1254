package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	sectionHeight = 25.0
	labelHeight   = 15.0
	titleHeight   = 30.0
	margin        = 10.0
)

// Widget is an interface for all UI widgets
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Text() string
}

func widgetHeight(w Widget) float64 {
	switch w := w.(type) {
	case *Slider:
		return labelHeight + w.H + 8
	case *Checkbox:
		return labelHeight + w.Size + 6
	case *Button:
		return w.Height + 6
	}
	return labelHeight
}

func placeWidget(w Widget, x, y float64) {
	switch w := w.(type) {
	case *Slider:
		w.X, w.Y = x, y+labelHeight
	case *Checkbox:
		w.X, w.Y = x, y+labelHeight
	case *Button:
		w.X, w.Y = x, y
	}
}

// Panel lays widgets out in titled sections and scrolls with the wheel.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []section
	Hidden   bool
}

type section struct {
	title   string
	widgets []Widget
}

// NewPanel creates an empty panel.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section; following widgets are added to it.
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, section{title: title})
}

func (p *Panel) add(w Widget) {
	if len(p.sections) == 0 {
		p.AddSection("")
	}
	last := &p.sections[len(p.sections)-1]
	last.widgets = append(last.widgets, w)
	p.layout()
}

// AddSlider adds a slider bound to target.
func (p *Panel) AddSlider(label string, min, max float64, target *float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*margin, label, min, max, target)
	p.add(s)
	return s
}

// AddCheckbox adds a checkbox bound to target.
func (p *Panel) AddCheckbox(label string, target *bool) *Checkbox {
	c := NewCheckbox(0, 0, label, target)
	p.add(c)
	return c
}

// AddButton adds a full-width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*margin, 18, label, onClick)
	p.add(b)
	return b
}

// layout positions every widget for the current scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, s := range p.sections {
		y += sectionHeight
		for _, w := range s.widgets {
			placeWidget(w, p.X+margin, y)
			y += widgetHeight(w)
		}
	}
}

// contentHeight is the height of everything inside the panel.
func (p *Panel) contentHeight() float64 {
	h := titleHeight
	for _, s := range p.sections {
		h += sectionHeight
		for _, w := range s.widgets {
			h += widgetHeight(w)
		}
	}
	return h
}

// Contains reports whether a screen point is over the panel.
func (p *Panel) Contains(x, y float64) bool {
	if p.Hidden {
		return false
	}
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Scroll moves the content by dy wheel steps, clamped to the content.
func (p *Panel) Scroll(dy float64) {
	p.ScrollOffset -= dy * 20
	maxScroll := max(p.contentHeight()-p.Height+40, 0)
	p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
	p.layout()
}

// Update handles input for all widgets
func (p *Panel) Update() {
	if p.Hidden {
		return
	}
	mx, my := ebiten.CursorPosition()
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains(float64(mx), float64(my)) {
		p.Scroll(dy)
	}
	for _, s := range p.sections {
		for _, w := range s.widgets {
			if p.visible(w) {
				w.Update()
			}
		}
	}
}

func (p *Panel) visible(w Widget) bool {
	var y float64
	switch w := w.(type) {
	case *Slider:
		y = w.Y
	case *Checkbox:
		y = w.Y
	case *Button:
		y = w.Y
	}
	return y >= p.Y+titleHeight && y <= p.Y+p.Height-margin
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, s := range p.sections {
		if y >= p.Y+titleHeight-sectionHeight && y <= p.Y+p.Height {
			vector.FillRect(screen,
				float32(p.X+5), float32(y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, s.title, int(p.X+margin), int(y+3))
		}
		y += sectionHeight

		for _, w := range s.widgets {
			if p.visible(w) {
				if text := w.Text(); text != "" {
					ebitenutil.DebugPrintAt(screen, text, int(p.X+margin), int(y))
				}
				w.Draw(screen)
			}
			y += widgetHeight(w)
		}
	}
}
