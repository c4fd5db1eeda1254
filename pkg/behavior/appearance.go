package behavior

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

const (
	highlightStep = 0.1
	baseGlow      = 0.3
	speedGlow     = 0.7
)

// Palette holds the two emissive colors a boid blends between.
type Palette struct {
	Base      colorful.Color
	Highlight colorful.Color
}

// DefaultPalette is cyan at rest, hot pink under the pointer.
func DefaultPalette() Palette {
	base, _ := colorful.MakeColor(colornames.Deepskyblue)
	highlight, _ := colorful.MakeColor(colornames.Hotpink)
	return Palette{Base: base, Highlight: highlight}
}

// Visual is what a renderer needs to draw one boid. It is derived from the
// physics state after each step and never feeds back into it.
type Visual struct {
	Heading   geometry.Vector3D // unit vector, +X when the boid is still
	Emissive  colorful.Color
	Intensity float64 // 0.3 at rest, 1 at MaxSpeed
	highlight float64 // blend weight toward Palette.Highlight, eased per tick
}

// RGBA returns the emissive color scaled by intensity, ready for drawing.
func (v Visual) RGBA() color.RGBA {
	c := colorful.Color{
		R: v.Emissive.R * v.Intensity,
		G: v.Emissive.G * v.Intensity,
		B: v.Emissive.B * v.Intensity,
	}.Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// NextVisual eases prev toward the look that matches b: the emissive color
// moves a tenth of the way toward the highlight while the boid is near the
// pointer and back toward the base otherwise; glow follows speed.
func NextVisual(prev Visual, b Boid, s Settings, p Palette) Visual {
	h := prev.highlight
	if b.NearPointer {
		h += (1 - h) * highlightStep
	} else {
		h -= h * highlightStep
	}

	speed := b.Velocity.Len()
	ratio := 0.0
	if s.MaxSpeed > 0 {
		ratio = min(speed/s.MaxSpeed, 1)
	}

	heading := b.Velocity.Normalize()
	if heading.IsZero() {
		heading = geometry.Vector3D{X: 1}
	}

	return Visual{
		Heading:   heading,
		Emissive:  p.Base.BlendLab(p.Highlight, h).Clamped(),
		Intensity: baseGlow + ratio*speedGlow,
		highlight: h,
	}
}

// Presenter keeps one Visual per boid across ticks.
type Presenter struct {
	Palette Palette
	visuals []Visual
}

// NewPresenter creates a presenter for n boids.
func NewPresenter(n int, p Palette) *Presenter {
	return &Presenter{Palette: p, visuals: make([]Visual, n)}
}

// Update derives this tick's visuals from the flock and returns them.
// The returned slice is owned by the presenter and is rewritten next call.
func (pr *Presenter) Update(flock []Boid, s Settings) []Visual {
	if len(pr.visuals) != len(flock) {
		pr.visuals = make([]Visual, len(flock))
	}
	for i := range flock {
		pr.visuals[i] = NextVisual(pr.visuals[i], flock[i], s, pr.Palette)
	}
	return pr.visuals
}
