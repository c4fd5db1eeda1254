// Package shape turns a text string into the home positions the flock assembles into.
package shape

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	// ErrEmptyText is returned when there is nothing to draw.
	ErrEmptyText = errors.New("shape: empty text")
	// ErrEmptyShape is returned when the rasterised text has no lit pixel.
	ErrEmptyShape = errors.New("shape: text produced no pixels")
)

// Options tunes how glyph pixels become world points.
type Options struct {
	Scale     float64 // world units per glyph pixel
	Stride    int     // sample one pixel every Stride in x and y
	Depth     float64 // half-thickness of the random z jitter
	Jitter    float64 // xy jitter applied to padded duplicates
	Threshold uint8   // minimum alpha counted as lit
	Seed      uint64
	// MaxExtent bounds every coordinate to ±MaxExtent; wider text is scaled
	// down uniformly. 0 disables the limit.
	MaxExtent float64
}

// DefaultOptions gives readable text about 500 world units wide for a short word.
func DefaultOptions() Options {
	return Options{
		Scale:     10,
		Stride:    1,
		Depth:     5,
		Jitter:    2,
		Threshold: 128,
		Seed:      1,
		MaxExtent: 360,
	}
}

// TextTargets samples exactly n points from text rasterised with the basic
// 7x13 bitmap face. The points are centred on the origin, Y up, in reading
// order (top row first, left to right), so consecutive boids get neighbouring
// targets. When the glyphs have fewer lit pixels than n the samples are
// reused with a small jitter; when they have more, they are evenly thinned.
func TextTargets(text string, n int, opts Options) ([]geometry.Vector3D, error) {
	if n <= 0 {
		return nil, fmt.Errorf("shape: need a positive point count, got %d", n)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if opts.Stride < 1 {
		opts.Stride = 1
	}

	img := Rasterize(text)
	pixels := litPixels(img, opts.Stride, opts.Threshold)
	if len(pixels) == 0 {
		return nil, ErrEmptyShape
	}

	b := img.Bounds()
	cx := float64(b.Min.X+b.Max.X) / 2
	cy := float64(b.Min.Y+b.Max.Y) / 2
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(n)))

	scale := opts.Scale
	if opts.MaxExtent > 0 {
		// room for the padding jitter, then shrink to the widest pixel
		room := math.Max(opts.MaxExtent-opts.Jitter, 0)
		var half float64
		for _, p := range pixels {
			half = math.Max(half, math.Max(math.Abs(float64(p.X)-cx), math.Abs(cy-float64(p.Y))))
		}
		if half*scale > room && half > 0 {
			scale = room / half
		}
	}

	base := make([]geometry.Vector3D, len(pixels))
	for i, p := range pixels {
		base[i] = geometry.Vector3D{
			X: (float64(p.X) - cx) * scale,
			Y: (cy - float64(p.Y)) * scale,
			Z: (rng.Float64()*2 - 1) * opts.Depth,
		}
	}
	out := fit(base, n, opts.Jitter, rng)
	if opts.MaxExtent > 0 {
		for i := range out {
			out[i] = clampCube(out[i], opts.MaxExtent)
		}
	}
	return out, nil
}

func clampCube(v geometry.Vector3D, bound float64) geometry.Vector3D {
	return geometry.Vector3D{
		X: math.Max(-bound, math.Min(bound, v.X)),
		Y: math.Max(-bound, math.Min(bound, v.Y)),
		Z: math.Max(-bound, math.Min(bound, v.Z)),
	}
}

// Rasterize draws text, one line per '\n', into an alpha mask.
func Rasterize(text string) *image.Alpha {
	face := basicfont.Face7x13
	lines := strings.Split(text, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	img := image.NewAlpha(image.Rect(0, 0, max(width, 1), lineHeight*len(lines)))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
	}
	for i, l := range lines {
		// centre each line horizontally
		w := font.MeasureString(face, l).Ceil()
		d.Dot = fixed.P((width-w)/2, i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(l)
	}
	return img
}

func litPixels(img *image.Alpha, stride int, threshold uint8) []image.Point {
	var out []image.Point
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			if img.AlphaAt(x, y).A >= threshold {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// fit returns exactly n points out of base, preserving base order.
func fit(base []geometry.Vector3D, n int, jitter float64, rng *rand.Rand) []geometry.Vector3D {
	out := make([]geometry.Vector3D, n)
	if len(base) >= n {
		step := float64(len(base)) / float64(n)
		for i := range out {
			out[i] = base[int(float64(i)*step)]
		}
		return out
	}
	copy(out, base)
	for i := len(base); i < n; i++ {
		p := base[i%len(base)]
		out[i] = p.Add(geometry.Vector3D{
			X: (rng.Float64()*2 - 1) * jitter,
			Y: (rng.Float64()*2 - 1) * jitter,
		})
	}
	return out
}
