package behavior

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

func TestNextVisual_Highlight(t *testing.T) {
	s := DefaultSettings()
	p := DefaultPalette()
	near := Boid{NearPointer: true}

	v := Visual{}
	for i := 0; i < 100; i++ {
		v = NextVisual(v, near, s, p)
	}
	if d := v.Emissive.DistanceLab(p.Highlight); d > 0.01 {
		t.Errorf("Expected emissive close to highlight after many ticks, distance %v", d)
	}

	far := Boid{}
	for i := 0; i < 100; i++ {
		v = NextVisual(v, far, s, p)
	}
	if d := v.Emissive.DistanceLab(p.Base); d > 0.01 {
		t.Errorf("Expected emissive back to base, distance %v", d)
	}
}

func TestNextVisual_EasesOneStep(t *testing.T) {
	s := DefaultSettings()
	p := DefaultPalette()

	v := NextVisual(Visual{}, Boid{NearPointer: true}, s, p)
	if math.Abs(v.highlight-highlightStep) > tolerance {
		t.Errorf("highlight after one tick = %v; want %v", v.highlight, highlightStep)
	}
}

func TestNextVisual_IntensityAndHeading(t *testing.T) {
	s := DefaultSettings()
	p := DefaultPalette()

	tests := []struct {
		name          string
		velocity      geometry.Vector3D
		wantIntensity float64
		wantHeading   geometry.Vector3D
	}{
		{"At rest", geometry.Zero, baseGlow, geometry.Vector3D{X: 1}},
		{"Half speed", geometry.Vector3D{Y: s.MaxSpeed / 2}, baseGlow + speedGlow/2, geometry.Vector3D{Y: 1}},
		{"Full speed", geometry.Vector3D{Z: -s.MaxSpeed}, 1, geometry.Vector3D{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NextVisual(Visual{}, Boid{Velocity: tt.velocity}, s, p)
			if math.Abs(v.Intensity-tt.wantIntensity) > tolerance {
				t.Errorf("Intensity = %v; want %v", v.Intensity, tt.wantIntensity)
			}
			if !v.Heading.Eq(tt.wantHeading) {
				t.Errorf("Heading = %v; want %v", v.Heading, tt.wantHeading)
			}
		})
	}
}

func TestPresenter_Update(t *testing.T) {
	s := DefaultSettings()
	pr := NewPresenter(2, DefaultPalette())
	flock := []Boid{{NearPointer: true}, {}}

	visuals := pr.Update(flock, s)
	if len(visuals) != 2 {
		t.Fatalf("got %d visuals; want 2", len(visuals))
	}
	if visuals[0].highlight <= visuals[1].highlight {
		t.Errorf("boid near the pointer should be more highlighted: %v vs %v", visuals[0].highlight, visuals[1].highlight)
	}

	// resizing follows the flock
	if got := pr.Update(append(flock, Boid{}), s); len(got) != 3 {
		t.Errorf("got %d visuals after growth; want 3", len(got))
	}
}

func TestVisual_RGBA(t *testing.T) {
	v := Visual{Emissive: DefaultPalette().Base, Intensity: 1}
	c := v.RGBA()
	if c.A != 255 {
		t.Errorf("alpha = %d; want 255", c.A)
	}
	dim := Visual{Emissive: DefaultPalette().Base, Intensity: 0.3}.RGBA()
	if dim.B >= c.B {
		t.Errorf("dim glow %v should be darker than full glow %v", dim, c)
	}
}
