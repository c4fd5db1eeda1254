package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

func TestCamera_ProjectUnprojectRoundTrip(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	tests := []struct {
		name   string
		sx, sy float64
	}{
		{"Centre", cam.Width / 2, cam.Height / 2},
		{"Top left", 0, 0},
		{"Bottom right", cam.Width, cam.Height},
		{"Off centre", 123, 456},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := cam.Unproject(tt.sx, tt.sy, 0)
			if !ok {
				t.Fatal("Unproject onto z=0 failed")
			}
			x, y, _, ok := cam.Project(p)
			if !ok {
				t.Fatal("Project failed")
			}
			if math.Abs(x-tt.sx) > 1e-6 || math.Abs(y-tt.sy) > 1e-6 {
				t.Errorf("round trip (%v, %v) -> %v -> (%v, %v)", tt.sx, tt.sy, p, x, y)
			}
		})
	}
}

func TestCamera_Orientation(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	x, y, _, _ := cam.Project(geometry.Vector3D{X: 10, Y: 10})
	if x <= cam.Width/2 || y >= cam.Height/2 {
		t.Errorf("+X+Y should land right of and above the centre, got (%v, %v)", x, y)
	}

	_, _, near, _ := cam.Project(geometry.Vector3D{Z: 100})
	_, _, far, _ := cam.Project(geometry.Vector3D{Z: -100})
	if near <= far {
		t.Errorf("closer points should be drawn larger: near %v, far %v", near, far)
	}
}

func TestCamera_BehindCamera(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	if _, _, _, ok := cam.Project(geometry.Vector3D{Z: cam.Distance + 1}); ok {
		t.Error("a point behind the camera must not project")
	}
	if _, ok := cam.Unproject(0, 0, cam.Distance); ok {
		t.Error("the pointer plane cannot contain the eye")
	}
}
