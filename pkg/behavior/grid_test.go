package behavior

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

func TestGrid_Rebuild(t *testing.T) {
	// Cell size 100: a boid's cell is floor(coordinate / 100) on every axis.
	g := NewGrid(100)
	flock := []Boid{
		{Position: geometry.Vector3D{X: 50, Y: 50, Z: 50}},    // 0,0,0
		{Position: geometry.Vector3D{X: 150, Y: 50, Z: 50}},   // 1,0,0
		{Position: geometry.Vector3D{X: -50, Y: 150, Z: 50}},  // -1,1,0
		{Position: geometry.Vector3D{X: 250, Y: 250, Z: -10}}, // 2,2,-1
	}

	g.Rebuild(flock)

	tests := []struct {
		key  gridKey
		want int
	}{
		{gridKey{0, 0, 0}, 0},
		{gridKey{1, 0, 0}, 1},
		{gridKey{-1, 1, 0}, 2},
		{gridKey{2, 2, -1}, 3},
	}
	for _, tt := range tests {
		if list := g.cells[tt.key]; !slices.Contains(list, tt.want) {
			t.Errorf("Expected boid %d in cell %v, got %v", tt.want, tt.key, list)
		}
	}

	// Ensure no cross-contamination
	if slices.Contains(g.cells[gridKey{0, 0, 0}], 1) {
		t.Error("Did not expect boid 1 in cell 0,0,0")
	}
}

func TestGrid_RebuildReusesCells(t *testing.T) {
	g := NewGrid(10)
	flock := []Boid{{Position: geometry.Vector3D{X: 1}}}
	g.Rebuild(flock)

	flock[0].Position = geometry.Vector3D{X: 55}
	g.Rebuild(flock)

	if got := g.cells[gridKey{0, 0, 0}]; len(got) != 0 {
		t.Errorf("Expected old cell to be emptied, got %v", got)
	}
	if got := g.cells[gridKey{5, 0, 0}]; !slices.Equal(got, []int{0}) {
		t.Errorf("Expected boid 0 in cell 5,0,0, got %v", got)
	}
}

func TestGrid_CellCountStaysBounded(t *testing.T) {
	// smallest radii the panel allows, boids spread over many cells
	g := NewGrid(5)
	if g.CellSize() != minCellSize {
		t.Errorf("CellSize = %v; want clamped to %v", g.CellSize(), minCellSize)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	flock := make([]Boid, 300)
	for tick := 0; tick < 500; tick++ {
		for i := range flock {
			flock[i].Position = geometry.Vector3D{
				X: (rng.Float64()*2 - 1) * 400,
				Y: (rng.Float64()*2 - 1) * 400,
				Z: (rng.Float64()*2 - 1) * 400,
			}
		}
		g.Rebuild(flock)
		if n := len(g.cells); n > 2*len(flock) {
			t.Fatalf("tick %d: %d cells for %d boids", tick, n, len(flock))
		}
	}
}

func TestGrid_Near(t *testing.T) {
	g := NewGrid(100)
	flock := []Boid{
		{Position: geometry.Vector3D{X: 250, Y: 150, Z: 10}},  // far: 2,1,0
		{Position: geometry.Vector3D{X: 50, Y: 50, Z: 10}},    // center 0,0,0
		{Position: geometry.Vector3D{X: -50, Y: -50, Z: -50}}, // neighbour -1,-1,-1
		{Position: geometry.Vector3D{X: 150, Y: 0, Z: 0}},     // neighbour 1,0,0
	}
	g.Rebuild(flock)

	got := g.Near(nil, geometry.Vector3D{X: 50, Y: 50, Z: 10}, 100)
	want := []int{1, 2, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Near = %v; want %v", got, want)
	}
}

func TestGrid_NearAppends(t *testing.T) {
	g := NewGrid(10)
	g.Rebuild([]Boid{{}, {Position: geometry.Vector3D{X: 1}}})

	got := g.Near([]int{99}, geometry.Vector3D{}, 5)
	if !slices.Equal(got, []int{99, 0, 1}) {
		t.Errorf("Near kept prefix badly: %v", got)
	}
}

func BenchmarkGrid_Rebuild(b *testing.B) {
	g := NewGrid(50)
	flock := make([]Boid, 1000)
	for i := range flock {
		flock[i].Position = geometry.Vector3D{X: float64(i % 400), Y: float64(i % 300), Z: float64(i % 7)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(flock)
	}
}

func BenchmarkGrid_Near(b *testing.B) {
	g := NewGrid(50)
	flock := make([]Boid, 1000)
	for i := range flock {
		flock[i].Position = geometry.Vector3D{X: float64(i % 400), Y: float64(i % 300), Z: float64(i % 7)}
	}
	g.Rebuild(flock)
	buf := make([]int, 0, 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.Near(buf[:0], geometry.Vector3D{X: 200, Y: 150}, 50)
	}
}
