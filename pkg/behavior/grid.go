package behavior

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

// minCellSize keeps tiny radii from splitting space into millions of cells.
const minCellSize = 10

type gridKey struct {
	x, y, z int
}

// Grid is a uniform spatial hash over boid indices.
// Map gridKey -> indices of the boids in that cell.
type Grid struct {
	cellSize float64
	cells    map[gridKey][]int
}

// NewGrid creates an empty grid, cell size clamped to minCellSize.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: math.Max(cellSize, minCellSize),
		cells:    make(map[gridKey][]int),
	}
}

// CellSize returns the edge length of one cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// SetCellSize changes the cell edge; the next Rebuild uses it.
func (g *Grid) SetCellSize(cellSize float64) {
	cellSize = math.Max(cellSize, minCellSize)
	if cellSize != g.cellSize {
		g.cellSize = cellSize
		clear(g.cells)
	}
}

func (g *Grid) key(p geometry.Vector3D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
		z: int(math.Floor(p.Z / g.cellSize)),
	}
}

// Rebuild re-buckets every boid.
//
// Cells keep their capacity for one rebuild after they empty, then are
// dropped, so the map never holds more than the cells occupied over the
// last two ticks.
func (g *Grid) Rebuild(flock []Boid) {
	for k, ids := range g.cells {
		if len(ids) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = ids[:0]
	}
	for i := range flock {
		k := g.key(flock[i].Position)
		g.cells[k] = append(g.cells[k], i)
	}
}

// Near appends to dst the indices of every boid whose cell intersects the
// cube of half-size radius around p, sorted ascending so callers visit
// candidates in the same order as a full scan would.
func (g *Grid) Near(dst []int, p geometry.Vector3D, radius float64) []int {
	lo := g.key(p.Sub(geometry.Vector3D{X: radius, Y: radius, Z: radius}))
	hi := g.key(p.Add(geometry.Vector3D{X: radius, Y: radius, Z: radius}))

	start := len(dst)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for z := lo.z; z <= hi.z; z++ {
				if ids, ok := g.cells[gridKey{x, y, z}]; ok {
					dst = append(dst, ids...)
				}
			}
		}
	}
	slices.Sort(dst[start:])
	return dst
}
