package arena

// StateGrid discretizes a rectangular room into a lattice of cell centers.
// Resolution per axis is floor(density * dimension); the lattice spans the
// room with x ascending and y descending, so index 0 is the top-left cell
// when displayed with a top-left origin. Centers are enumerated row-major
// over (y, x): index = yi*resW + xi. Built once, read-only afterward.
type StateGrid struct {
	ResW, ResD int
	centers    []Vec2
}

// NewStateGrid lays out the cell centers for a room of the given physical
// size at the given state density (cells per unit length). A zero-size room
// or density < 1/dimension yields a degenerate empty grid; the failure then
// surfaces downstream on Locate/Center, which is acceptable for a research
// simulation (limits are trusted inputs).
func NewStateGrid(roomWidth, roomDepth, density float64) *StateGrid {
	resW := int(density * roomWidth)
	resD := int(density * roomDepth)

	xs := linspace(-roomWidth/2, roomWidth/2, resW)
	ys := linspace(roomDepth/2, -roomDepth/2, resD)

	centers := make([]Vec2, 0, resW*resD)
	for _, y := range ys {
		for _, x := range xs {
			centers = append(centers, Vec2{x, y})
		}
	}

	return &StateGrid{
		ResW:    resW,
		ResD:    resD,
		centers: centers,
	}
}

// Len is the number of discrete states, resW*resD.
func (g *StateGrid) Len() int {
	return len(g.centers)
}

// Center returns the cell center of the given state index.
func (g *StateGrid) Center(i int) Vec2 {
	return g.centers[i]
}

// Locate maps a continuous position to its discrete state: the index of the
// nearest cell center by squared Euclidean distance. The full grid is scanned
// (no spatial index is worth it at this scale); ties resolve to the first
// minimum in enumeration order, which keeps the mapping deterministic for
// fixed float inputs. Returns -1 for a degenerate empty grid.
func (g *StateGrid) Locate(pos Vec2) int {
	best := -1
	bestDist := 0.0
	for i, c := range g.centers {
		d := pos.SquaredDistance(c)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// linspace returns n evenly spaced values from start to stop inclusive.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	return vals
}
