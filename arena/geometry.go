// arena implements a continuous 2D room discretized into a lattice of sensory
// states, the kind of environment used to drive spatial-navigation agents:
// walls bound the room, movement is validated against them, and each discrete
// state carries a one-hot object observation re-randomized per episode.
package arena

import "math"

// Vec2 is a 2D point or displacement in room coordinates.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// SquaredDistance avoids the sqrt for nearest-neighbor scans.
func (v Vec2) SquaredDistance(o Vec2) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// Wall is an immutable line segment the agent cannot cross.
type Wall struct {
	From, To Vec2
}

// BoundaryWalls returns the four walls enclosing the rectangle spanned by
// the x and y limits, in left/right/bottom/top order. The order matters only
// in that it fixes the scan order of movement validation.
func BoundaryWalls(xlim, ylim [2]float64) []Wall {
	return []Wall{
		{From: Vec2{xlim[0], ylim[0]}, To: Vec2{xlim[0], ylim[1]}}, // left
		{From: Vec2{xlim[1], ylim[0]}, To: Vec2{xlim[1], ylim[1]}}, // right
		{From: Vec2{xlim[0], ylim[0]}, To: Vec2{xlim[1], ylim[0]}}, // bottom
		{From: Vec2{xlim[0], ylim[1]}, To: Vec2{xlim[1], ylim[1]}}, // top
	}
}
