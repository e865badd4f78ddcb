// arena_views renders running arenas as SVG: the room's walls, the agent's
// recent trajectory, and the current object landscape. Frame is the
// view-model; its fields are precomputed to be directly usable as template
// parameters, which keeps the templates free of arithmetic func-maps.
package arena_views

import (
	"fmt"
	"strings"

	"neuroarena/arena"
	"neuroarena/simulation"
)

// pxPerUnit scales room coordinates to SVG pixels.
const pxPerUnit = 40.0

// Frame is the view-model one snapshot converts to: everything in SVG pixel
// coordinates with a top-left origin (y flipped from room coordinates).
type Frame struct {
	Width, Height int
	Walls         []WallSeg
	// Path is the polyline points attribute for the trajectory tail.
	Path  string
	Agent Point
	Cells []ObjectCell
	// CellSide is the pixel size of one grid cell.
	CellSide int
	Episode  int
	Step     int
}

type WallSeg struct {
	X1, Y1, X2, Y2 int
}

type Point struct {
	X, Y float64
}

// ObjectCell is one discrete state's rectangle, colored by object identity.
type ObjectCell struct {
	Index      int
	X, Y, W, H int
	Fill       string
}

// Convert maps a simulation snapshot to a Frame.
func Convert(snap simulation.Snapshot) Frame {
	cfg := snap.Config
	toPx := func(p arena.Vec2) Point {
		return Point{
			X: (p.X - cfg.XLimits[0]) * pxPerUnit,
			Y: (cfg.YLimits[1] - p.Y) * pxPerUnit, // flip y for svg
		}
	}

	frame := Frame{
		Width:   int(cfg.RoomWidth() * pxPerUnit),
		Height:  int(cfg.RoomDepth() * pxPerUnit),
		Agent:   toPx(snap.Position),
		Episode: snap.Episode,
		Step:    snap.Step,
	}

	for _, w := range snap.Walls {
		from, to := toPx(w.From), toPx(w.To)
		frame.Walls = append(frame.Walls, WallSeg{
			X1: int(from.X), Y1: int(from.Y),
			X2: int(to.X), Y2: int(to.Y),
		})
	}

	frame.Path = pathPoints(snap.History, toPx)
	frame.Cells, frame.CellSide = objectCells(snap, toPx)
	return frame
}

// pathPoints renders the trajectory tail as an svg polyline points attribute.
func pathPoints(history []arena.Transition, toPx func(arena.Vec2) Point) string {
	if len(history) == 0 {
		return ""
	}
	var sb strings.Builder
	write := func(p Point) {
		fmt.Fprintf(&sb, "%.1f,%.1f ", p.X, p.Y)
	}
	write(toPx(history[0].State.Position))
	for _, tr := range history {
		write(toPx(tr.NextState.Position))
	}
	return strings.TrimSpace(sb.String())
}

func objectCells(snap simulation.Snapshot, toPx func(arena.Vec2) Point) ([]ObjectCell, int) {
	grid := snap.Grid
	if grid == nil || grid.Len() == 0 || len(snap.Objects) == 0 {
		return nil, 0
	}

	side := int(snap.Config.RoomWidth() / float64(grid.ResW) * pxPerUnit)
	cells := make([]ObjectCell, grid.Len())
	for i := range cells {
		center := toPx(grid.Center(i))
		cells[i] = ObjectCell{
			Index: i,
			X:     int(center.X) - side/2,
			Y:     int(center.Y) - side/2,
			W:     side,
			H:     side,
			Fill:  objectFill(arena.ObjectID(snap.Objects[i])),
		}
	}
	return cells, side
}

// objectFill spreads object identities around the hue wheel; the prime
// stride keeps adjacent ids visually distinct.
func objectFill(id int) string {
	if id < 0 {
		return "white"
	}
	return fmt.Sprintf("hsl(%d, 60%%, 75%%)", (id*137)%360)
}
