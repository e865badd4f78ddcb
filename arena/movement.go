package arena

// wallCloseness is the pull-back factor applied when a movement crosses a
// wall: the corrected position lands just behind the starting point along
// the reversed movement direction, leaving the agent strictly on its own
// side of the wall.
const wallCloseness = 1e-5

// CheckWallCrossing tests whether the straight-line movement from pre to next
// crosses the wall segment, solving the 2x2 system
//
//	wall.From + u*(wall.To-wall.From) = pre + s*(next-pre)
//
// for the intersection parameters u (along the wall) and s (along the
// movement). Both in [0,1] means the segments intersect. On crossing the
// returned position is pre - wallCloseness*(next-pre) and crossed is true;
// otherwise next is returned unchanged. Parallel or degenerate segments
// (singular system) never count as crossings, so sliding exactly along a
// wall is allowed.
func CheckWallCrossing(pre, next Vec2, wall Wall) (corrected Vec2, crossed bool) {
	d := wall.To.Sub(wall.From) // wall direction
	m := next.Sub(pre)          // movement
	b := pre.Sub(wall.From)

	det := m.X*d.Y - d.X*m.Y
	if det == 0 {
		return next, false
	}

	// Positive form so NaN parameters (malformed inputs) fail the crossing
	// test and propagate silently downstream.
	u := (m.X*b.Y - b.X*m.Y) / det
	s := (d.X*b.Y - d.Y*b.X) / det
	if u >= 0 && u <= 1 && s >= 0 && s <= 1 {
		return pre.Sub(m.Scale(wallCloseness)), true
	}

	return next, false
}

// ValidateMove checks a proposed movement against every wall in list order,
// ORing the crossed flags. Each detected crossing replaces the running target
// with its corrected position before the remaining walls are checked, so
// corrections compose sequentially: the first crossed wall (in list order)
// effectively wins, since its pull-back leaves essentially no movement for
// later walls to intersect. Crossing two walls in one step (a corner cut)
// therefore corrects against whichever wall appears first in the list.
func ValidateMove(walls []Wall, pre, next Vec2) (Vec2, bool) {
	anyCrossed := false
	for _, w := range walls {
		var crossed bool
		next, crossed = CheckWallCrossing(pre, next, w)
		anyCrossed = anyCrossed || crossed
	}
	return next, anyCrossed
}
