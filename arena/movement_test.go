package arena

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMovementValidation(t *testing.T) {
	walls := BoundaryWalls([2]float64{-5, 5}, [2]float64{-5, 5})

	Convey("Given a [-5,5]x[-5,5] room", t, func() {
		Convey("A move to (6,0) is corrected back inside and flagged", func() {
			corrected, crossed := ValidateMove(walls, Vec2{0, 0}, Vec2{6, 0})
			So(crossed, ShouldBeTrue)
			So(corrected.X, ShouldBeLessThanOrEqualTo, 5)
			// The correction pulls back just behind the start position.
			So(corrected.X, ShouldAlmostEqual, -6e-5, 1e-9)
			So(corrected.Y, ShouldEqual, 0)
		})

		Convey("A move fully inside the room is untouched", func() {
			corrected, crossed := ValidateMove(walls, Vec2{0, 0}, Vec2{1, 1})
			So(crossed, ShouldBeFalse)
			So(corrected, ShouldResemble, Vec2{1, 1})
		})

		Convey("Movement exactly along a wall does not count as crossing", func() {
			// Parallel segments make the system singular.
			corrected, crossed := ValidateMove(walls, Vec2{-5, -1}, Vec2{-5, 1})
			So(crossed, ShouldBeFalse)
			So(corrected, ShouldResemble, Vec2{-5, 1})
		})

		Convey("A corner cut crossing two walls corrects against the first in list order", func() {
			corrected, crossed := ValidateMove(walls, Vec2{4, 4}, Vec2{6, 6})
			So(crossed, ShouldBeTrue)
			// The corrected position sits just behind the start, inside the room.
			So(corrected.X, ShouldBeLessThan, 5)
			So(corrected.Y, ShouldBeLessThan, 5)
			So(corrected.X, ShouldAlmostEqual, 4, 1e-3)
			So(corrected.Y, ShouldAlmostEqual, 4, 1e-3)
		})

		Convey("Each boundary wall corrects its own side", func() {
			cases := []struct {
				name string
				next Vec2
			}{
				{"left", Vec2{-6, 0}},
				{"right", Vec2{6, 0}},
				{"bottom", Vec2{0, -6}},
				{"top", Vec2{0, 6}},
			}
			for _, tc := range cases {
				corrected, crossed := ValidateMove(walls, Vec2{0, 0}, tc.next)
				So(crossed, ShouldBeTrue)
				So(corrected.Norm(), ShouldBeLessThan, 1e-3)
			}
		})
	})

	Convey("Given a custom interior wall", t, func() {
		interior := append(walls, Wall{From: Vec2{0, -5}, To: Vec2{0, 5}})

		Convey("Crossing it is detected and corrected", func() {
			corrected, crossed := ValidateMove(interior, Vec2{-1, 0}, Vec2{1, 0})
			So(crossed, ShouldBeTrue)
			So(corrected.X, ShouldBeLessThan, 0)
		})

		Convey("Moves on one side of it pass", func() {
			_, crossed := ValidateMove(interior, Vec2{-2, 0}, Vec2{-1, 1})
			So(crossed, ShouldBeFalse)
		})
	})
}
