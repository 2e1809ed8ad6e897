package universe

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNeighbors(t *testing.T) {
	Convey("Given a grid", t, func() {
		g := NewGrid()

		Convey("slots outside the board are not found", func() {
			n := Neighbors(g, 1, 1)
			for _, d := range []Direction{Left, TopLeft, Top, TopRight, BottomLeft} {
				_, ok := n.At(d)
				So(ok, ShouldBeFalse)
			}
			for _, d := range []Direction{Right, BottomRight, Bottom} {
				_, ok := n.At(d)
				So(ok, ShouldBeTrue)
			}
			So(n.LiveCount(), ShouldEqual, 0)
		})

		Convey("coordinates far outside resolve to nothing", func() {
			n := Neighbors(g, -10, 40)
			for d := Left; d <= BottomLeft; d++ {
				_, ok := n.At(d)
				So(ok, ShouldBeFalse)
			}
			So(n.LiveCount(), ShouldEqual, 0)
			So(n.LiveColors(), ShouldBeEmpty)
		})

		Convey("each direction points at the right cell", func() {
			n := Neighbors(g, 5, 5)
			want := map[Direction][2]int{
				Left: {5, 4}, TopLeft: {4, 4}, Top: {4, 5}, TopRight: {4, 6},
				Right: {5, 6}, BottomRight: {6, 6}, Bottom: {6, 5}, BottomLeft: {6, 4},
			}
			for d, rc := range want {
				c, ok := n.At(d)
				So(ok, ShouldBeTrue)
				So([2]int{c.Row, c.Col}, ShouldResemble, rc)
			}
		})

		Convey("live colors come in enumeration order, not spatial order", func() {
			g.SetColor(6, 4, MustParseColor("#000001")) //bottomLeft
			g.SetColor(4, 5, MustParseColor("#000002")) //top
			g.SetColor(5, 4, MustParseColor("#000003")) //left
			g.SetColor(6, 6, MustParseColor("#000004")) //bottomRight
			n := Neighbors(g, 5, 5)
			So(n.LiveCount(), ShouldEqual, 4)
			So(n.LiveColors(), ShouldResemble, []Color{{0, 0, 3}, {0, 0, 2}, {0, 0, 4}, {0, 0, 1}})

			Convey("and the same grid gives the same neighborhood", func() {
				So(Neighbors(g, 5, 5), ShouldResemble, n)
			})
		})
	})
}
