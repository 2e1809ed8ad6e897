package view

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"colorlife/src/universe"
)

func TestPalette(t *testing.T) {
	Convey("Index256 maps to the color cube", t, func() {
		So(Index256(universe.MustParseColor("#000000")), ShouldEqual, 16)
		So(Index256(universe.MustParseColor("#ff0000")), ShouldEqual, 196)
		So(Index256(universe.MustParseColor("#00ff00")), ShouldEqual, 46)
		So(Index256(universe.MustParseColor("#0000ff")), ShouldEqual, 21)
		So(Index256(universe.White), ShouldEqual, 231)
	})

	Convey("older cells are drawn denser", t, func() {
		So(glyph(0.1), ShouldEqual, "▒▒")
		So(glyph(0.5), ShouldEqual, "▓▓")
		So(glyph(1.0), ShouldEqual, "██")
	})
}
