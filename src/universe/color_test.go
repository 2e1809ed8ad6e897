package universe

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestColor(t *testing.T) {
	Convey("ParseColor", t, func() {
		Convey("accepts #rrggbb in any case", func() {
			c, err := ParseColor("#12AbEf")
			So(err, ShouldBeNil)
			So(c, ShouldResemble, Color{0x12, 0xab, 0xef})
			So(c.String(), ShouldEqual, "#12abef")
		})

		Convey("rejects other forms", func() {
			for _, s := range []string{"", "white", "#fff", "123456", "#12345g", "#1234567", "#+12345"} {
				_, err := ParseColor(s)
				So(errors.Cause(err), ShouldEqual, ErrInvalidColor)
			}
		})

		Convey("white is the only dead color", func() {
			So(MustParseColor("#ffffff").IsDead(), ShouldBeTrue)
			So(MustParseColor("#fffffe").IsDead(), ShouldBeFalse)
			So(Color{}.IsDead(), ShouldBeFalse)
		})
	})

	Convey("CombineColors", t, func() {
		parents := []Color{MustParseColor("#123456"), MustParseColor("#abcdef"), MustParseColor("#fedcba")}

		Convey("takes red, green and blue from the first, second and third parent", func() {
			c, ok := CombineColors(parents)
			So(ok, ShouldBeTrue)
			So(c.String(), ShouldEqual, "#12cdba")
		})

		Convey("refuses anything but three parents", func() {
			_, ok := CombineColors(parents[:2])
			So(ok, ShouldBeFalse)
			_, ok = CombineColors(nil)
			So(ok, ShouldBeFalse)
			_, ok = CombineColors(append(parents, White))
			So(ok, ShouldBeFalse)
		})
	})
}
