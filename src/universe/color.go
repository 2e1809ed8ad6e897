package universe

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

//ErrInvalidColor is returned when a color string is not in #rrggbb form
var ErrInvalidColor = errors.New("invalid color")

//Color is the RGB color of a cell, White means the cell is dead
type Color struct {
	R uint8
	G uint8
	B uint8
}

//White is the color of a dead cell
var White = Color{0xff, 0xff, 0xff}

//ParseColor parses the "#rrggbb" form used by color pickers
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, errors.Wrapf(ErrInvalidColor, "[ParseColor] %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(ErrInvalidColor, "[ParseColor] %q", s)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

//MustParseColor is ParseColor for literals, panics on error
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

//IsDead reports whether the color marks a dead cell
func (c Color) IsDead() bool {
	return c == White
}

//CombineColors builds the child color from exactly three parents:
//red from the first, green from the second, blue from the third.
//Any other number of parents is refused.
func CombineColors(parents []Color) (Color, bool) {
	if len(parents) != 3 {
		return Color{}, false
	}
	return Color{parents[0].R, parents[1].G, parents[2].B}, true
}
