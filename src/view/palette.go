package view

import "colorlife/src/universe"

//brushes are the colors offered for painting cells by hand
var brushes = []universe.Color{
	universe.MustParseColor("#ff0000"),
	universe.MustParseColor("#00ff00"),
	universe.MustParseColor("#0000ff"),
	universe.MustParseColor("#ffff00"),
	universe.MustParseColor("#ff00ff"),
	universe.MustParseColor("#00ffff"),
}

//Index256 maps a color to the nearest entry of the xterm 256 color cube:
//index = 16 + 36*r + 6*g + b with r, g, b in [0,5]
func Index256(c universe.Color) uint8 {
	level := func(v uint8) uint8 {
		return uint8((int(v)*5 + 127) / 255)
	}
	return 16 + 36*level(c.R) + 6*level(c.G) + level(c.B)
}

//glyph draws the opacity of a live cell as block density
func glyph(opacity float64) string {
	switch {
	case opacity < 0.4:
		return "▒▒"
	case opacity < 0.7:
		return "▓▓"
	}
	return "██"
}
