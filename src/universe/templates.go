package universe

import (
	"math/rand"

	"github.com/pkg/errors"
)

//ErrUnknownTemplate is returned by SettleTemplate for a name never added
var ErrUnknownTemplate = errors.New("unknown template")

//Seed is a single painted cell of a template
type Seed struct {
	Row   int
	Col   int
	Color Color
}

//Template represent the seeding template which can used to settle the board with predefined data
type Template struct {
	Name  string
	Descr string
	Seeds []Seed
}

//Validate checks that all seeds are on the board and alive
func (t Template) Validate() error {
	for _, s := range t.Seeds {
		if !inBounds(s.Row, s.Col) {
			return errors.Errorf("[Template] %s: seed %d,%d is outside the board", t.Name, s.Row, s.Col)
		}
		if s.Color.IsDead() {
			return errors.Errorf("[Template] %s: seed %d,%d is white", t.Name, s.Row, s.Col)
		}
	}
	return nil
}

var (
	red   = MustParseColor("#ff0000")
	green = MustParseColor("#00ff00")
	blue  = MustParseColor("#0000ff")
)

//BuiltinTemplates are added to every simulation
var BuiltinTemplates = []Template{
	{
		Name:  "triad",
		Descr: "red, green and blue parents around 8,8 (their child is white)",
		Seeds: []Seed{{8, 7, red}, {7, 8, green}, {8, 9, blue}},
	},
	{
		Name:  "blinker",
		Descr: "horizontal period 2 oscillator",
		Seeds: []Seed{{8, 7, red}, {8, 8, MustParseColor("#3366cc")}, {8, 9, MustParseColor("#33cc66")}},
	},
	{
		Name:  "glider",
		Descr: "a glider heading to the bottom right",
		Seeds: []Seed{
			{2, 3, MustParseColor("#e6194b")},
			{3, 4, MustParseColor("#3cb44b")},
			{4, 2, MustParseColor("#4363d8")},
			{4, 3, MustParseColor("#f58231")},
			{4, 4, MustParseColor("#911eb4")},
		},
	},
}

//randomColor never returns White
func randomColor(rnd *rand.Rand) Color {
	for {
		c := Color{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))}
		if !c.IsDead() {
			return c
		}
	}
}
