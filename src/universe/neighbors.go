package universe

//Direction names one of the eight neighbor slots
type Direction int

//The slots in enumeration order, parent colors are collected in this order
const (
	Left Direction = iota
	TopLeft
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
)

var directionNames = [...]string{"left", "topLeft", "top", "topRight", "right", "bottomRight", "bottom", "bottomLeft"}

//row, col offsets per direction
var offsets = [...][2]int{
	Left:        {0, -1},
	TopLeft:     {-1, -1},
	Top:         {-1, 0},
	TopRight:    {-1, 1},
	Right:       {0, 1},
	BottomRight: {1, 1},
	Bottom:      {1, 0},
	BottomLeft:  {1, -1},
}

func (d Direction) String() string {
	return directionNames[d]
}

//Neighbor is one resolved slot, Found is false outside the board
type Neighbor struct {
	Cell
	Found bool
}

//Neighborhood holds the eight slots indexed by Direction
type Neighborhood [8]Neighbor

//Neighbors resolves the eight slots around row, col
func Neighbors(r CellReader, row int, col int) (n Neighborhood) {
	for d, o := range offsets {
		n[d].Cell, n[d].Found = r.Get(row+o[0], col+o[1])
	}
	return
}

//At returns the cell in direction d, false when there is no cell there
func (n *Neighborhood) At(d Direction) (Cell, bool) {
	return n[d].Cell, n[d].Found
}

//LiveCount counts the slots holding a live cell
func (n *Neighborhood) LiveCount() int {
	count := 0
	for i := range n {
		if n[i].Found && n[i].Alive {
			count++
		}
	}
	return count
}

//LiveColors collects the live colors in enumeration order
func (n *Neighborhood) LiveColors() []Color {
	colors := make([]Color, 0, len(n))
	for i := range n {
		if n[i].Found && n[i].Alive {
			colors = append(colors, n[i].Color)
		}
	}
	return colors
}
