package universe

import "sync"

//Size is the board dimension, rows and columns are numbered 1..Size
const Size = 15

//opacity is kept in tenths so the aging steps are exact
const (
	minShade = 1
	maxShade = 10
)

//Cell is a snapshot of one board position
type Cell struct {
	Row   int
	Col   int
	Color Color
	Alive bool
	shade int
}

//Opacity is the visual age of the cell in [0.1, 1.0]
func (c Cell) Opacity() float64 {
	return float64(c.shade) / 10
}

//paint sets the color and keeps Alive in sync with it
func (c *Cell) paint(color Color) {
	c.Color = color
	c.Alive = !color.IsDead()
}

func (c *Cell) die() {
	c.paint(White)
	c.shade = minShade
}

func (c *Cell) ripen() {
	if c.shade < maxShade {
		c.shade++
	}
}

//Board is a full copy of the grid, indexed [row-1][col-1]
type Board [Size][Size]Cell

//Get returns the cell at row, col or false outside the board
func (b *Board) Get(row int, col int) (Cell, bool) {
	if !inBounds(row, col) {
		return Cell{}, false
	}
	return b[row-1][col-1], true
}

//CellReader is anything cells can be looked up in
type CellReader interface {
	Get(row int, col int) (Cell, bool)
}

//Grid owns the Size x Size cells
type Grid struct {
	sync.Mutex
	cells Board
}

//NewGrid creates the grid with all cells dead
func NewGrid() *Grid {
	g := &Grid{}
	g.reset()
	return g
}

func inBounds(row int, col int) bool {
	return row >= 1 && row <= Size && col >= 1 && col <= Size
}

//Get returns the cell at row, col; the second result is false outside the board
func (g *Grid) Get(row int, col int) (Cell, bool) {
	g.Lock()
	defer g.Unlock()
	return g.cells.Get(row, col)
}

//SetColor is the manual override.
//A dead cell painted with a color comes alive with minimal opacity,
//a live cell keeps its opacity, painting White kills the cell.
//Positions outside the board are ignored.
func (g *Grid) SetColor(row int, col int, color Color) bool {
	if !inBounds(row, col) {
		return false
	}
	g.Lock()
	defer g.Unlock()
	c := &g.cells[row-1][col-1]
	switch {
	case color.IsDead():
		c.die()
	case !c.Alive:
		c.paint(color)
		c.shade = minShade
	default:
		c.paint(color)
	}
	return true
}

//Snapshot copies the whole board
func (g *Grid) Snapshot() Board {
	g.Lock()
	defer g.Unlock()
	return g.cells
}

//Clear kills all cells
func (g *Grid) Clear() {
	g.Lock()
	g.reset()
	g.Unlock()
}

//LiveCells counts the live cells
func (g *Grid) LiveCells() int {
	g.Lock()
	defer g.Unlock()
	n := 0
	g.walk(func(c *Cell) {
		if c.Alive {
			n++
		}
	})
	return n
}

//put stores the evaluated state of a cell
func (g *Grid) put(c Cell) {
	g.Lock()
	g.cells[c.Row-1][c.Col-1] = c
	g.Unlock()
}

func (g *Grid) reset() {
	for y := range g.cells {
		for x := range g.cells[y] {
			c := &g.cells[y][x]
			c.Row, c.Col = y+1, x+1
			c.die()
		}
	}
}

//walk calls cb for each cell in row-major order, the caller holds the lock
func (g *Grid) walk(cb func(c *Cell)) {
	for y := range g.cells {
		for x := range g.cells[y] {
			cb(&g.cells[y][x])
		}
	}
}
