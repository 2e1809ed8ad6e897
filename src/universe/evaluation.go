package universe

import (
	"sort"
	"time"
)

//Generation is the result of evaluating every cell once
type Generation struct {
	Births        int
	Deaths        int
	LiveCells     int
	IterationTime time.Duration
}

func (gen *Generation) count(o Outcome, c Cell) {
	switch o {
	case Born:
		gen.Births++
	case Died:
		gen.Deaths++
	}
	if c.Alive {
		gen.LiveCells++
	}
}

//Evaluator advances the grid by one generation
type Evaluator func(g *Grid) Generation

//default evaluation
const DefEvaluation = "inplace"

var evaluators = map[string]Evaluator{
	"inplace":  EvaluateInPlace,
	"buffered": EvaluateBuffered,
}

//Evaluations returns the known evaluation names, sorted
func Evaluations() []string {
	names := make([]string, 0, len(evaluators))
	for k := range evaluators {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//EvaluatorByName returns the evaluator or false if the name is unknown
func EvaluatorByName(name string) (Evaluator, bool) {
	e, ok := evaluators[name]
	return e, ok
}

//EvaluateInPlace walks the grid row by row, left to right, and stores every
//new state immediately, so a cell sees the new states of the cells before it
//(the whole previous row, and its left neighbor).
func EvaluateInPlace(g *Grid) (gen Generation) {
	start := time.Now()
	for row := 1; row <= Size; row++ {
		for col := 1; col <= Size; col++ {
			c, _ := g.Get(row, col)
			n := Neighbors(g, row, col)
			next, o := NextState(c, &n)
			g.put(next)
			gen.count(o, next)
		}
	}
	gen.IterationTime = time.Since(start)
	return
}

//EvaluateBuffered calculates all cells from the board as it was at the start
//of the generation and then replaces the board
func EvaluateBuffered(g *Grid) (gen Generation) {
	start := time.Now()
	g.Lock()
	defer g.Unlock()
	prev := g.cells
	for y := range prev {
		for x := range prev[y] {
			n := Neighbors(&prev, y+1, x+1)
			next, o := NextState(prev[y][x], &n)
			g.cells[y][x] = next
			gen.count(o, next)
		}
	}
	gen.IterationTime = time.Since(start)
	return
}
