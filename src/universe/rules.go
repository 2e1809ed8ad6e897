package universe

//Outcome is what happened to a cell during one evaluation
type Outcome int

const (
	Unchanged Outcome = iota
	Survived
	Born
	Died
)

var outcomeNames = [...]string{"unchanged", "survived", "born", "died"}

func (o Outcome) String() string {
	return outcomeNames[o]
}

//NextState applies the transition rule to one cell:
// fewer than 2 or more than 3 live neighbors - the cell dies
// 2 or 3 live neighbors and alive            - the cell survives and ages
// exactly 3 live neighbors and dead          - the cell is born with the combined color
//A dead cell with 2 live neighbors stays dead.
func NextState(c Cell, n *Neighborhood) (Cell, Outcome) {
	live := n.LiveCount()
	switch {
	case live < 2 || live > 3:
		if !c.Alive {
			return c, Unchanged
		}
		c.die()
		return c, Died
	case c.Alive:
		c.ripen()
		return c, Survived
	case live == 3:
		color, ok := CombineColors(n.LiveColors())
		if !ok {
			return c, Unchanged
		}
		c.paint(color)
		c.shade = minShade
		//three parents can combine into White, the child is still-born
		if !c.Alive {
			return c, Unchanged
		}
		return c, Born
	}
	return c, Unchanged
}
