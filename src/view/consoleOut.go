package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"colorlife/src/universe"
)

//ConsoleOut prints the progress of a headless simulation
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	startTime time.Time
	lastMode  universe.RunningMode
}

func NewConsoleOut() *ConsoleOut {
	return &ConsoleOut{out: os.Stdout}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	defer func() { c.lastMode = st.RunningMode }()
	if st.RunningMode == universe.ModePaused && c.lastMode != universe.ModePaused {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.out, "\nPaused:")
		c.printHashData(resultData)
	} else if st.RunningMode == universe.ModeRunning {
		if st.Generation > 0 && st.Generation%10 == 0 {
			fmt.Fprintf(c.out, "  Generations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":       fmt.Sprintf("%v x %v", universe.Size, universe.Size),
		"Interval":        o.Interval,
		"Max generations": o.MaxGenerations,
		"Evaluation":      o.Evaluation,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
