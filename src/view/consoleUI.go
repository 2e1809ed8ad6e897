package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"colorlife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal board,
//cells are painted with the mouse using the selected brush
type ConsoleUI struct {
	u          universe.Universe
	g          *gocui.Gui
	k          []keyBindings
	brush      universe.Color
	density    float64
	deadFiller string
}

var (
	runningModeDescr = map[universe.RunningMode]string{
		universe.ModeStopped: aurora.Colorize("stopped", aurora.BlueFg).String(),
		universe.ModeRunning: aurora.Colorize("running", aurora.CyanFg).String(),
		universe.ModePaused:  aurora.Colorize("paused", aurora.RedFg).String(),
	}
)

const (
	boardView   = "board"
	cellWidth   = 2
	leftColumn  = 28
	boardTop    = 3
	boardWidth  = universe.Size*cellWidth + 1
	boardHeight = universe.Size + 1
)

//NewViewTerminal creates the terminal UI, density is used by the random settle command
func NewViewTerminal(density float64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		brush:      brushes[0],
		density:    density,
		deadFiller: "░░",
	}

	t.g, err = gocui.NewGui(gocui.Output256)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'r', "R", "Start", t.cmdStart, ""},
		{'p', "P", "Pause", t.cmdPause, ""},
		{'n', "N", "Next generation", t.cmdTick, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'x', "X", "Eraser", t.cmdBrush(universe.White), ""},
		{gocui.MouseLeft, "MOUSE", "Paint the cell", t.cmdMouseClick, boardView},
	}
	for i, b := range brushes {
		kb := keyBindings{rune('1' + i), "", "", t.cmdBrush(b), ""}
		if i == 0 {
			kb.name = fmt.Sprintf("1-%d", len(brushes))
			kb.descr = "Brush"
		}
		t.k = append(t.k, kb)
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderBoard(t.u.Board())
	t.renderStatus()
}

//renderCell draws one cell, its color and age
func (t *ConsoleUI) renderCell(c universe.Cell) string {
	if !c.Alive {
		return t.deadFiller
	}
	return aurora.Index(Index256(c.Color), glyph(c.Opacity())).String()
}

func (t *ConsoleUI) renderBoard(b universe.Board) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(boardView)
		if e != nil {
			//not laid out yet, the layout renders it
			return nil
		}
		v.Clear()

		var buf bytes.Buffer
		for i, row := range b {
			//line feed char
			if i != 0 {
				buf.WriteByte(10)
			}
			for _, c := range row {
				buf.WriteString(t.renderCell(c))
			}
		}
		_, _ = fmt.Fprint(v, buf.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Births", "%v", s.Births))
			_, _ = fmt.Fprintln(v, t.renderProp("Deaths", "%v", s.Deaths))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningModeDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Brush", "%v", t.renderBrush(t.brush)))
		}
		return nil
	})
}

func (t *ConsoleUI) renderBrush(c universe.Color) string {
	if c.IsDead() {
		return "eraser"
	}
	return aurora.Index(Index256(c), "██").String() + " " + c.String()
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", universe.Size, universe.Size))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation", "%v", c.Evaluation))
			if c.MaxGenerations > 0 {
				_, _ = fmt.Fprintln(v, t.renderProp("Generations", "%v max", c.MaxGenerations))
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	minWindowHeight := boardTop + boardHeight + 3
	minWindowWidth := leftColumn + boardWidth + 2

	if maxY < minWindowHeight || maxX < minWindowWidth {
		if _, err := t.headerLayout(g, maxY, "Terminal too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView(boardView)
		_ = g.DeleteView("help")
		return nil
	}
	if _, err := t.headerLayout(g, boardTop, "Color Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	middle := boardTop + (maxY-5-boardTop)/2
	if v, err := g.SetView("configuration", 0, boardTop, leftColumn, middle); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, middle+1, leftColumn, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	x0 := leftColumn + 1
	if v, err := g.SetView(boardView, x0, boardTop, x0+boardWidth, boardTop+boardHeight); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Board"
		v.Frame = true
		t.renderBoard(t.u.Board())
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		first := true
		for _, k := range t.k {
			if k.name == "" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

//cellAt converts the view cursor to board coordinates
func cellAt(cx int, cy int) (row int, col int) {
	return cy + 1, cx/cellWidth + 1
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdTick(_ *gocui.View) error {
	t.u.Tick()
	return nil
}

func (t *ConsoleUI) cmdStart(_ *gocui.View) error {
	t.u.Start()
	return nil
}

func (t *ConsoleUI) cmdPause(_ *gocui.View) error {
	t.u.Pause()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData(t.density)
	return nil
}

func (t *ConsoleUI) cmdBrush(c universe.Color) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		t.brush = c
		t.renderStatus()
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	row, col := cellAt(v.Cursor())
	t.u.SetColor(row, col, t.brush)
	return nil
}
