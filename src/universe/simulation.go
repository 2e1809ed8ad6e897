package universe

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/pkg/errors"
)

//Simulation owns the grid and the generation clock.
//All commands run one by one on the command loop goroutine,
//the exported methods block until their command is done.
type Simulation struct {
	options Options
	grid    *Grid
	state   struct {
		Status
		sync.Mutex
	}
	evaluate  Evaluator
	rnd       *rand.Rand
	stateCh   chan Status
	views     []Viewer
	templates struct {
		byName map[string]Template
		names  []string
	}
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	//cancels the running ticker, nil unless running
	stopTicker context.CancelFunc
	tickers    sync.WaitGroup
}

//NewSimulation creates the simulation in the stopped state with an all dead board.
//stateCh is optional, when set it receives the status on every change.
func NewSimulation(o *Options, stateCh chan Status) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	opts := *o
	if opts.Interval <= 0 {
		opts.Interval = DefInterval
	}
	evaluate, ok := evaluators[opts.Evaluation]
	if !ok {
		opts.Evaluation = DefEvaluation
		evaluate = evaluators[DefEvaluation]
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u := &Simulation{
		options:   opts,
		grid:      NewGrid(),
		evaluate:  evaluate,
		rnd:       rand.New(rand.NewSource(seed)),
		stateCh:   stateCh,
		controlCh: make(chan func()),
		closeCh:   make(chan struct{}),
	}
	u.templates.byName = map[string]Template{}
	for _, t := range BuiltinTemplates {
		u.addTemplate(t)
	}
	go u.mainLoop()
	return u
}

//mainLoop waits for commands and executes them until closed
func (u *Simulation) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//exec runs cmd on the command loop and waits for it,
//returns false if the simulation is closed
func (u *Simulation) exec(cmd func()) bool {
	done := make(chan struct{})
	select {
	case u.controlCh <- func() { cmd(); close(done) }:
	case <-u.closeCh:
		return false
	}
	<-done
	return true
}

//AddTemplate adds the seeding template, a template with the same name is replaced
func (u *Simulation) AddTemplate(tmpl Template) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}
	u.exec(func() { u.addTemplate(tmpl) })
	return nil
}

func (u *Simulation) addTemplate(tmpl Template) {
	if _, ok := u.templates.byName[tmpl.Name]; !ok {
		u.templates.names = append(u.templates.names, tmpl.Name)
	}
	u.templates.byName[tmpl.Name] = tmpl
}

//Templates returns the templates in the order they were added
func (u *Simulation) Templates() (list []Template) {
	u.exec(func() {
		for _, name := range u.templates.names {
			list = append(list, u.templates.byName[name])
		}
	})
	return
}

//SettleTemplate paints the seeds of the template onto the board
func (u *Simulation) SettleTemplate(name string) (err error) {
	u.exec(func() {
		tmpl, ok := u.templates.byName[name]
		if !ok {
			err = errors.Wrapf(ErrUnknownTemplate, "[SettleTemplate] %q", name)
			return
		}
		for _, s := range tmpl.Seeds {
			u.grid.SetColor(s.Row, s.Col, s.Color)
		}
		u.updateLiveCells()
		u.refreshView()
	})
	return
}

//SettleWithRandomData clears the board and paints every cell with a random color
//with the given probability; ignored while running
func (u *Simulation) SettleWithRandomData(density float64) {
	u.exec(func() {
		if u.mode() == ModeRunning {
			return
		}
		u.clear()
		for row := 1; row <= Size; row++ {
			for col := 1; col <= Size; col++ {
				if u.rnd.Float64() < density {
					u.grid.SetColor(row, col, randomColor(u.rnd))
				}
			}
		}
		u.updateLiveCells()
		u.refreshView()
	})
}

//SetColor is the manual override from a display surface
func (u *Simulation) SetColor(row int, col int, color Color) {
	u.exec(func() {
		if !u.grid.SetColor(row, col, color) {
			return
		}
		u.updateLiveCells()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *Simulation) RegisterViewer(v Viewer) {
	v.Register(u)
	u.exec(func() { u.views = append(u.views, v) })
}

//StateCh returns the channel with the universe's status updates
func (u *Simulation) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *Simulation) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns the configuration the simulation runs with
func (u *Simulation) Options() Options {
	return u.options
}

//Board returns a copy of the cells
func (u *Simulation) Board() Board {
	return u.grid.Snapshot()
}

//Start switches Stopped or Paused to Running, the generations advance every Interval
func (u *Simulation) Start() {
	u.exec(func() {
		if u.mode() == ModeRunning || !u.startTicker() {
			return
		}
		u.switchRunningMode(ModeRunning)
		u.refreshView()
	})
}

//Pause switches Running to Paused, otherwise does nothing
func (u *Simulation) Pause() {
	u.exec(func() {
		if u.mode() != ModeRunning {
			return
		}
		u.pause()
		u.refreshView()
	})
}

//Tick advances one generation right now, whatever the mode
func (u *Simulation) Tick() {
	u.exec(u.tick)
}

//Clear kills all cells, resets the generation counter and stops the clock
func (u *Simulation) Clear() {
	u.exec(func() {
		u.clear()
		u.refreshView()
	})
}

//Close stops the clock and the command loop, the simulation can't be used after
func (u *Simulation) Close() {
	u.closeOnce.Do(func() {
		//closing on the command loop orders it after every started ticker
		u.exec(func() {
			u.cancelTicker()
			close(u.closeCh)
		})
		u.tickers.Wait()
	})
}

//startTicker runs the clock goroutine, each tick is sent to the command loop.
//Ticks arriving after the ticker was cancelled are dropped.
//Returns false once the simulation is closed.
func (u *Simulation) startTicker() bool {
	if u.closed() {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.stopTicker = cancel
	u.tickers.Add(1)
	go func() {
		defer u.tickers.Done()
		ticker := channerics.NewTicker(ctx.Done(), u.options.Interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker:
				ok := u.exec(func() {
					if ctx.Err() == nil {
						u.tick()
					}
				})
				if !ok {
					return
				}
			}
		}
	}()
	return true
}

func (u *Simulation) closed() bool {
	select {
	case <-u.closeCh:
		return true
	default:
		return false
	}
}

func (u *Simulation) cancelTicker() {
	if u.stopTicker != nil {
		u.stopTicker()
		u.stopTicker = nil
	}
}

func (u *Simulation) pause() {
	u.cancelTicker()
	u.switchRunningMode(ModePaused)
}

//tick increments the generation counter and evaluates every cell once
func (u *Simulation) tick() {
	gen := u.evaluate(u.grid)

	u.state.Lock()
	u.state.Generation++
	u.state.LiveCells = gen.LiveCells
	u.state.Births = gen.Births
	u.state.Deaths = gen.Deaths
	u.state.IterationTime = gen.IterationTime
	generation := u.state.Generation
	u.state.Unlock()

	if u.options.MaxGenerations > 0 && generation >= u.options.MaxGenerations && u.mode() == ModeRunning {
		log.Printf("generation limit %d reached", u.options.MaxGenerations)
		u.pause()
	} else {
		u.publish()
	}
	u.refreshView()
}

//clear clears the board, resets all counters
func (u *Simulation) clear() {
	u.cancelTicker()
	u.grid.Clear()
	u.state.Lock()
	u.state.Status = Status{RunningMode: ModeStopped}
	u.state.Unlock()
	u.publish()
}

func (u *Simulation) mode() RunningMode {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

func (u *Simulation) updateLiveCells() {
	n := u.grid.LiveCells()
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

//switchRunningMode switch the mode and signals the upper control software
func (u *Simulation) switchRunningMode(to RunningMode) {
	u.state.Lock()
	u.state.RunningMode = to
	u.state.Unlock()
	u.publish()
}

func (u *Simulation) publish() {
	if u.stateCh != nil {
		u.stateCh <- u.Status()
	}
}

//refreshView calls Refresh event for all registered views
func (u *Simulation) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
