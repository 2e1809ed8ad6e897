package universe

import "time"

//Universe is the simulation as seen by the viewers and the control surface
type Universe interface {
	Status() Status
	Options() Options
	Board() Board
	StateCh() chan Status
	AddTemplate(tmpl Template) error
	Templates() []Template
	SettleTemplate(name string) error
	SettleWithRandomData(density float64)
	SetColor(row int, col int, color Color)
	RegisterViewer(v Viewer)
	Start()
	Pause()
	Tick()
	Clear()
	Close()
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Options represents the Universe's configurable options
type Options struct {
	Interval       time.Duration
	MaxGenerations int
	Evaluation     string
	Seed           int64 //random seed, 0 means time based
}

//RunningMode is the state of the generation clock
type RunningMode int

const (
	ModeStopped RunningMode = iota
	ModeRunning
	ModePaused
)

var modeNames = [...]string{"stopped", "running", "paused"}

func (m RunningMode) String() string {
	return modeNames[m]
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningMode
	LiveCells     int
	Births        int
	Deaths        int
	IterationTime time.Duration
}

//default options
const (
	DefInterval       = 500 * time.Millisecond
	DefMaxGenerations = 0
)

var DefaultOptions = Options{
	Interval:       DefInterval,
	MaxGenerations: DefMaxGenerations,
	Evaluation:     DefEvaluation,
}
