package universe

import (
	"math/rand"
	"sync"
	"time"
)

//Options represents the Simulation's configurable options
type Options struct {
	Width    uint32
	Height   uint32
	Interval time.Duration
	MaxSteps int   //0 means no limit
	Seed     int64 //seed for random settling, 0 picks one from the clock
}

//Status represents the status of the Simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     uint
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(s *Simulation)
	Start()
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var DefaultOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
}

//Simulation owns a Universe and drives it
//every command is executed by the single main loop goroutine, so the Universe never sees concurrent calls
//viewers read the published snapshot returned by Area
type Simulation struct {
	universe *Universe
	rnd      *rand.Rand
	state    struct {
		Status
		options Options
		runs    int //incremented on each run, a run cycle exits once it is outdated
		sync.Mutex
	}
	area struct {
		CellView
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	quit      chan struct{}
	closeOnce sync.Once
}

//NewSimulation creates the Simulation with an empty universe and starts its main loop
//stateCh may be nil, otherwise every running mode switch is written to it
func NewSimulation(o *Options, stateCh chan Status) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := Simulation{
		universe:  New(o.Width, o.Height, nil),
		rnd:       rand.New(rand.NewSource(seed)),
		stateCh:   stateCh,
		templates: map[string]Template{},
		controlCh: make(chan func(), 16),
		quit:      make(chan struct{}),
	}
	s.state.options = *o
	for _, t := range BuiltinTemplates {
		s.templates[t.Name] = t
	}
	s.publish()
	go s.mainLoop()
	return &s
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	s.enqueue(func() {
		s.templates[tmpl.Name] = tmpl
	})
}

//Settle brings the cells at the coordinates alive, coordinates outside the universe are skipped
func (s *Simulation) Settle(coords []Coord) {
	s.enqueue(func() {
		s.settle(coords)
	})
}

//SettleTemplate populates the universe with the seeding template, unknown names are ignored
func (s *Simulation) SettleTemplate(name string) {
	s.enqueue(func() {
		tmpl, ok := s.templates[name]
		if !ok {
			return
		}
		s.settle(tmpl.Coordinates)
	})
}

//SettleWithRandomData clears the universe and populates it with random data
//does nothing while the simulation is running
func (s *Simulation) SettleWithRandomData() {
	s.enqueue(func() {
		mode := s.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		s.clear()
		s.universe.Randomize(s.rnd)
		s.publish()
		s.refreshView()
	})
}

//ToggleCell inverses the cell state at row, col, coordinates outside the universe are ignored
func (s *Simulation) ToggleCell(row uint32, col uint32) {
	s.enqueue(func() {
		if row >= s.universe.Height() || col >= s.universe.Width() {
			return
		}
		s.universe.ToggleCell(row, col)
		s.publish()
		s.refreshView()
	})
}

//Resize changes the universe dimensions, all cells die and the counters are reset
func (s *Simulation) Resize(width uint32, height uint32) {
	s.enqueue(func() {
		s.universe.SetWidth(width)
		s.universe.SetHeight(height)
		s.state.Lock()
		s.state.options.Width = width
		s.state.options.Height = height
		s.state.Unlock()
		s.clear()
	})
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
//the viewer list belongs to the main loop, so the viewer starts receiving refreshes after the commands already queued
func (s *Simulation) RegisterViewer(v Viewer) {
	v.Register(s)
	s.enqueue(func() {
		s.views = append(s.views, v)
	})
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.options
}

//Area returns the snapshot of the universe published after the last command
func (s *Simulation) Area() CellView {
	s.area.Lock()
	defer s.area.Unlock()
	return s.area.CellView
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.enqueue(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.enqueue(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.enqueue(s.step)
}

//Clear kills all cells and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.enqueue(s.clear)
}

//Close stops the main loop, commands sent afterwards are dropped
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.quit:
			return
		}
	}
}

//enqueue hands the command to the main loop, returns false if the simulation is closed
func (s *Simulation) enqueue(cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.quit:
		return false
	}
}

func (s *Simulation) settle(coords []Coord) {
	w, h := s.universe.Width(), s.universe.Height()
	for _, c := range coords {
		if c.Row >= h || c.Col >= w {
			continue
		}
		s.universe.SetCellAlive(c.Row, c.Col)
	}
	s.publish()
	s.refreshView()
}

//publish stores a detached copy of the current generation for the viewers
func (s *Simulation) publish() {
	snapshot := s.universe.Cells().clone()
	s.area.Lock()
	s.area.CellView = snapshot
	s.area.Unlock()
	s.state.Lock()
	s.state.LiveCells = snapshot.LiveCount()
	s.state.Unlock()
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.notify(s.setRunningMode(to))
}

func (s *Simulation) setRunningMode(to RunningState) Status {
	s.state.Lock()
	defer s.state.Unlock()
	s.state.RunningMode = to
	return s.state.Status
}

func (s *Simulation) notify(st Status) {
	if s.stateCh == nil {
		return
	}
	select {
	case s.stateCh <- st:
	case <-s.quit:
	}
}

//run starts the simulation cycle
//the cycle will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if s.Status().RunningMode == RunningStateRun {
		return
	}
	s.state.Lock()
	s.state.runs++
	run := s.state.runs
	s.state.Unlock()
	s.switchRunningState(RunningStateRun)
	interval := s.Options().Interval
	go func() {
		done := make(chan struct{}, 1)
		for s.running(run) {
			ok := s.enqueue(func() {
				//a Stop may have been executed since the check above
				if s.running(run) {
					s.step()
				}
				done <- struct{}{}
			})
			if !ok {
				return
			}
			select {
			case <-done:
			case <-s.quit:
				return
			}
			if interval > 0 {
				select {
				case <-time.After(interval):
				case <-s.quit:
					return
				}
			}
		}
	}()
}

//running reports whether the run cycle started as run is still the active one
func (s *Simulation) running(run int) bool {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.runs == run && s.state.RunningMode == RunningStateRun
}

func (s *Simulation) stop() {
	if s.Status().RunningMode == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step calculates the next generation
//the simulation is finished when MaxSteps is reached, or the generation is empty or unchanged
func (s *Simulation) step() {
	finished := false
	st := s.Status()
	rm := st.RunningMode
	maxIter := s.Options().MaxSteps
	defer func() {
		mode := rm
		if finished {
			mode = RunningStateFinished
		}
		//viewers see the outcome before the status channel does
		st := s.setRunningMode(mode)
		s.refreshView()
		s.notify(st)
	}()

	if maxIter != 0 && st.IterationNum >= maxIter {
		finished = true
		return
	}
	s.switchRunningState(RunningStateStep)

	start := time.Now()
	prev := s.universe.Cells()
	s.universe.Tick()
	next := s.universe.Cells()
	elapsed := time.Since(start)

	s.state.Lock()
	s.state.IterationNum++
	s.state.IterationTime = elapsed
	iter := s.state.IterationNum
	s.state.Unlock()
	s.publish()

	if next.LiveCount() == 0 || next.Equal(prev) || (maxIter != 0 && iter >= maxIter) {
		finished = true
	}
}

//clear kills every cell, reset all counters
func (s *Simulation) clear() {
	s.universe.SetCellsDeadAll()
	s.state.Lock()
	s.state.IterationNum = 0
	s.state.IterationTime = 0
	s.state.Unlock()
	s.publish()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
