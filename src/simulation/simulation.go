package simulation

import (
	"sync"
	"time"

	"gameoflife/src/pattern"
	"gameoflife/src/universe"
)

//Options represents the Simulation's configurable options
type Options struct {
	Engine          string
	Rows            int
	Cols            int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
}

//Status represents the status of the Simulation at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
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
	DefRows               = 15
	DefCols               = 40
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultOptions = Options{
	Engine:          universe.EngineSet,
	Rows:            DefRows,
	Cols:            DefCols,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//Simulation drives a universe engine: it owns the control loop goroutine that serializes
//every command, the engine itself is only touched under the lock
type Simulation struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	u struct {
		universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	doneCh    chan struct{} //closed when the main loop exits
	workers   sync.WaitGroup
}

//New creates the Simulation with an empty universe and starts its control loop
//stateCh may be nil, otherwise it receives every running state switch and must be drained
func New(o Options, stateCh chan Status) (*Simulation, error) {
	u, err := universe.New(o.Engine, o.Rows, o.Cols)
	if err != nil {
		return nil, err
	}
	s := Simulation{
		options:   o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		doneCh:    make(chan struct{}),
		stateCh:   stateCh,
	}
	s.u.Universe = u
	go s.mainLoop()
	return &s, nil
}

//Settle populates the universe with the seed
func (s *Simulation) Settle(seed universe.Seed) {
	s.u.Lock()
	s.u.AddCells(seed)
	live := s.u.CountLiveCells()
	s.u.Unlock()
	s.state.Lock()
	s.state.LiveCells = live
	s.state.Unlock()
	s.refreshView()
}

//InverseCell inverses the cell state at row, col, cells out of range are ignored
func (s *Simulation) InverseCell(row int, col int) {
	s.u.Lock()
	switch s.u.Cell(row, col) {
	case universe.Live:
		s.u.SetCell(row, col, false)
	case universe.Dead:
		s.u.SetCell(row, col, true)
	}
	live := s.u.CountLiveCells()
	s.u.Unlock()
	s.state.Lock()
	s.state.LiveCells = live
	s.state.Unlock()
	s.refreshView()
}

//View calls f with the universe locked, f must not keep the universe
func (s *Simulation) View(f func(u universe.Universe)) {
	s.u.Lock()
	defer s.u.Unlock()
	f(s.u.Universe)
}

//Save writes the live cells to a pattern file
func (s *Simulation) Save(path string, metadata []string) error {
	s.u.Lock()
	cells, err := s.u.LiveCells()
	s.u.Unlock()
	if err != nil {
		return err
	}
	return pattern.Save(path, metadata, cells)
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns the simulation configuration
func (s *Simulation) Options() Options {
	return s.options
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.send(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.send(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.send(s.step)
}

//Clear replaces the universe with an empty one and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.send(s.clear)
}

//Close stops the main loop and the running cycle, returns immediately
//commands sent after Close are dropped
func (s *Simulation) Close() {
	select {
	case s.closeCh <- true:
	case <-s.doneCh:
	}
}

//send passes the command to the main loop unless it is closed
func (s *Simulation) send(cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.doneCh:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	defer close(s.doneCh)
	var c = false
	for !c {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case c = <-s.closeCh:
		}
	}
}

func (s *Simulation) runningMode() RunningState {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.RunningMode
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.publish(s.setRunningState(to))
}

//setRunningState switch the state without signalling, the caller publishes the returned Status
func (s *Simulation) setRunningState(to RunningState) Status {
	s.state.Lock()
	defer s.state.Unlock()
	s.state.RunningMode = to
	return s.state.Status
}

func (s *Simulation) publish(st Status) {
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation cycle
//it stops on Stop() or when a step finishes the simulation
func (s *Simulation) run() {
	if mode := s.runningMode(); mode == RunningStateRun || mode == RunningStateFinished {
		return
	}
	s.switchRunningState(RunningStateRun)
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := s.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > s.options.MaxSkippedTicks {
				s.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the engine is still calculating
			if mode != RunningStateStep {
				skipped = 0
				if !s.send(func() {
					s.step()
					done <- true
				}) {
					return
				}
				select {
				case <-done:
				case <-s.doneCh:
					return
				}
			} else {
				skipped++
			}
			if s.options.Interval > 0 {
				time.Sleep(s.options.Interval)
			}
		}
	}()
}

//stop stops the running cycle
func (s *Simulation) stop() {
	if s.runningMode() == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step calculates the next generation
//the simulation finishes when max steps are reached or no live cells are left
func (s *Simulation) step() {
	rm := s.runningMode()
	if rm == RunningStateFinished {
		return
	}
	if s.reachedMaxSteps() {
		st := s.setRunningState(RunningStateFinished)
		s.refreshView()
		s.publish(st)
		return
	}
	s.switchRunningState(RunningStateStep)

	s.u.Lock()
	start := time.Now()
	live := s.u.Progress()
	elapsed := time.Since(start)
	generation := s.u.Generation()
	s.u.Unlock()

	s.state.Lock()
	s.state.Generation = generation
	s.state.LiveCells = live
	s.state.IterationTime = elapsed
	s.state.Unlock()

	next := rm
	if live == 0 || s.reachedMaxSteps() {
		next = RunningStateFinished
	}
	st := s.setRunningState(next)
	s.refreshView()
	s.publish(st)
}

func (s *Simulation) reachedMaxSteps() bool {
	limit := s.options.MaxSteps
	return limit != 0 && s.Status().Generation >= limit
}

//clear replaces the universe with an empty one, reset all counters
func (s *Simulation) clear() {
	u, err := universe.New(s.options.Engine, s.options.Rows, s.options.Cols)
	if err != nil {
		//the options were validated by New
		panic(err)
	}
	s.u.Lock()
	s.u.Universe = u
	s.u.Unlock()

	s.state.Lock()
	s.state.Status = Status{}
	s.state.Unlock()
	st := s.setRunningState(RunningStateManual)
	s.refreshView()
	s.publish(st)
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
