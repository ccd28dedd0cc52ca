package runner

import (
	"io"
	"log"
	"sync"
	"time"

	"toruslife/src/universe"
)

//Options represents the Runner's configurable options
type Options struct {
	Interval        time.Duration //pause between the steps in the run mode
	MaxSteps        int           //0 means no limit
	MaxSkippedTicks int
	Density         float64 //probability of a live cell used by Randomize
	Logger          *log.Logger
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Width         uint32
	Height        uint32
}

//The runner status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultOptions = Options{
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Density:         universe.DefDensity,
}

//Runner drives a Universe
//the universe is touched only by the control goroutine, every public method
//sends a command there and returns immediately
type Runner struct {
	u       *universe.Universe
	options Options
	log     *log.Logger
	state   struct {
		Status
		sync.Mutex
	}
	frame struct {
		Frame
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]universe.Template
	controlCh chan func()
	closeCh   chan bool
	//closed when the main loop exits
	done chan struct{}
	//quit of the current run loop, only touched on the control goroutine
	quit chan struct{}
}

//New creates the Runner that owns u and starts its control goroutine
//stateCh may be nil, otherwise every running state change is written to it
func New(u *universe.Universe, o *Options, stateCh chan Status) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := Runner{
		u:         u,
		options:   *o,
		log:       o.Logger,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]universe.Template{},
	}
	if r.log == nil {
		r.log = log.New(io.Discard, "", 0)
	}
	for _, name := range universe.BuiltinTemplateNames() {
		t, _ := universe.BuiltinTemplate(name)
		r.templates[name] = t
	}
	r.updateStatus(0)
	r.publish()
	go r.mainLoop()
	return &r
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (r *Runner) AddTemplate(tmpl universe.Template) {
	r.exec(func() {
		r.templates[tmpl.Name] = tmpl
	})
}

//SettleTemplate populates the universe with the seeding template shifted by dx, dy
func (r *Runner) SettleTemplate(name string, dx int, dy int) {
	r.exec(func() {
		tmpl, ok := r.templates[name]
		if !ok {
			r.log.Printf("unknown template %q", name)
			return
		}
		r.u.Settle(tmpl, dx, dy)
		r.updateStatus(0)
		r.publish()
		r.refreshView()
	})
}

//Randomize refills the universe with random data
//ignored while the simulation is running
func (r *Runner) Randomize() {
	r.exec(func() {
		if mode := r.mode(); mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		r.u.FillRandom(r.options.Density)
		r.updateStatus(0)
		r.publish()
		r.refreshView()
	})
}

//Toggle inverses the cell state at point x, y
func (r *Runner) Toggle(x int, y int) {
	r.exec(func() {
		r.u.Toggle(x, y)
		r.updateStatus(0)
		r.publish()
		r.refreshView()
	})
}

//Resize changes the universe dimensions, the cells in the overlapping region survive
func (r *Runner) Resize(width uint32, height uint32) {
	r.exec(func() {
		r.u.SetSize(width, height)
		r.updateStatus(0)
		r.publish()
		r.refreshView()
	})
}

//RegisterViewer registers the viewer - the runner will call the viewer when the state is changed
//must be called before the simulation is started
func (r *Runner) RegisterViewer(v Viewer) {
	r.views = append(r.views, v)
	v.Register(r)
}

//StateCh returns the channel with the runner's status updates
func (r *Runner) StateCh() chan Status {
	return r.stateCh
}

//Status returns current simulation status represented by Status struct
func (r *Runner) Status() Status {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.Status
}

//Options returns current runner configuration represented by Options struct
func (r *Runner) Options() Options {
	return r.options
}

//Frame returns the latest copy of the universe cells
func (r *Runner) Frame() Frame {
	r.frame.Lock()
	defer r.frame.Unlock()
	return r.frame.Frame
}

//Run starts the simulation, returns immediately
func (r *Runner) Run() {
	r.exec(r.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (r *Runner) Stop() {
	r.exec(r.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (r *Runner) Step() {
	r.exec(r.step)
}

//Clear kills all cells and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (r *Runner) Clear() {
	r.exec(r.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (r *Runner) Close() {
	select {
	case r.closeCh <- true:
	default:
	}
}

//Done returns the channel closed when the main loop exits
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

//exec sends the command to the control goroutine
func (r *Runner) exec(cmd func()) {
	select {
	case r.controlCh <- cmd:
	case <-r.done:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (r *Runner) mainLoop() {
	defer close(r.done)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			r.stop()
			return
		}
	}
}

func (r *Runner) mode() RunningState {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.RunningMode
}

//updateStatus refreshes the counters from the universe
//iterations is added to IterationNum
func (r *Runner) updateStatus(iterations int) {
	r.state.Lock()
	r.state.IterationNum += iterations
	r.state.LiveCells = r.u.LiveCells()
	r.state.Width = r.u.Width()
	r.state.Height = r.u.Height()
	r.state.Unlock()
}

//publish stores the copy of the cells for the viewers
func (r *Runner) publish() {
	f := newFrame(r.u)
	r.frame.Lock()
	r.frame.Frame = f
	r.frame.Unlock()
}

//switchRunningState switch the state of the runner to RunningState
//also writes the new state to the stateCh to signal upper control software
func (r *Runner) switchRunningState(to RunningState) {
	r.state.Lock()
	r.state.RunningMode = to
	st := r.state.Status
	r.state.Unlock()
	if r.stateCh != nil {
		r.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (r *Runner) run() {
	switch r.mode() {
	case RunningStateRun:
		return
	case RunningStateFinished:
		r.log.Printf("run ignored, the simulation is finished")
		return
	}
	r.quit = make(chan struct{})
	r.switchRunningState(RunningStateRun)
	go r.runLoop(r.quit)
}

//endRun releases the current run loop, a new run always gets its own loop
func (r *Runner) endRun() {
	if r.quit != nil {
		close(r.quit)
		r.quit = nil
	}
}

//runLoop schedules the steps until quit is closed
//a tick is skipped when the control goroutine is still busy with the previous command
func (r *Runner) runLoop(quit chan struct{}) {
	skipped := 0
	stepped := make(chan struct{}, 1)
	for {
		select {
		case <-quit:
			return
		case <-r.done:
			return
		default:
		}
		if skipped > r.options.MaxSkippedTicks {
			r.log.Printf("finished: %v ticks in a row were skipped", skipped)
			r.exec(func() {
				select {
				case <-quit:
				default:
					r.endRun()
					r.switchRunningState(RunningStateFinished)
					r.refreshView()
				}
			})
			return
		}
		//quit is only closed on the control goroutine
		cmd := func() {
			select {
			case <-quit:
			default:
				r.step()
			}
			stepped <- struct{}{}
		}
		select {
		case r.controlCh <- cmd:
			skipped = 0
			select {
			case <-stepped:
			case <-r.done:
				return
			}
		case <-quit:
			return
		case <-r.done:
			return
		default:
			skipped++
		}
		if r.options.Interval > 0 {
			select {
			case <-time.After(r.options.Interval):
			case <-quit:
				return
			case <-r.done:
				return
			}
		}
	}
}

//stop stops the running cycle
func (r *Runner) stop() {
	r.endRun()
	if r.mode() == RunningStateRun {
		r.switchRunningState(RunningStateManual)
	}
}

//step does the one generation for the entire universe
//the simulation is finished when MaxSteps is reached, all cells are dead or nothing changed
func (r *Runner) step() {
	rm := r.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	finished := false
	defer func() {
		if finished {
			r.endRun()
			r.switchRunningState(RunningStateFinished)
		} else {
			r.switchRunningState(rm)
		}
		r.refreshView()
	}()

	maxIter := r.options.MaxSteps
	if maxIter != 0 && r.Status().IterationNum >= maxIter {
		finished = true
		return
	}
	r.switchRunningState(RunningStateStep)
	start := time.Now()
	isAlive, changed := r.u.TickChanged()
	elapsed := time.Since(start)

	r.updateStatus(1)
	r.state.Lock()
	r.state.IterationTime = elapsed
	iter := r.state.IterationNum
	r.state.Unlock()
	r.publish()

	switch {
	case !isAlive:
		r.log.Printf("finished at iteration %v: no live cells", iter)
		finished = true
	case !changed:
		r.log.Printf("finished at iteration %v: stable state", iter)
		finished = true
	case maxIter != 0 && iter >= maxIter:
		r.log.Printf("finished: %v steps limit reached", maxIter)
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (r *Runner) clear() {
	r.endRun()
	r.u.Clear()
	r.state.Lock()
	r.state.IterationNum = 0
	r.state.IterationTime = 0
	r.state.Unlock()
	r.updateStatus(0)
	r.publish()
	r.switchRunningState(RunningStateManual)
	r.refreshView()
}

//refreshView calls Refresh event for all registered views
func (r *Runner) refreshView() {
	for _, v := range r.views {
		v.Refresh()
	}
}
