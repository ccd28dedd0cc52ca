package runner

import "toruslife/src/universe"

//Controller is the surface the viewers use to read and drive the simulation
//*Runner implements it
type Controller interface {
	Status() Status
	Options() Options
	Frame() Frame
	StateCh() chan Status
	AddTemplate(tmpl universe.Template)
	SettleTemplate(name string, dx int, dy int)
	Randomize()
	Toggle(x int, y int)
	Resize(width uint32, height uint32)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the runner
type Viewer interface {
	Refresh()
	Register(c Controller)
	Start() error
}

var _ Controller = (*Runner)(nil)
