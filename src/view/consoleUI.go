package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"toruslife/src/runner"
)

//binding ties a key to a command, an empty view means the global binding
type binding struct {
	key  interface{}
	view string
	name string
	does string
	cmd  func(v *gocui.View) error
}

//ConsoleUI is the interactive terminal viewer
type ConsoleUI struct {
	r          runner.Controller
	g          *gocui.Gui
	k          []binding
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[runner.RunningState]string{
		runner.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		runner.RunningStateStep:     "do the step",
		runner.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		runner.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal initializes the terminal and the key bindings
func NewViewTerminal() (*ConsoleUI, error) {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewViewTerminal] failed to init the terminal")
	}

	t.g.Mouse = true
	t.k = []binding{
		{key: gocui.KeyCtrlC, name: "^C", does: "Exit", cmd: t.cmdQuit},
		{key: 'n', name: "N", does: "Next step", cmd: t.cmdNextRound},
		{key: 'r', name: "R", does: "Run", cmd: t.cmdRun},
		{key: 's', name: "S", does: "Stop", cmd: t.cmdStop},
		{key: 'c', name: "C", does: "Clear", cmd: t.cmdClear},
		{key: 'w', name: "W", does: "Settle with random", cmd: t.cmdSettleWithRandom},
		{key: gocui.MouseLeft, view: "field", name: "MOUSE", does: "Toggle the cell", cmd: t.cmdMouseClick},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []binding) error {
	for _, b := range k {
		cmd := b.cmd
		if err := t.g.SetKeybinding(b.view, b.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return cmd(v) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] failed to bind %v", b.name)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(r runner.Controller) {
	t.r = r
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] terminal main loop failed")
	}
	return nil
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.r.Frame())
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField(f runner.Frame) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("field")
		if e != nil {
			return nil
		}
		//the entire field is redrawing at once
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, drawField(f, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

//drawField renders the frame cropped to the view size
func drawField(f runner.Frame, maxW int, maxH int, liveFiller string, deadFiller string) string {
	crop := int(f.Width) > maxW || int(f.Height) > maxH

	var b bytes.Buffer
	for i := 0; i < int(f.Height); i++ {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range f.Row(i) {
			if j >= maxW {
				break
			}
			if e.IsAlive() {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus() {
	s := t.r.Status()
	t.writeView("status", []prop{
		{"Generation", s.IterationNum},
		{"Live Cells", s.LiveCells},
		{"Evaluation time", s.IterationTime.Round(time.Microsecond)},
		{"Mode", runningStateDescr[s.RunningMode]},
	})
}

func (t *ConsoleUI) renderConfiguration() {
	s := t.r.Status()
	c := t.r.Options()
	t.writeView("configuration", []prop{
		{"Dimension", fmt.Sprintf("%v x %v", s.Width, s.Height)},
		{"Interval", c.Interval},
		{"Iterations", fmt.Sprintf("%v steps", c.MaxSteps)},
		{"Density", c.Density},
	})
}

//prop is the single "name: value" line of the side panels
type prop struct {
	name  string
	value interface{}
}

func (p prop) String() string {
	return " " + aurora.Green(p.name).String() + ": " + fmt.Sprint(p.value)
}

//writeView replaces the content of the named view, it is safe to call from any goroutine
func (t *ConsoleUI) writeView(name string, props []prop) {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(name)
		if e != nil {
			//the view is not laid out yet, the layout renders it
			return nil
		}
		v.Clear()
		for _, p := range props {
			_, _ = fmt.Fprintln(v, p)
		}
		return nil
	})
}

//rect is the view corners in the terminal coordinates, as gocui.SetView takes them
type rect struct {
	x0, y0, x1, y1 int
}

//panels is the screen arrangement for a grid
//the field box hugs the grid and the side column gets the rest of the width
type panels struct {
	fits          bool
	header        rect
	field         rect
	configuration rect
	status        rect
	help          rect
}

const (
	headerRows    = 3
	helpRows      = 2
	sideMinWidth  = 26
	panelMinRows  = 14
	fieldMinWidth = 4
)

//arrange places the views on a maxX x maxY terminal for a width x height grid
//a grid larger than the free space is cropped by the field box
func arrange(maxX int, maxY int, width uint32, height uint32) panels {
	p := panels{header: rect{-1, -1, maxX + 1, headerRows}}
	if maxY < panelMinRows || maxX < sideMinWidth+fieldMinWidth+2 {
		p.header.y1 = maxY
		return p
	}
	p.fits = true
	top := headerRows
	bottom := maxY - helpRows - 1

	//+2 for the frame lines
	fieldW := minInt(int(width)+2, maxX-sideMinWidth-1)
	if fieldW < fieldMinWidth {
		fieldW = fieldMinWidth
	}
	fieldH := minInt(int(height)+2, bottom-top)
	p.field = rect{0, top, fieldW - 1, top + fieldH - 1}

	side := fieldW
	middle := top + (bottom-top)/2
	p.configuration = rect{side, top, maxX - 1, middle}
	p.status = rect{side, middle + 1, maxX - 1, bottom}
	p.help = rect{-1, bottom, maxX, maxY}
	return p
}

func minInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	st := t.r.Status()
	p := arrange(maxX, maxY, st.Width, st.Height)

	if !p.fits {
		for _, name := range []string{"configuration", "status", "field", "help"} {
			_ = g.DeleteView(name)
		}
		return t.banner(g, p.header, "Terminal is too small")
	}
	if err := t.banner(g, p.header, "Conway's Game of Life on a torus"); err != nil {
		return err
	}

	created, err := setView(g, "configuration", p.configuration)
	if err != nil {
		return err
	}
	if created != nil {
		created.Title = "Configuration"
		t.renderConfiguration()
	}

	if created, err = setView(g, "status", p.status); err != nil {
		return err
	}
	if created != nil {
		created.Title = "Status"
		t.renderStatus()
	}

	if created, err = setView(g, "field", p.field); err != nil {
		return err
	}
	if created != nil {
		created.Title = "Universe"
	}
	t.renderField(t.r.Frame())

	if created, err = setView(g, "help", p.help); err != nil {
		return err
	}
	if created != nil {
		created.Frame = false
		_, _ = fmt.Fprintln(created, t.helpLine())
	}
	return nil
}

//setView places the view at r, the view is returned only when it was just created
func setView(g *gocui.Gui, name string, r rect) (*gocui.View, error) {
	v, err := g.SetView(name, r.x0, r.y0, r.x1, r.y1)
	if err == nil {
		return nil, nil
	}
	if err != gocui.ErrUnknownView || v == nil {
		return nil, errors.Wrapf(err, "[layout] failed to place the %v view", name)
	}
	v.Frame = true
	return v, nil
}

func (t *ConsoleUI) helpLine() string {
	parts := make([]string, 0, len(t.k))
	for _, b := range t.k {
		parts = append(parts, aurora.Green(b.name).String()+": "+b.does)
	}
	return "KEYBINDINGS: " + strings.Join(parts, ", ")
}

//banner draws the header across the whole terminal
func (t *ConsoleUI) banner(g *gocui.Gui, r rect, text string) error {
	v, err := g.SetView("header", r.x0, r.y0, r.x1, r.y1)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return errors.Wrap(err, "[layout] failed to place the header")
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	_, _ = fmt.Fprint(v, centered(text, r.x1-r.x0-1, r.y1-r.y0-1))
	return nil
}

//centered pads text to the middle of a width x height box
func centered(text string, width int, height int) string {
	pad := 0
	if width > len(text) {
		pad = (width - len(text)) / 2
	}
	lines := 0
	if height > 1 {
		lines = (height - 1) / 2
	}
	return strings.Repeat("\n", lines) + strings.Repeat(" ", pad) + text
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.r.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.r.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.r.Randomize()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.r.Toggle(cx, cy)
	return nil
}
