package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"toruslife/src/runner"
)

//ConsoleOut is the non interactive viewer, it prints the progress to the writer
type ConsoleOut struct {
	r           runner.Controller
	out         io.Writer
	startTime   time.Time
	printFrames bool
	colors      aurora.Aurora
}

//NewConsoleOut creates the viewer printing to stdout
//printFrames enables printing the whole field on every refresh
func NewConsoleOut(printFrames bool) *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, printFrames, true)
}

//NewConsoleOutTo creates the viewer printing to out
func NewConsoleOutTo(out io.Writer, printFrames bool, colors bool) *ConsoleOut {
	return &ConsoleOut{
		out:         out,
		printFrames: printFrames,
		colors:      aurora.NewAurora(colors),
	}
}

func (c *ConsoleOut) Refresh() {
	st := c.r.Status()
	if c.printFrames {
		c.printFrame(st.IterationNum)
	}
	switch st.RunningMode {
	case runner.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.out, c.colors.Red("\nFinished:"))
		c.printHashData(resultData)
	case runner.RunningStateRun:
		if st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.out, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) printFrame(iteration int) {
	_, _ = fmt.Fprintln(c.out, c.colors.Cyan(fmt.Sprintf("Iteration %v:", iteration)))
	text, err := c.r.Frame().Render()
	if err != nil {
		_, _ = fmt.Fprintln(c.out, c.colors.Red(fmt.Sprintf("  can not render the frame: %v", err)))
		return
	}
	_, _ = fmt.Fprint(c.out, text)
}

func (c *ConsoleOut) Register(r runner.Controller) {
	c.r = r
	o := r.Options()
	st := r.Status()
	_, _ = fmt.Fprintln(c.out, c.colors.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", st.Width, st.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Density":        o.Density,
		"Live cells":     st.LiveCells,
	})
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.out, "\nSimulation started...")
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
