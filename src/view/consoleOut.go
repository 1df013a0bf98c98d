package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"

	"torolife/src/universe"
)

//ConsoleOut prints the simulation progress and the final generation as text
type ConsoleOut struct {
	s          *universe.Simulation
	out        io.Writer
	au         aurora.Aurora
	startTime  time.Time
	liveFiller string
	deadFiller string
}

func NewConsoleOut(out io.Writer, colors bool) *ConsoleOut {
	au := aurora.NewAurora(colors)
	return &ConsoleOut{
		out:        out,
		au:         au,
		liveFiller: au.Green(string(universe.AliveGlyph)).String(),
		deadFiller: string(universe.DeadGlyph),
	}
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		_, _ = fmt.Fprintln(c.out, c.au.Red("\nFinished:"))
		c.printProp("Last iteration", st.IterationNum)
		c.printProp("Total time", totalTime)
		c.printProp("Live cells", st.LiveCells)
		_, _ = fmt.Fprint(c.out, c.renderField(c.s.Area()))
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%10 == 0 {
			c.printProp("Iterations done", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(s *universe.Simulation) {
	c.s = s
	o := s.Options()
	_, _ = fmt.Fprintln(c.out, "Running configuration:")
	c.printProp("Dimension", fmt.Sprintf("%v x %v", o.Width, o.Height))
	c.printProp("Interval", o.Interval)
	c.printProp("Max iterations", fmt.Sprintf("%v steps", o.MaxSteps))
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.out, "\nSimulation started...")
}

//renderField colorizes the plain rendering of the area
func (c *ConsoleOut) renderField(a universe.CellView) string {
	return strings.NewReplacer(
		string(universe.AliveGlyph), c.liveFiller,
		string(universe.DeadGlyph), c.deadFiller,
	).Replace(a.Render())
}

func (c *ConsoleOut) printProp(name string, value interface{}) {
	_, _ = fmt.Fprintf(c.out, "  %s: %v\n", c.au.Cyan(name), value)
}
