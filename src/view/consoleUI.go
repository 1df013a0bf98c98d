package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"torolife/src/universe"
)

const (
	fieldView  = "field"
	configView = "configuration"
	statusView = "status"
	helpView   = "help"
	headerView = "header"

	sidebarWidth    = 28
	minWindowHeight = 20
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer, it renders the field and sends the user commands to the simulation
type ConsoleUI struct {
	s          *universe.Simulation
	g          *gocui.Gui
	au         aurora.Aurora
	keys       []keyBinding
	liveFiller string
	deadFiller string
}

//NewConsoleUI initializes the terminal, panics if the terminal can't be used
func NewConsoleUI(colors bool) *ConsoleUI {
	au := aurora.NewAurora(colors)
	t := ConsoleUI{
		au:         au,
		liveFiller: au.Green(string(universe.AliveGlyph)).BgBrightGreen().String(),
		deadFiller: string(universe.DeadGlyph),
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	t.g = g
	t.g.Mouse = true
	t.keys = []keyBinding{
		{key: gocui.KeyCtrlC, name: "^C", descr: "Exit", handler: t.cmdQuit},
		{key: 'n', name: "N", descr: "Next step", handler: t.cmdStep},
		{key: 'r', name: "R", descr: "Run", handler: t.cmdRun},
		{key: 's', name: "S", descr: "Stop", handler: t.cmdStop},
		{key: 'c', name: "C", descr: "Clear", handler: t.cmdClear},
		{key: 'w', name: "W", descr: "Random", handler: t.cmdRandom},
		{key: 'g', name: "G", descr: "Glider", handler: t.cmdGlider},
		{key: gocui.MouseLeft, name: "MOUSE", descr: "Toggle the cell", handler: t.cmdToggle, viewName: fieldView},
	}
	t.g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return &t
}

func (t *ConsoleUI) Register(s *universe.Simulation) {
	t.s = s
}

//Start blocks until the user quits
func (t *ConsoleUI) Start() {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

//Refresh may be called from any goroutine, gocui.Update queues the redraw on the UI loop
func (t *ConsoleUI) Refresh() {
	area := t.s.Area()
	t.g.Update(func(g *gocui.Gui) error {
		t.drawField(g, area)
		t.drawConfiguration(g)
		t.drawStatus(g)
		return nil
	})
}

func (t *ConsoleUI) drawField(g *gocui.Gui, a universe.CellView) {
	v, err := g.View(fieldView)
	if err != nil {
		return
	}
	v.Clear()

	maxW, maxH := v.Size()
	rows, cols := int(a.Height()), int(a.Width())
	crop := cols > maxW || rows > maxH

	var b bytes.Buffer
	for row := 0; row < rows && row < maxH; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && row == maxH-1 {
			b.WriteString(t.au.Red("The field is larger than the viewing area").BgBlack().String())
			break
		}
		for col := 0; col < cols && col < maxW; col++ {
			if a.At(uint32(row), uint32(col)) {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) drawStatus(g *gocui.Gui) {
	v, err := g.View(statusView)
	if err != nil {
		return
	}
	st := t.s.Status()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.prop("Step", "%v", st.IterationNum))
	_, _ = fmt.Fprintln(v, t.prop("Live cells", "%v", st.LiveCells))
	_, _ = fmt.Fprintln(v, t.prop("Tick time", "%v", st.IterationTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.prop("Mode", "%v", t.modeDescr(st.RunningMode)))
}

func (t *ConsoleUI) drawConfiguration(g *gocui.Gui) {
	v, err := g.View(configView)
	if err != nil {
		return
	}
	o := t.s.Options()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.prop("Dimension", "%v x %v", o.Width, o.Height))
	_, _ = fmt.Fprintln(v, t.prop("Interval", "%v", o.Interval))
	_, _ = fmt.Fprintln(v, t.prop("Max steps", "%v", o.MaxSteps))
	_, _ = fmt.Fprintln(v, t.prop("Edges", "wrapped"))
}

func (t *ConsoleUI) modeDescr(m universe.RunningState) string {
	switch m {
	case universe.RunningStateManual:
		return t.au.Blue("waiting").String()
	case universe.RunningStateStep:
		return "do the step"
	case universe.RunningStateRun:
		return t.au.Cyan("running").String()
	case universe.RunningStateFinished:
		return t.au.Red("finished").String()
	}
	return "unknown"
}

func (t *ConsoleUI) prop(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Green(name).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.header(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView(configView)
		_ = g.DeleteView(statusView)
		_ = g.DeleteView(fieldView)
		return nil
	}
	if err := t.header(g, 3, "\"The Life\" on a torus"); err != nil {
		return err
	}

	middle := 3 + (maxY-8)/2
	frames := []struct {
		name           string
		title          string
		x0, y0, x1, y1 int
	}{
		{configView, "Configuration", 0, 3, sidebarWidth, middle},
		{statusView, "Status", 0, middle + 1, sidebarWidth, maxY - 5},
		{fieldView, "Field", sidebarWidth + 1, 3, maxX - 1, maxY - 5},
	}
	for _, f := range frames {
		v, err := g.SetView(f.name, f.x0, f.y0, f.x1, f.y1)
		if err != nil && err != gocui.ErrUnknownView {
			return err
		}
		v.Title = f.title
		v.Frame = true
	}
	t.drawConfiguration(g)
	t.drawStatus(g)
	t.drawField(g, t.s.Area())

	v, err := g.SetView(helpView, -1, maxY-5, maxX, maxY-3)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	v.Clear()
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.keys {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.au.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	_, _ = fmt.Fprintln(v, b.String())
	return nil
}

func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(headerView, -1, -1, maxX+1, height)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	v.BgColor = gocui.ColorCyan
	v.FgColor = gocui.ColorBlack
	v.Clear()
	pad := 0
	if maxX > len(text) {
		pad = (maxX - len(text)) / 2
	}
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.s.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.s.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Clear()
	return nil
}

func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	t.s.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdGlider(_ *gocui.View) error {
	t.s.SettleTemplate("glider")
	return nil
}

//cmdToggle flips the clicked cell, the cursor column is the cell column and the cursor row is the cell row
func (t *ConsoleUI) cmdToggle(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 {
		return nil
	}
	t.s.ToggleCell(uint32(cy), uint32(cx))
	return nil
}
