package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"torolife/src/config"
	"torolife/src/universe"
	"torolife/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	template    string
	color       bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	eo, uo := initOptions(cfg)

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the simulation status
	}

	s := universe.NewSimulation(&uo, stateCh)
	defer s.Close()

	if eo.randomData {
		s.SettleWithRandomData()
	} else {
		s.SettleTemplate(eo.template)
	}

	if eo.interactive {
		v := view.NewConsoleUI(eo.color)
		s.RegisterViewer(v)
		v.Start()
		return
	}

	v := view.NewConsoleOut(os.Stdout, eo.color)
	s.RegisterViewer(v)
	v.Start()
	s.Run()
	for st := range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
}

//initOptions applies the command line flags on top of the environment configuration
func initOptions(cfg config.Config) (eo EnvOptions, uo universe.Options) {
	uo = cfg.UniverseOptions()
	eo = EnvOptions{template: "glider", color: cfg.Color}

	templateNames := make([]string, 0, len(universe.BuiltinTemplates))
	for _, t := range universe.BuiltinTemplates {
		templateNames = append(templateNames, t.Name)
	}

	flaggy.SetName("torolife")
	flaggy.SetDescription("Conway's Game of Life on a wrap-around field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.UInt32(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.UInt32(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 for no limit")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed for the random data, 0 picks one from the clock")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Bool(&eo.color, "c", "color", "Colorize the output")
	flaggy.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templateNames, "|")+"]")

	flaggy.Parse()

	if uo.MaxSteps < 0 {
		flaggy.ShowHelpAndExit(fmt.Sprintf("maxSteps must not be negative, got %d", uo.MaxSteps))
	}
	if !eo.randomData && !knownTemplate(eo.template) {
		flaggy.ShowHelpAndExit("unknown template " + eo.template)
	}
	return
}

func knownTemplate(name string) bool {
	for _, t := range universe.BuiltinTemplates {
		if t.Name == name {
			return true
		}
	}
	return false
}
