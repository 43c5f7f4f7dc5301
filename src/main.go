package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/integrii/flaggy"

	"gameoflife/src/config"
	"gameoflife/src/pattern"
	"gameoflife/src/simulation"
	"gameoflife/src/universe"
	"gameoflife/src/view"
)

var (
	//testSample is settled when neither a pattern nor random data is requested
	testSample = universe.Coordinates{
		{Row: 1, Col: 1}, {Row: 1, Col: 2},
		{Row: 2, Col: 1}, {Row: 2, Col: 2},
		{Row: 3, Col: 3},
		{Row: 4, Col: 2},
		{Row: 4, Col: 3},
		{Row: 5, Col: 3},
	}
)

type EnvOptions struct {
	configPath string
	randomData bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("simlife: ")

	eo, c := initOptions()

	var stateCh chan simulation.Status
	if !c.Interactive {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s, err := simulation.New(c.SimulationOptions(), stateCh)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case c.Pattern != "":
		p, err := pattern.Load(c.Pattern)
		if err != nil {
			log.Fatal(err)
		}
		s.Settle(p)
	case eo.randomData:
		s.Settle(randomData(c.Rows, c.Cols))
	default:
		s.Settle(testSample)
	}

	if c.Interactive {
		v := view.NewViewTerminal(c.Output, c.Comments)
		s.RegisterViewer(v)
		v.Start()
		s.Close()
		return
	}

	v := view.NewConsoleOut()
	s.RegisterViewer(v)
	v.Start()
	s.Run()
	for {
		st := <-stateCh
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	s.Close()

	if c.Output != "" {
		if err := s.Save(c.Output, c.Comments); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Saved to %s\n", c.Output)
	}
}

func initOptions() (eo *EnvOptions, c config.Config) {

	eo = &EnvOptions{}
	var f config.Config
	maxSteps := -1
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "YAML configuration file, flags override its values")
	flaggy.String(&f.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.Int(&f.Rows, "y", "rows", "Rows of the grid engine")
	flaggy.Int(&f.Cols, "x", "cols", "Columns of the grid engine")
	flaggy.Duration(&f.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&maxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.String(&f.Pattern, "p", "pattern", "Seed the universe with a .rle or .cells file")
	flaggy.String(&f.Output, "o", "output", "Save the live cells to a .cells file")
	flaggy.Bool(&f.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")

	flaggy.Parse()
	if maxSteps != -1 {
		f.MaxSteps = &maxSteps
	}

	c = config.Default()
	if eo.configPath != "" {
		var err error
		if c, err = config.Load(eo.configPath); err != nil {
			log.Fatal(err)
		}
	}
	c.Merge(f)

	if err := c.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if !c.Interactive {
		flaggy.ShowHelp("")
	}

	return
}

// randomData fills a quarter of the rows x cols area
func randomData(rows int, cols int) universe.Coordinates {
	var seed universe.Coordinates
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rand.Intn(4) == 0 {
				seed = append(seed, universe.Coordinate{Row: r, Col: c})
			}
		}
	}
	return seed
}
