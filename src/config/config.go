package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gameoflife/src/simulation"
	"gameoflife/src/universe"
)

//Config is the application configuration, read from a YAML file and overridden by flags
type Config struct {
	Engine          string        `yaml:"engine"`
	Rows            int           `yaml:"rows"`
	Cols            int           `yaml:"cols"`
	Interval        time.Duration `yaml:"interval"`
	MaxSteps        *int          `yaml:"max_steps"` //nil is unset, 0 is unlimited
	MaxSkippedTicks int           `yaml:"max_skipped_ticks"`
	Pattern         string        `yaml:"pattern"`  //.rle or .cells file to seed the universe with
	Output          string        `yaml:"output"`   //.cells file the live cells are saved to
	Comments        []string      `yaml:"comments"` //metadata written to the output file
	Interactive     bool          `yaml:"interactive"`
}

//Default returns the configuration used when neither a file nor flags set a value
func Default() Config {
	o := simulation.DefaultOptions
	maxSteps := o.MaxSteps
	return Config{
		Engine:          o.Engine,
		Rows:            o.Rows,
		Cols:            o.Cols,
		Interval:        o.Interval,
		MaxSteps:        &maxSteps,
		MaxSkippedTicks: o.MaxSkippedTicks,
	}
}

//Load reads the YAML file and overlays its non-zero values onto the defaults
func Load(path string) (Config, error) {
	c := Default()
	body, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read configuration: %w", err)
	}
	var f Config
	if err := yaml.Unmarshal(body, &f); err != nil {
		return c, fmt.Errorf("decode configuration %s: %w", path, err)
	}
	c.Merge(f)
	return c, nil
}

//Merge overrides c with the non-zero values of f
func (c *Config) Merge(f Config) {
	if f.Engine != "" {
		c.Engine = f.Engine
	}
	if f.Rows != 0 {
		c.Rows = f.Rows
	}
	if f.Cols != 0 {
		c.Cols = f.Cols
	}
	if f.Interval != 0 {
		c.Interval = f.Interval
	}
	if f.MaxSteps != nil {
		maxSteps := *f.MaxSteps
		c.MaxSteps = &maxSteps
	}
	if f.MaxSkippedTicks != 0 {
		c.MaxSkippedTicks = f.MaxSkippedTicks
	}
	if f.Pattern != "" {
		c.Pattern = f.Pattern
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if len(f.Comments) > 0 {
		c.Comments = f.Comments
	}
	if f.Interactive {
		c.Interactive = true
	}
}

//Validate checks the engine name and the grid dimensions
func (c Config) Validate() error {
	known := false
	for _, e := range universe.Engines() {
		known = known || e == c.Engine
	}
	if !known {
		return fmt.Errorf("%w %q, use one of %s", universe.ErrUnknownEngine, c.Engine, strings.Join(universe.Engines(), "|"))
	}
	if universe.IsBounded(c.Engine) && (c.Rows <= 0 || c.Cols <= 0) {
		return fmt.Errorf("engine %q needs positive rows and cols, got %dx%d", c.Engine, c.Rows, c.Cols)
	}
	if c.MaxSteps != nil && *c.MaxSteps < 0 {
		return fmt.Errorf("max steps can't be negative: %d", *c.MaxSteps)
	}
	return nil
}

//SimulationOptions converts the configuration to the simulation options
func (c Config) SimulationOptions() simulation.Options {
	maxSteps := simulation.DefaultOptions.MaxSteps
	if c.MaxSteps != nil {
		maxSteps = *c.MaxSteps
	}
	return simulation.Options{
		Engine:          c.Engine,
		Rows:            c.Rows,
		Cols:            c.Cols,
		Interval:        c.Interval,
		MaxSteps:        maxSteps,
		MaxSkippedTicks: c.MaxSkippedTicks,
	}
}
