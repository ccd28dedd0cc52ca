package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"toruslife/src/runner"
	"toruslife/src/universe"
)

//ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

//Config holds the configuration of the simulation and its host
type Config struct {
	Width           uint32   `json:"width"`
	Height          uint32   `json:"height"`
	Interval        Duration `json:"interval"`
	MaxSteps        int      `json:"max_steps"`
	MaxSkippedTicks int      `json:"max_skipped_ticks"`
	Density         float64  `json:"density"`
	Seed            int64    `json:"seed"` //0 means the process-wide random source
	Template        string   `json:"template"`
	Interactive     bool     `json:"interactive"`
	PrintFrames     bool     `json:"print_frames"`
}

//Duration is a time.Duration decoded from "150ms" style strings or integer nanoseconds
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "[Duration] invalid duration: %+v", value)
		}
		*d = Duration(parsed)
	default:
		return errors.Errorf("[Duration] invalid duration: %s", b)
	}
	return nil
}

//Default returns sensible defaults
func Default() Config {
	return Config{
		Width:           universe.DefWidth,
		Height:          universe.DefHeight,
		Interval:        Duration(runner.DefSimulationInterval),
		MaxSteps:        runner.DefMaxSteps,
		MaxSkippedTicks: runner.DefMaxSkippedTicks,
		Density:         universe.DefDensity,
	}
}

//Load loads configuration from JSON file on top of the defaults
func Load(filename string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[Load] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[Load] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//Validate checks the values the simulation can not run with
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return errors.Wrapf(ErrInvalidConfig, "dimension %vx%v", c.Width, c.Height)
	case c.Density < 0 || c.Density > 1:
		return errors.Wrapf(ErrInvalidConfig, "density %v is outside [0,1]", c.Density)
	case c.Interval < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative interval %v", time.Duration(c.Interval))
	case c.MaxSteps < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative max steps %v", c.MaxSteps)
	case c.MaxSkippedTicks < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative max skipped ticks %v", c.MaxSkippedTicks)
	}
	if c.Template != "" {
		if _, ok := universe.BuiltinTemplate(c.Template); !ok {
			return errors.Wrapf(ErrInvalidConfig, "unknown template %q", c.Template)
		}
	}
	return nil
}

//RunnerOptions converts the configuration to the runner options
func (c Config) RunnerOptions() runner.Options {
	return runner.Options{
		Interval:        time.Duration(c.Interval),
		MaxSteps:        c.MaxSteps,
		MaxSkippedTicks: c.MaxSkippedTicks,
		Density:         c.Density,
	}
}

//Source returns the random source for the configured seed
func (c Config) Source() universe.Source {
	if c.Seed == 0 {
		return universe.DefaultSource
	}
	return universe.NewSeededSource(c.Seed)
}
