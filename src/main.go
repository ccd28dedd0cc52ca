package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"

	"toruslife/src/config"
	"toruslife/src/runner"
	"toruslife/src/universe"
	"toruslife/src/view"
)

//EnvOptions holds the command line flags
//negative maxSteps and density mean the flag was not set
type EnvOptions struct {
	configFile  string
	width       int
	height      int
	interval    time.Duration
	maxSteps    int
	density     float64
	seed        int64
	template    string
	interactive bool
	printFrames bool
}

func main() {
	cfg, err := initConfig()
	if err != nil {
		log.Fatalln(err)
	}

	u := universe.NewSized(cfg.Width, cfg.Height, cfg.Source())
	if cfg.Template != "" {
		t, _ := universe.BuiltinTemplate(cfg.Template)
		u.Settle(t, int(cfg.Width)/2-1, int(cfg.Height)/2-1)
	} else {
		u.FillRandom(cfg.Density)
	}

	if cfg.Interactive {
		err = runInteractive(u, cfg)
	} else {
		err = runBatch(u, cfg)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

//runInteractive starts the terminal UI, the simulation is driven by the key bindings
func runInteractive(u *universe.Universe, cfg config.Config) error {
	o := cfg.RunnerOptions()
	r := runner.New(u, &o, nil)
	defer r.Close()

	v, err := view.NewViewTerminal()
	if err != nil {
		return err
	}
	r.RegisterViewer(v)
	return v.Start()
}

//runBatch runs the simulation until it finishes or the process is interrupted
func runBatch(u *universe.Universe, cfg config.Config) error {
	o := cfg.RunnerOptions()
	o.Logger = log.New(os.Stderr, "[runner] ", log.LstdFlags)
	stateCh := make(chan runner.Status, 10) //the buffered channel to getting the runner status
	r := runner.New(u, &o, stateCh)

	v := view.NewConsoleOut(cfg.PrintFrames)
	r.RegisterViewer(v)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})

	//status consumer, keeps reading until the main loop exits so the runner never blocks
	eg.Go(func() error {
		for {
			select {
			case st := <-stateCh:
				if st.RunningMode == runner.RunningStateFinished {
					select {
					case <-finished:
					default:
						close(finished)
					}
				}
			case <-r.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		select {
		case <-finished:
		case <-ctx.Done():
			fmt.Println("\nInterrupted, stopping...")
			r.Stop()
		}
		r.Close()
		return nil
	})

	if err := v.Start(); err != nil {
		r.Close()
		return err
	}
	r.Run()
	return eg.Wait()
}

func initConfig() (cfg config.Config, err error) {
	eo := &EnvOptions{maxSteps: -1, density: -1}
	flaggy.SetName("toruslife")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configFile, "c", "config", "JSON configuration file, flags override its values")
	flaggy.Int(&eo.width, "x", "width", "Width of a simulation field")
	flaggy.Int(&eo.height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&eo.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 for no limit")
	flaggy.Float64(&eo.density, "d", "density", "Probability of a live cell in the random fill")
	flaggy.Int64(&eo.seed, "S", "seed", "Seed of the random fill, 0 for a random seed")
	flaggy.String(&eo.template, "t", "template", "Settle a template instead of random data ["+strings.Join(universe.BuiltinTemplateNames(), "|")+"]")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.printFrames, "p", "print", "Print the field on every step")
	flaggy.Parse()

	cfg = config.Default()
	if eo.configFile != "" {
		if cfg, err = config.Load(eo.configFile); err != nil {
			return
		}
	}
	applyFlags(&cfg, eo)
	if err = cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}

//applyFlags overrides the configuration with the flags that were set
func applyFlags(cfg *config.Config, eo *EnvOptions) {
	if eo.width > 0 {
		cfg.Width = uint32(eo.width)
	}
	if eo.height > 0 {
		cfg.Height = uint32(eo.height)
	}
	if eo.interval > 0 {
		cfg.Interval = config.Duration(eo.interval)
	}
	if eo.maxSteps >= 0 {
		cfg.MaxSteps = eo.maxSteps
	}
	if eo.density >= 0 {
		cfg.Density = eo.density
	}
	if eo.seed != 0 {
		cfg.Seed = eo.seed
	}
	if eo.template != "" {
		cfg.Template = eo.template
	}
	cfg.Interactive = cfg.Interactive || eo.interactive
	cfg.PrintFrames = cfg.PrintFrames || eo.printFrames
}
