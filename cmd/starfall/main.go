package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/meteor"
	"github.com/lixenwraith/starfall/sim"
	"github.com/lixenwraith/starfall/surface"
	"github.com/lixenwraith/starfall/vmath"
)

// cliFlags are command-line overrides, applied over the config file
type cliFlags struct {
	configPath string
	debug      bool
	seed       int64
	density    int
	speed      float64
	sound      bool
	pixelRatio float64
	watch      bool

	set map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("starfall", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "Config file path (default "+config.DefaultLocation+")")
	fs.BoolVar(&f.debug, "debug", false, "Write debug logs to logs/starfall.log")
	fs.Int64Var(&f.seed, "seed", 1, "Random seed for a reproducible scene")
	fs.IntVar(&f.density, "density", 2000, "Star count, clamped to [0, 20000]")
	fs.Float64Var(&f.speed, "speed", 1, "Global speed multiplier")
	fs.BoolVar(&f.sound, "sound", false, "Play a chime on every meteor spawn")
	fs.Float64Var(&f.pixelRatio, "pixel-ratio", 2, "1 for glyph cells, 2 for half-block pixels")
	fs.BoolVar(&f.watch, "watch", true, "Reload the config file when it changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides cfg with explicitly set flags and revalidates it
func (f *cliFlags) apply(cfg *config.Config) error {
	if f.set["seed"] {
		cfg.Scene.Seed = f.seed
	}
	if f.set["density"] {
		cfg.Field.Density = f.density
	}
	if f.set["speed"] {
		cfg.Scene.Speed = f.speed
	}
	if f.set["sound"] {
		cfg.Audio.Enabled = f.sound
	}
	if f.set["pixel-ratio"] {
		cfg.Render.PixelRatio = f.pixelRatio
	}
	if f.debug {
		cfg.Log.Debug = true
		cfg.Log.Level = "debug"
	}
	return cfg.Validate()
}

// loadConfig reads the explicit path strictly, the default path only if present
func (f *cliFlags) loadConfig() (*config.Config, string, error) {
	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		return cfg, f.configPath, err
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Defaults(), "", nil
	}
	cfg, err := config.LoadOptional(path)
	return cfg, path, err
}

func simOptions(cfg *config.Config, log *zap.Logger) sim.Options {
	opts := sim.DefaultOptions()
	opts.Seed = uint64(cfg.Scene.Seed)
	opts.Field = cfg.FieldConfig()
	opts.Meteor = cfg.MeteorConfig()
	opts.Controls = cfg.Controls()
	opts.FOV = cfg.Camera.FOV
	opts.ViewDistance = cfg.Camera.Distance
	opts.FocusDistance = cfg.Camera.FocusDistance
	opts.FocusDuration = cfg.Camera.FocusDuration
	opts.Log = log.Named("sim")
	return opts
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	cfg, path, err := flags.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "starfall: %v\n", err)
		return 1
	}
	if err := flags.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "starfall: %v\n", err)
		return 1
	}

	log, logFile := setupLogging(cfg.Log.Debug, cfg.Log.Level)
	if logFile != nil {
		defer logFile.Close()
	}
	defer log.Sync()
	log.Info("starting", zap.String("config", path), zap.Int64("seed", cfg.Scene.Seed))

	st, err := sim.New(simOptions(cfg, log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "starfall: %v\n", err)
		return 1
	}

	chime, err := audio.NewChime(cfg.Audio.Enabled, cfg.Audio.Volume, log.Named("audio"))
	if err != nil {
		// Non-fatal, the scene runs silent
		log.Warn("audio unavailable", zap.Error(err))
	}
	mc := st.Meteors.Config()
	st.Meteors.OnSpawn = func(m *meteor.Meteor) {
		chime.Play(audio.PitchFor(vmath.V3FMag(m.Velocity), mc.SpeedMin, mc.SpeedMax))
	}

	surf, err := surface.New(cfg.Render.PixelRatio)
	if err != nil {
		st.Close()
		chime.Close()
		fmt.Fprintf(os.Stderr, "starfall: %v\n", err)
		return 1
	}
	defer surf.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var reloads <-chan *config.Config
	if flags.watch && path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if reloads, err = config.Watch(ctx, path, log.Named("config")); err != nil {
				log.Warn("config watch disabled", zap.Error(err))
			}
		}
	}

	a := newApp(st, surf, surf.Events(), reloads, chime, log)
	a.overrides = flags.apply
	surf.Start()
	a.start()

	err = st.Scheduler.Run(ctx, engine.NewTickerSource(cfg.FrameInterval()))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("frame loop", zap.Error(err))
	}
	a.teardown()
	return 0
}
