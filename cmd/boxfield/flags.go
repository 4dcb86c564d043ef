package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/lixenwraith/boxfield/config"
)

// cliFlags holds command-line settings; only flags set explicitly override config
type cliFlags struct {
	fs *flag.FlagSet

	configPath string
	boxes      int
	stars      int
	fps        int
	seed       int64
	audio      bool
	hud        bool
	level      logLevelFlag
	logFile    string
	color      string
}

func newFlags(name string) *cliFlags {
	d := config.Default()
	f := &cliFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.level.value = slog.LevelInfo

	f.fs.StringVar(&f.configPath, "config", "", "Path to a TOML config file")
	f.fs.IntVar(&f.boxes, "boxes", d.Boxes, "Number of rotating boxes")
	f.fs.IntVar(&f.stars, "stars", d.Stars, "Number of stars")
	f.fs.IntVar(&f.fps, "fps", d.FPS, "Target frames per second")
	f.fs.Int64Var(&f.seed, "seed", d.Seed, "Random seed, 0 uses the clock")
	f.fs.BoolVar(&f.audio, "audio", d.Audio, "Play the ambient drone")
	f.fs.BoolVar(&f.hud, "hud", d.HUD, "Show the status bar")
	f.fs.Var(&f.level, "loglevel", "Set log level: debug, info, warn, error")
	f.fs.StringVar(&f.logFile, "logfile", d.LogFile, "Write logs to a rotating file")
	f.fs.StringVar(&f.color, "color", "auto", "Color mode: auto, truecolor, 256")
	return f
}

// resolveConfig applies defaults < file < env < flags and validates the result
func (f *cliFlags) resolveConfig(args []string, lookup func(string) (string, bool)) (config.Config, error) {
	if err := f.fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if f.configPath != "" {
		if err := cfg.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return config.Config{}, fmt.Errorf("environment: %w", err)
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "boxes":
			cfg.Boxes = f.boxes
		case "stars":
			cfg.Stars = f.stars
		case "fps":
			cfg.FPS = f.fps
		case "seed":
			cfg.Seed = f.seed
		case "audio":
			cfg.Audio = f.audio
		case "hud":
			cfg.HUD = f.hud
		case "loglevel":
			cfg.LogLevel = f.level.String()
		case "logfile":
			cfg.LogFile = f.logFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
