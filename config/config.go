// Package config resolves runtime settings from defaults, an optional TOML
// file and BOXFIELD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/boxfield/constant"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds settings fixed at startup
type Config struct {
	Boxes      int     `toml:"boxes"`
	Stars      int     `toml:"stars"`
	StarSpread float64 `toml:"star_spread"`
	FPS        int     `toml:"fps"`
	Seed       int64   `toml:"seed"` // 0 seeds from the clock
	Audio      bool    `toml:"audio"`
	HUD        bool    `toml:"hud"`
	LogLevel   string  `toml:"log_level"`
	LogFile    string  `toml:"log_file"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Boxes:      constant.DefaultBoxCount,
		Stars:      constant.DefaultStarCount,
		StarSpread: constant.StarSpread,
		FPS:        constant.DefaultFPS,
		HUD:        true,
		LogLevel:   "info",
	}
}

// Load overlays the TOML file at path onto c; keys absent from the file keep their value
func (c *Config) Load(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalid)
	}
	return nil
}

// Environment variable names
const (
	EnvBoxes = "BOXFIELD_BOXES"
	EnvStars = "BOXFIELD_STARS"
	EnvFPS   = "BOXFIELD_FPS"
	EnvSeed  = "BOXFIELD_SEED"
	EnvAudio = "BOXFIELD_AUDIO"
	EnvHUD   = "BOXFIELD_HUD"
)

// ApplyEnv overlays environment overrides; lookup is normally os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvBoxes, &c.Boxes},
		{EnvStars, &c.Stars},
		{EnvFPS, &c.FPS},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvAudio, &c.Audio},
		{EnvHUD, &c.HUD},
	}
	for _, e := range bools {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = b
	}
	return nil
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	switch {
	case c.Boxes < 0:
		return fmt.Errorf("boxes %d < 0: %w", c.Boxes, ErrInvalid)
	case c.Stars < 0:
		return fmt.Errorf("stars %d < 0: %w", c.Stars, ErrInvalid)
	case c.StarSpread <= 0:
		return fmt.Errorf("star spread %g <= 0: %w", c.StarSpread, ErrInvalid)
	case c.FPS < 1 || c.FPS > constant.MaxFPS:
		return fmt.Errorf("fps %d outside 1..%d: %w", c.FPS, constant.MaxFPS, ErrInvalid)
	}
	return nil
}

// FrameInterval converts FPS to a ticker interval
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return constant.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.FPS)
}
